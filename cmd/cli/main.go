package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/voicenotes/internal/buildinfo"
	"github.com/dmitrijs2005/voicenotes/internal/client/cli"
	"github.com/dmitrijs2005/voicenotes/internal/client/config"
	"github.com/dmitrijs2005/voicenotes/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, "text")

	cli.NewApp(cfg, logger).Run(ctx)
}
