package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/voicenotes/internal/buildinfo"
	"github.com/dmitrijs2005/voicenotes/internal/server"
	"github.com/dmitrijs2005/voicenotes/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
