// Package cli is the interactive voicenotes client: a line-oriented REPL
// over the REST API that records notes from audio files.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/voicenotes/internal/client/api"
	"github.com/dmitrijs2005/voicenotes/internal/client/config"
	"github.com/dmitrijs2005/voicenotes/internal/dto"
	"github.com/dmitrijs2005/voicenotes/internal/logging"
	"github.com/dmitrijs2005/voicenotes/internal/recorder"
)

// notesAPI is the part of api.Client the commands use.
type notesAPI interface {
	Signup(ctx context.Context, email, password string) (dto.User, error)
	Login(ctx context.Context, email, password string) error
	Logout()
	LoggedIn() bool
	Fetch(ctx context.Context, v api.View, query string) ([]dto.Note, error)
	CreateNote(ctx context.Context, title string, res recorder.Result) (dto.Note, error)
	GetNote(ctx context.Context, id string) (dto.Note, error)
	UpdateNote(ctx context.Context, id string, e api.Edit) (dto.Note, error)
	DeleteNote(ctx context.Context, id string) error
	ToggleFavourite(ctx context.Context, id string) (dto.Note, error)
}

type App struct {
	config *config.Config
	api    notesAPI
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config, l logging.Logger) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerURL, c.RequestTimeout),
		logger: l.With("module", "cli"),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run serves commands from stdin until exit, EOF or ctx cancellation.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to voicenotes CLI (type 'help' for commands)")
	a.logger.Debug(ctx, "cli started", "server", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) getStatus() string {
	if a.email == "" || !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.email)
}
