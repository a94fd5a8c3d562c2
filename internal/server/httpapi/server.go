// Package httpapi exposes the voicenotes REST API over echo: routing,
// authentication middleware, request binding, error mapping and metrics.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/voicenotes/internal/logging"
	"github.com/dmitrijs2005/voicenotes/internal/server/config"
	"github.com/dmitrijs2005/voicenotes/internal/server/models"
	"github.com/dmitrijs2005/voicenotes/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

type UserService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(token string) (string, error)
}

type NoteService interface {
	List(ctx context.Context, userID string) ([]*models.Note, error)
	Create(ctx context.Context, userID, title, transcribedText string, audio *services.Upload) (*models.Note, error)
	Update(ctx context.Context, userID, noteID string, patch models.NotePatch, images []services.Upload) (*models.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
	ToggleFavourite(ctx context.Context, userID, noteID string) (*models.Note, error)
	Favourites(ctx context.Context, userID string) ([]*models.Note, error)
	Search(ctx context.Context, userID, query string) ([]*models.Note, error)
}

type Server struct {
	address string
	users   UserService
	notes   NoteService
	logger  logging.Logger
	metrics *Metrics
	handler http.Handler
}

// NewServer builds the router and registers request metrics in reg.
func NewServer(cfg *config.Config, l logging.Logger, us UserService, ns NoteService, reg *prometheus.Registry) (*Server, error) {
	m, err := NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		address: cfg.HTTPAddr,
		users:   us,
		notes:   ns,
		logger:  l.With("module", "http_server"),
		metrics: m,
	}

	e := s.routes(cfg.BodyLimit, reg)

	s.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(e)

	return s, nil
}

// Handler returns the complete HTTP handler, CORS included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return e
}
