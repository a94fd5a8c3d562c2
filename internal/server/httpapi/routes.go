package httpapi

import (
	"github.com/dmitrijs2005/voicenotes/internal/dto"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes(bodyLimit string, reg *prometheus.Registry) *echo.Echo {
	e := newEcho()
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(s.metrics.Middleware)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	if bodyLimit != "" {
		e.Use(middleware.BodyLimit(bodyLimit))
	}

	e.GET(dto.PathRoot, s.root)
	e.GET(dto.PathMetrics, echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	e.POST(dto.PathSignup, s.signup)
	e.POST(dto.PathLogin, s.login)

	notes := e.Group("/notes", s.requireAuth)
	notes.GET("/all-notes", s.allNotes)
	notes.POST("/create-notes", s.createNote)
	notes.PUT("/update/:id", s.updateNote)
	notes.DELETE("/delete/:id", s.deleteNote)
	notes.PUT("/mark-favourite/:id", s.toggleFavourite)
	notes.GET("/favourite-notes", s.favouriteNotes)
	notes.GET("/search-notes", s.searchNotes)

	return e
}
