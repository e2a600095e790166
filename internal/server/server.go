// Package server exposes the profile page and its JSON snapshot over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/naka-gawa/github-profile/internal/domain"
	"github.com/naka-gawa/github-profile/internal/view"
	"github.com/sirupsen/logrus"
)

// Runner renders a user's statistics into a page.
type Runner interface {
	Run(ctx context.Context, username string, page *view.Page) error
}

// Server serves the profile page. Every request renders into a fresh page.
type Server struct {
	echo       *echo.Echo
	runner     Runner
	logger     *logrus.Logger
	chartJSURL string
}

// New creates a Server with its routes and middleware registered.
func New(runner Runner, logger *logrus.Logger, chartJSURL string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(LoggingMiddleware(logger))

	s := &Server{
		echo:       e,
		runner:     runner,
		logger:     logger,
		chartJSURL: chartJSURL,
	}
	e.GET("/", s.getPage)
	e.GET("/api/stats", s.getStats)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return s
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start(addr string) error {
	s.logger.WithField("addr", addr).Info("Server starting")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// getPage renders the form page. Once the form has been submitted, the username
// parameter is present (possibly empty) and the pipeline runs.
func (s *Server) getPage(c echo.Context) error {
	values, submitted := c.QueryParams()["username"]
	username := ""
	if submitted && len(values) > 0 {
		username = values[0]
	}

	page := view.NewPage()
	if submitted {
		logEntry := s.logRequest(c, "render_page").WithField("username", username)
		if err := s.runner.Run(c.Request().Context(), username, page); err != nil {
			logEntry.WithError(err).Warn("Pipeline stopped")
		}
	}

	var buf bytes.Buffer
	err := view.RenderHTML(&buf, page.Snapshot(), view.HTMLOptions{
		ChartJSURL:  s.chartJSURL,
		Interactive: true,
		Action:      "/",
		Username:    username,
	})
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

type statsResponse struct {
	Page  view.Snapshot `json:"page"`
	Error string        `json:"error,omitempty"`
}

func (s *Server) getStats(c echo.Context) error {
	username := c.QueryParam("username")
	logEntry := s.logRequest(c, "get_stats").WithField("username", username)

	page := view.NewPage()
	err := s.runner.Run(c.Request().Context(), username, page)
	resp := statsResponse{Page: page.Snapshot()}
	if err != nil {
		logEntry.WithError(err).Warn("Pipeline stopped")
		resp.Error = err.Error()
		if msg := domain.Notification(err); msg != "" {
			resp.Error = msg
		}
	}
	return c.JSON(getHTTPStatusCode(err), resp)
}

func (s *Server) logRequest(c echo.Context, operation string) *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{
		"operation": operation,
		"method":    c.Request().Method,
		"path":      c.Request().URL.Path,
		"ip":        c.RealIP(),
	})
}

func getHTTPStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrMissingUsername):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
