// Package httpapi serves timeline and following lookups over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	tweetie "github.com/jason-yu1/Tweet-Sentiment-Analysis"
	"github.com/jason-yu1/Tweet-Sentiment-Analysis/internal/metrics"
)

// Config wires the server to its collaborators.
type Config struct {
	Timeline  tweetie.TimelineAPI
	Following tweetie.FollowingAPI

	// Options are applied to every fetch before the per-request limit.
	Options []tweetie.FetchOption

	// Metrics and Gatherer are optional. Without a Gatherer /metrics is not served.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// Server serves timeline and following lookups through echo.
type Server struct {
	echo *echo.Echo
	cfg  Config
}

// New builds the echo instance and registers routes.
func New(cfg Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger())

	s := &Server{echo: e, cfg: cfg}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	if s.cfg.Gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	s.echo.GET("/users/:name/tweets", s.handleTweets)
	s.echo.GET("/users/:name/following", s.handleFollowing)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	slog.Info("http server starting", slog.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestLogger logs one line per request through slog.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			slog.LogAttrs(c.Request().Context(), level, "http request", attrs...)
			return nil
		},
	})
}
