package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	tweetie "github.com/jason-yu1/Tweet-Sentiment-Analysis"
)

// maxLimit bounds the limit query parameter.
const maxLimit = 1000

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTweets(c echo.Context) error {
	opts, err := s.fetchOptions(c)
	if err != nil {
		return err
	}
	tl, err := tweetie.FetchTweets(c.Request().Context(), s.cfg.Timeline, c.Param("name"), opts...)
	if err != nil {
		return apiError(err)
	}
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.TweetsScored.Add(float64(tl.Count))
	}
	return c.JSON(http.StatusOK, tl)
}

func (s *Server) handleFollowing(c echo.Context) error {
	opts, err := s.fetchOptions(c)
	if err != nil {
		return err
	}
	name := c.Param("name")
	friends, err := tweetie.FetchFollowing(c.Request().Context(), s.cfg.Following, name, opts...)
	if err != nil {
		return apiError(err)
	}
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.FriendsListed.Add(float64(len(friends)))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user":      name,
		"count":     len(friends),
		"following": friends,
	})
}

// fetchOptions appends the optional ?limit= override to the configured options.
func (s *Server) fetchOptions(c echo.Context) ([]tweetie.FetchOption, error) {
	opts := append([]tweetie.FetchOption(nil), s.cfg.Options...)
	raw := c.QueryParam("limit")
	if raw == "" {
		return opts, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxLimit {
		return nil, echo.NewHTTPError(http.StatusBadRequest,
			map[string]string{"error": "limit must be an integer between 1 and " + strconv.Itoa(maxLimit)})
	}
	return append(opts, tweetie.WithLimit(n)), nil
}

// apiError maps fetch errors onto HTTP responses.
func apiError(err error) error {
	var apiErr *tweetie.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.NotFound():
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "user not found"}).SetInternal(err)
	case errors.As(err, &apiErr) && apiErr.Protected():
		return echo.NewHTTPError(http.StatusForbidden, map[string]string{"error": "user is protected"}).SetInternal(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, map[string]string{"error": err.Error()}).SetInternal(err)
	case errors.Is(err, tweetie.ErrAuthentication):
		return echo.NewHTTPError(http.StatusBadGateway, map[string]string{"error": "twitter rejected the configured credentials"}).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusBadGateway, map[string]string{"error": err.Error()}).SetInternal(err)
	}
}
