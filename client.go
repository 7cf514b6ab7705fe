// Package tweetie fetches a Twitter user's recent posts and followed accounts
// through the v1.1 REST API and scores posts for sentiment.
package tweetie

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

// Client is an authenticated Twitter v1.1 REST client.
// It implements TimelineAPI and FollowingAPI.
type Client struct {
	http *http.Client
	cfg  ClientConfig
}

// TimelineAPI pages through a user's posts by screen name.
type TimelineAPI interface {
	UserTimeline(ctx context.Context, screenName, cursor string, count int) (Page[Status], error)
}

// FollowingAPI pages through the accounts a user follows by screen name.
type FollowingAPI interface {
	Following(ctx context.Context, screenName, cursor string, count int) (Page[User], error)
}

var (
	_ TimelineAPI  = (*Client)(nil)
	_ FollowingAPI = (*Client)(nil)
)

// UserTimeline fetches one page of a user's most recent posts.
// cursor is a max_id; the empty cursor starts from the newest post.
func (c *Client) UserTimeline(ctx context.Context, screenName, cursor string, count int) (Page[Status], error) {
	params := url.Values{
		"screen_name": {screenName},
		"count":       {strconv.Itoa(c.pageCount("UserTimeline", count))},
		"tweet_mode":  {"extended"},
	}
	if cursor != "" {
		params.Set("max_id", cursor)
	}

	body, err := c.get(ctx, "UserTimeline", params)
	if err != nil {
		return Page[Status]{}, err
	}
	statuses, err := parseTimelinePage(body)
	if err != nil {
		return Page[Status]{}, fmt.Errorf("parse UserTimeline: %w", err)
	}
	return Page[Status]{Items: statuses, Next: nextMaxID(statuses)}, nil
}

// Following fetches one page of the accounts a user follows.
// The empty cursor starts from the first page.
func (c *Client) Following(ctx context.Context, screenName, cursor string, count int) (Page[User], error) {
	if cursor == "" {
		cursor = "-1"
	}
	params := url.Values{
		"screen_name":           {screenName},
		"count":                 {strconv.Itoa(c.pageCount("Following", count))},
		"cursor":                {cursor},
		"skip_status":           {"true"},
		"include_user_entities": {"false"},
	}

	body, err := c.get(ctx, "Following", params)
	if err != nil {
		return Page[User]{}, err
	}
	users, next, err := parseFriendsPage(body)
	if err != nil {
		return Page[User]{}, fmt.Errorf("parse Following: %w", err)
	}
	return Page[User]{Items: users, Next: next}, nil
}

// VerifyCredentials checks the OAuth keys against Twitter and returns the
// authenticated account. Nothing else in the package calls it.
func (c *Client) VerifyCredentials(ctx context.Context) (*User, error) {
	params := url.Values{
		"skip_status":      {"true"},
		"include_entities": {"false"},
	}
	body, err := c.get(ctx, "VerifyCredentials", params)
	if err != nil {
		return nil, err
	}
	return parseUser(body)
}

// pageCount clamps a requested page size to the configured and endpoint maximums.
func (c *Client) pageCount(operation string, count int) int {
	limit := c.cfg.PageSize
	if ep, ok := Endpoints[operation]; ok && ep.MaxPage > 0 {
		limit = min(limit, ep.MaxPage)
	}
	if count <= 0 || count > limit {
		return limit
	}
	return count
}

// get executes a signed GET request and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, operation string, params url.Values) ([]byte, error) {
	u, err := EndpointURL(c.cfg.BaseURL, operation, params)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.userAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		c.recordAPICall(operation, false, false)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", operation, ctxErr)
		}
		return nil, fmt.Errorf("%s: %w: %w", operation, ErrRemoteCall, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordAPICall(operation, false, false)
		return nil, fmt.Errorf("%s: %w: read response: %w", operation, ErrRemoteCall, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := newAPIError(operation, resp.StatusCode, body)
		if apiErr.RateLimited() {
			apiErr.ResetAt = parseRateLimitReset(resp.Header.Get("X-Rate-Limit-Reset"))
		}
		c.recordAPICall(operation, false, apiErr.RateLimited())
		slog.Warn("twitter API error",
			slog.String("endpoint", operation),
			slog.Int("status", resp.StatusCode),
			slog.String("class", apiErr.class.String()),
			slog.Bool("auth", errors.Is(apiErr, ErrAuthentication)),
			slog.String("body", truncateBytes(body, 500)))
		return nil, apiErr
	}

	c.recordAPICall(operation, true, false)
	slog.Debug("twitter API call", slog.String("endpoint", operation), slog.Int("bytes", len(body)))
	return body, nil
}

// recordAPICall calls the metrics hook if configured.
func (c *Client) recordAPICall(endpoint string, success, rateLimited bool) {
	if c.cfg.MetricsHook != nil {
		c.cfg.MetricsHook(endpoint, success, rateLimited)
	}
}
