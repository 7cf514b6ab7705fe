package tweetie

import (
	"net/http"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// ClientConfig holds all configuration for the Twitter client.
type ClientConfig struct {
	// BaseURL is the REST API root. Default: https://api.twitter.com
	BaseURL string

	// Timeout bounds a single HTTP round trip. Default: 30s.
	Timeout time.Duration

	// PageSize is the number of items requested per page. Default: 100.
	PageSize int

	// Proxy is an optional proxy URL for the stealth transport.
	Proxy string

	// Profile is the browser profile whose TLS fingerprint and User-Agent are used.
	// Default: the first built-in profile.
	Profile *stealth.BrowserProfile

	// Transport replaces the stealth transport entirely, e.g. with
	// http.DefaultTransport or a test round tripper.
	Transport http.RoundTripper

	// MetricsHook is called on each API request for external metrics collection.
	// endpoint is the operation name, success and rateLimited indicate the outcome.
	MetricsHook func(endpoint string, success, rateLimited bool)
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = twitterAPIURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Profile == nil && len(stealth.BuiltinProfiles) > 0 {
		p := stealth.BuiltinProfiles[0]
		cfg.Profile = &p
	}
}

// userAgent returns the profile User-Agent, or the fallback one.
func (cfg *ClientConfig) userAgent() string {
	if cfg.Profile != nil && cfg.Profile.UserAgent != "" {
		return cfg.Profile.UserAgent
	}
	return defaultUserAgent
}
