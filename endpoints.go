package tweetie

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	twitterAPIURL   = "https://api.twitter.com"
	defaultPageSize = 100
)

// Endpoint describes a v1.1 REST read operation.
type Endpoint struct {
	Name    string
	Path    string
	MaxPage int // largest count Twitter accepts per page

	// TargetsUser marks reads of another account's data, where a bare 401
	// means that account is protected rather than that our keys are bad.
	TargetsUser bool
}

// URL returns the full URL for this endpoint with params encoded in key order.
func (e Endpoint) URL(base string, params url.Values) string {
	u := strings.TrimRight(base, "/") + e.Path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// EndpointURL returns the URL for a named operation, or an error if unknown.
func EndpointURL(base, operation string, params url.Values) (string, error) {
	ep, ok := Endpoints[operation]
	if !ok {
		return "", fmt.Errorf("unknown operation: %s", operation)
	}
	return ep.URL(base, params), nil
}

// Endpoints maps operation names to their v1.1 REST paths.
var Endpoints = map[string]Endpoint{
	"UserTimeline":      {Name: "UserTimeline", Path: "/1.1/statuses/user_timeline.json", MaxPage: 200, TargetsUser: true},
	"Following":         {Name: "Following", Path: "/1.1/friends/list.json", MaxPage: 200, TargetsUser: true},
	"VerifyCredentials": {Name: "VerifyCredentials", Path: "/1.1/account/verify_credentials.json"},
}
