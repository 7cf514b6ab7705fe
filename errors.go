package tweetie

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

var (
	// ErrFileAccess is returned when the key file cannot be opened or read.
	ErrFileAccess = errors.New("key file not accessible")

	// ErrKeyIndex is returned when a key position is missing from the key file line.
	ErrKeyIndex = errors.New("key index out of range")

	// ErrAuthentication marks bad, revoked or expired OAuth credentials.
	// It only surfaces on the first remote call.
	ErrAuthentication = errors.New("twitter authentication failed")

	// ErrRemoteCall marks any other failure of a Twitter API call.
	ErrRemoteCall = errors.New("twitter API call failed")
)

// errorClass categorizes Twitter API error responses.
type errorClass int

const (
	errNone          errorClass = iota
	errAuth                     // 32, 89, 135, 215: credentials rejected
	errRateLimited              // 88: rate limit exceeded
	errNotFound                 // 34, 50: page or user does not exist
	errSuspended                // 63, 64: account suspended
	errNotAuthorized            // 179: protected account
	errInternal                 // 131: Twitter internal error
	errOther
)

func (c errorClass) String() string {
	switch c {
	case errNone:
		return "none"
	case errAuth:
		return "auth"
	case errRateLimited:
		return "rate_limited"
	case errNotFound:
		return "not_found"
	case errSuspended:
		return "suspended"
	case errNotAuthorized:
		return "not_authorized"
	case errInternal:
		return "internal"
	}
	return "other"
}

// APIError is a failed Twitter API response.
type APIError struct {
	Endpoint string
	Status   int
	Codes    []int
	Message  string
	// ResetAt is when the rate-limit window reopens; zero unless RateLimited.
	ResetAt time.Time
	class   errorClass
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s HTTP %d", e.Endpoint, e.Status)
	if len(e.Codes) > 0 {
		codes := make([]string, len(e.Codes))
		for i, c := range e.Codes {
			codes[i] = strconv.Itoa(c)
		}
		fmt.Fprintf(&b, " (codes %s)", strings.Join(codes, ","))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap maps the response onto ErrAuthentication or ErrRemoteCall.
func (e *APIError) Unwrap() error {
	if e.class == errAuth {
		return ErrAuthentication
	}
	return ErrRemoteCall
}

// NotFound reports whether the target user or page does not exist.
// An APIError built without error codes falls back on its HTTP status.
func (e *APIError) NotFound() bool {
	switch e.class {
	case errNotFound:
		return true
	case errNone, errOther:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Protected reports whether the target account's content is not visible to
// the authenticated user.
func (e *APIError) Protected() bool {
	return e.class == errNotAuthorized
}

// RateLimited reports whether Twitter rejected the call for exceeding its rate limit.
func (e *APIError) RateLimited() bool {
	return e.class == errRateLimited || (e.class == errNone && e.Status == http.StatusTooManyRequests)
}

// newAPIError builds an APIError from a non-200 response.
func newAPIError(endpoint string, status int, body []byte) *APIError {
	codes, msg := parseErrorBody(body)
	if msg == "" {
		msg = truncateBytes(body, 200)
	}
	return &APIError{
		Endpoint: endpoint,
		Status:   status,
		Codes:    codes,
		Message:  msg,
		class:    classifyError(endpoint, status, codes),
	}
}

// classifyError combines Twitter error codes with the HTTP status.
// Known codes win; a 401 without an auth code on a read of another user's data
// means that user is protected, and any other 401 is a credential failure.
func classifyError(endpoint string, status int, codes []int) errorClass {
	class := classifyCodes(codes)
	switch class {
	case errNone, errOther:
	default:
		return class
	}
	switch status {
	case http.StatusUnauthorized:
		if class == errNone && Endpoints[endpoint].TargetsUser {
			return errNotAuthorized
		}
		return errAuth
	case http.StatusTooManyRequests:
		return errRateLimited
	case http.StatusNotFound:
		return errNotFound
	}
	return errOther
}

func classifyCodes(codes []int) errorClass {
	for _, code := range codes {
		switch code {
		case 32, 89, 135, 215:
			return errAuth
		case 88:
			return errRateLimited
		case 34, 50:
			return errNotFound
		case 63, 64:
			return errSuspended
		case 179:
			return errNotAuthorized
		case 131:
			return errInternal
		}
	}
	if len(codes) > 0 {
		return errOther
	}
	return errNone
}

// parseErrorBody extracts error codes and the first message from either the
// {"errors":[{"code":..,"message":..}]} or the {"error":".."} response shape.
func parseErrorBody(body []byte) ([]int, string) {
	var codes []int
	var msg string
	_, _ = jsonparser.ArrayEach(body, func(value []byte, _ jsonparser.ValueType, _ int, err error) {
		if err != nil {
			return
		}
		if code, err := jsonparser.GetInt(value, "code"); err == nil {
			codes = append(codes, int(code))
		}
		if msg == "" {
			msg, _ = jsonparser.GetString(value, "message")
		}
	}, "errors")
	if msg == "" {
		msg, _ = jsonparser.GetString(body, "error")
	}
	return codes, msg
}

// parseRateLimitReset parses the X-Rate-Limit-Reset unix timestamp header.
// Falls back to 15 minutes from now if missing or invalid.
func parseRateLimitReset(v string) time.Time {
	if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(ts, 0)
	}
	return time.Now().Add(15 * time.Minute)
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
