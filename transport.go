package tweetie

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// browserDoer is the subset of *stealth.BrowserClient the transport needs.
type browserDoer interface {
	DoWithHeaderOrderCtx(ctx context.Context, method, url string, headers map[string]string, body io.Reader, order []string) ([]byte, map[string]string, int, error)
}

// stealthTransport adapts a browser-fingerprinted client to http.RoundTripper,
// so that requests already signed by the OAuth transport go out through it.
type stealthTransport struct {
	client    browserDoer
	userAgent string
}

// newTransport returns cfg.Transport when set, otherwise a stealth transport
// using the configured proxy and browser profile.
func newTransport(cfg ClientConfig) (http.RoundTripper, error) {
	if cfg.Transport != nil {
		return cfg.Transport, nil
	}
	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(twitterHeaderOrder),
	}
	if cfg.Proxy != "" {
		opts = append(opts, stealth.WithProxy(cfg.Proxy))
	}
	if cfg.Profile != nil {
		opts = append(opts, stealth.WithProfile(cfg.Profile.TLSProfile))
	}
	if secs := timeoutSeconds(cfg.Timeout); secs > 0 {
		opts = append(opts, stealth.WithTimeout(secs))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}
	return &stealthTransport{client: bc, userAgent: cfg.userAgent()}, nil
}

// RoundTrip implements http.RoundTripper.
func (t *stealthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	headers := apiHeaders(t.userAgent)
	for k, vs := range req.Header {
		if len(vs) > 0 {
			headers[strings.ToLower(k)] = strings.Join(vs, ", ")
		}
	}

	var body io.Reader
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	ctx := req.Context()
	respBody, respHdrs, status, err := t.client.DoWithHeaderOrderCtx(ctx, req.Method, req.URL.String(), headers, body, twitterHeaderOrder)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	h := make(http.Header, len(respHdrs))
	for k, v := range respHdrs {
		h.Set(k, v)
	}
	return &http.Response{
		Status:        strconv.Itoa(status) + " " + http.StatusText(status),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(respBody)),
		ContentLength: int64(len(respBody)),
		Request:       req,
	}, nil
}

// timeoutSeconds converts d to whole seconds for go-stealth, rounding up so a
// sub-second timeout still bounds the request.
func timeoutSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
