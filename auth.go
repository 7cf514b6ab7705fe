package tweetie

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"unicode"

	"github.com/dghubble/oauth1"
)

// keySeparator separates tokens on the first line of a key file.
const keySeparator = ", "

// Keys holds the positional tokens of a key file:
// consumer key, consumer secret, access token, access token secret.
type Keys []string

// At returns the token at position i, or ErrKeyIndex if the line was too short.
func (k Keys) At(i int) (string, error) {
	if i < 0 || i >= len(k) {
		return "", fmt.Errorf("%w: index %d, have %d keys", ErrKeyIndex, i, len(k))
	}
	return k[i], nil
}

// LoadKeys reads the first line of path, trims trailing whitespace and splits
// it on ", ". Token count and content are not validated.
func LoadKeys(path string) (Keys, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: read %s: %w", ErrFileAccess, path, err)
	}
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	return Keys(strings.Split(line, keySeparator)), nil
}

// Authenticate loads the key file at path and builds a client from it.
func Authenticate(path string, cfg ClientConfig) (*Client, error) {
	keys, err := LoadKeys(path)
	if err != nil {
		return nil, err
	}
	return NewClient(keys, cfg)
}

// NewClient builds an OAuth 1.0a client from consumer key/secret (keys 0 and 1)
// and access token/secret (keys 2 and 3). No request is made here; bad
// credentials surface as ErrAuthentication on the first API call.
func NewClient(keys Keys, cfg ClientConfig) (*Client, error) {
	cfg.defaults()

	var tokens [4]string
	for i := range tokens {
		v, err := keys.At(i)
		if err != nil {
			return nil, err
		}
		tokens[i] = v
	}

	base, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}

	config := oauth1.NewConfig(tokens[0], tokens[1])
	token := oauth1.NewToken(tokens[2], tokens[3])

	// oauth1 signs each request and hands it to the transport found in ctx.
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, &http.Client{Transport: base})
	httpClient := config.Client(ctx, token)
	httpClient.Timeout = cfg.Timeout

	slog.Debug("twitter client built", slog.String("base_url", cfg.BaseURL), slog.Bool("custom_transport", cfg.Transport != nil))
	return &Client{http: httpClient, cfg: cfg}, nil
}
