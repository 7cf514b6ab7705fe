package tweetie

import "github.com/jason-yu1/Tweet-Sentiment-Analysis/sentiment"

// DefaultLimit is the number of items each fetcher collects unless overridden.
const DefaultLimit = 100

type fetchOptions struct {
	limit       int
	newAnalyzer sentiment.Factory
}

// FetchOption configures FetchTweets and FetchFollowing.
type FetchOption func(*fetchOptions)

// WithLimit caps the number of collected items.
func WithLimit(n int) FetchOption {
	return func(o *fetchOptions) { o.limit = n }
}

// WithAnalyzer sets the factory FetchTweets calls once per invocation.
// Default: sentiment.NewVader.
func WithAnalyzer(f sentiment.Factory) FetchOption {
	return func(o *fetchOptions) { o.newAnalyzer = f }
}

func newFetchOptions(opts []FetchOption) fetchOptions {
	o := fetchOptions{
		limit:       DefaultLimit,
		newAnalyzer: sentiment.NewVader,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.limit < 0 {
		o.limit = 0
	}
	if o.newAnalyzer == nil {
		o.newAnalyzer = sentiment.NewVader
	}
	return o
}
