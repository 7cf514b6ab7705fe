// Package metrics exposes Prometheus counters for Twitter API calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeRateLimited = "rate_limited"
)

// Metrics holds the collectors registered for one process.
type Metrics struct {
	APICalls      *prometheus.CounterVec
	TweetsScored  prometheus.Counter
	FriendsListed prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		APICalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tweetie_api_calls_total",
			Help: "Twitter API calls by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		TweetsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tweetie_tweets_scored_total",
			Help: "Posts scored for sentiment",
		}),
		FriendsListed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tweetie_friends_listed_total",
			Help: "Followed accounts returned",
		}),
	}
	reg.MustRegister(m.APICalls, m.TweetsScored, m.FriendsListed)
	return m
}

// Hook returns a function suitable for tweetie.ClientConfig.MetricsHook.
func (m *Metrics) Hook() func(endpoint string, success, rateLimited bool) {
	return func(endpoint string, success, rateLimited bool) {
		m.APICalls.WithLabelValues(endpoint, outcome(success, rateLimited)).Inc()
	}
}

func outcome(success, rateLimited bool) string {
	switch {
	case success:
		return OutcomeSuccess
	case rateLimited:
		return OutcomeRateLimited
	default:
		return OutcomeError
	}
}
