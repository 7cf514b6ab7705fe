package tweetie

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jason-yu1/Tweet-Sentiment-Analysis/sentiment"
)

// FetchTweets collects up to DefaultLimit of name's most recent posts, in the
// order Twitter delivers them, and scores each text for sentiment.
// A single analyzer is built per call and shared by all posts.
func FetchTweets(ctx context.Context, api TimelineAPI, name string, opts ...FetchOption) (*Timeline, error) {
	o := newFetchOptions(opts)
	analyzer := o.newAnalyzer()

	statuses, err := Items(ctx, func(ctx context.Context, cursor string, count int) (Page[Status], error) {
		return api.UserTimeline(ctx, name, cursor, count)
	}, o.limit)
	if err != nil {
		return nil, fmt.Errorf("fetch tweets of %s: %w", name, err)
	}

	tweets := make([]Tweet, 0, len(statuses))
	for _, st := range statuses {
		tweets = append(tweets, newTweet(st, analyzer))
	}

	slog.Debug("tweets fetched", slog.String("user", name), slog.Int("count", len(tweets)))
	return &Timeline{User: name, Count: len(tweets), Tweets: tweets}, nil
}

func newTweet(st Status, analyzer sentiment.Analyzer) Tweet {
	text := st.text()
	return Tweet{
		ID:        st.ID,
		Created:   timeOrNil(parseCreatedAt(st.CreatedAt)),
		Retweeted: st.RetweetCount,
		Text:      text,
		Hashtags:  orEmpty(st.Entities.Hashtags),
		URLs:      orEmpty(st.Entities.URLs),
		Mentions:  orEmpty(st.Entities.UserMentions),
		Score:     sentiment.Compound(analyzer, text),
	}
}
