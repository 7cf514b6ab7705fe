package tweetie

import (
	"context"
	"log/slog"
)

// Page is one page of a cursor-paginated result. An empty Next means the
// source has no further pages.
type Page[T any] struct {
	Items []T
	Next  string
}

// PageFunc fetches the page at cursor, asking for at most count items.
// The first call receives the empty cursor.
type PageFunc[T any] func(ctx context.Context, cursor string, count int) (Page[T], error)

// Items walks pages from fetch until limit items are collected or the source
// is exhausted. On error nothing collected so far is returned.
func Items[T any](ctx context.Context, fetch PageFunc[T], limit int) ([]T, error) {
	items := make([]T, 0, max(0, min(limit, defaultPageSize)))
	var cursor string

	for len(items) < limit {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page, err := fetch(ctx, cursor, limit-len(items))
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		slog.Debug("page fetched", slog.Int("items", len(page.Items)), slog.Int("total", len(items)), slog.Bool("more", page.Next != ""))

		if page.Next == "" || len(page.Items) == 0 || page.Next == cursor {
			break
		}
		cursor = page.Next
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
