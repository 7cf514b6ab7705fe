package tweetie

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// FetchFollowing collects up to DefaultLimit accounts that name follows and
// returns them sorted by follower count, highest first. Accounts with equal
// counts keep the order Twitter delivered them in.
func FetchFollowing(ctx context.Context, api FollowingAPI, name string, opts ...FetchOption) ([]Friend, error) {
	o := newFetchOptions(opts)

	users, err := Items(ctx, func(ctx context.Context, cursor string, count int) (Page[User], error) {
		return api.Following(ctx, name, cursor, count)
	}, o.limit)
	if err != nil {
		return nil, fmt.Errorf("fetch following of %s: %w", name, err)
	}

	friends := make([]Friend, 0, len(users))
	for _, u := range users {
		friends = append(friends, newFriend(u))
	}
	slices.SortStableFunc(friends, func(a, b Friend) int {
		return cmp.Compare(b.Followers, a.Followers)
	})

	slog.Debug("following fetched", slog.String("user", name), slog.Int("count", len(friends)))
	return friends, nil
}
