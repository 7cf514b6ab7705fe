package tweetie

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFollowing serves users in pages using the offset as cursor.
type fakeFollowing struct {
	users    []User
	pageSize int
	err      error
}

func (f *fakeFollowing) Following(_ context.Context, _, cursor string, count int) (Page[User], error) {
	if f.err != nil {
		return Page[User]{}, f.err
	}
	start := 0
	if cursor != "" {
		start, _ = strconv.Atoi(cursor)
	}
	end := min(len(f.users), start+min(count, f.pageSize))
	next := ""
	if end < len(f.users) {
		next = strconv.Itoa(end)
	}
	return Page[User]{Items: f.users[start:end], Next: next}, nil
}

func TestFetchFollowing_SortsByFollowers(t *testing.T) {
	api := &fakeFollowing{
		users: []User{
			{Name: "Small", ScreenName: "small", FollowersCount: 500, CreatedAt: "Tue Mar 21 20:50:14 +0000 2006"},
			{Name: "Big", ScreenName: "big", FollowersCount: 10000, CreatedAt: "Sat Jun 02 08:15:00 +0000 2012"},
		},
		pageSize: 20,
	}

	friends, err := FetchFollowing(context.Background(), api, "jack")
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, "big", friends[0].ScreenName)
	assert.Equal(t, 10000, friends[0].Followers)
	assert.Equal(t, "small", friends[1].ScreenName)
	assert.Equal(t, 500, friends[1].Followers)
}

func TestFetchFollowing_NonIncreasingAndStable(t *testing.T) {
	counts := []int{3, 70, 3, 900, 0, 70, 12, 3}
	var users []User
	for i, c := range counts {
		users = append(users, User{ScreenName: "u" + strconv.Itoa(i), FollowersCount: c})
	}
	api := &fakeFollowing{users: users, pageSize: 3}

	friends, err := FetchFollowing(context.Background(), api, "jack")
	require.NoError(t, err)
	require.Len(t, friends, len(counts))

	for i := 1; i < len(friends); i++ {
		assert.GreaterOrEqual(t, friends[i-1].Followers, friends[i].Followers)
	}
	// equal counts keep delivery order
	assert.Equal(t, []string{"u1", "u5"}, []string{friends[1].ScreenName, friends[2].ScreenName})
	assert.Equal(t, []string{"u0", "u2", "u7"}, []string{friends[4].ScreenName, friends[5].ScreenName, friends[6].ScreenName})
}

func TestFetchFollowing_Projection(t *testing.T) {
	api := &fakeFollowing{
		users: []User{{
			ID:              7,
			Name:            "Go",
			ScreenName:      "golang",
			FollowersCount:  42,
			FriendsCount:    1,
			CreatedAt:       "Wed Mar 19 23:59:10 -0700 2008",
			ProfileImageURL: "https://pbs.twimg.com/profile_images/1/go.png",
		}},
		pageSize: 20,
	}

	friends, err := FetchFollowing(context.Background(), api, "jack")
	require.NoError(t, err)
	require.Len(t, friends, 1)

	f := friends[0]
	assert.Equal(t, "Go", f.Name)
	assert.Equal(t, "golang", f.ScreenName)
	assert.Equal(t, 42, f.Followers)
	// 23:59 at -0700 is already the next day in UTC
	assert.Equal(t, Date{Year: 2008, Month: time.March, Day: 20}, f.Created)
	assert.Equal(t, "https://pbs.twimg.com/profile_images/1/go.png", f.Image)
}

func TestFetchFollowing_CapsAtDefaultLimit(t *testing.T) {
	users := make([]User, 230)
	for i := range users {
		users[i] = User{ScreenName: "u" + strconv.Itoa(i), FollowersCount: i}
	}
	api := &fakeFollowing{users: users, pageSize: 200}

	friends, err := FetchFollowing(context.Background(), api, "jack")
	require.NoError(t, err)
	assert.Len(t, friends, DefaultLimit)
	assert.Equal(t, 99, friends[0].Followers)
}

func TestFetchFollowing_Empty(t *testing.T) {
	friends, err := FetchFollowing(context.Background(), &fakeFollowing{pageSize: 20}, "loner")
	require.NoError(t, err)
	assert.NotNil(t, friends)
	assert.Empty(t, friends)
}

func TestFetchFollowing_PropagatesError(t *testing.T) {
	api := &fakeFollowing{err: &APIError{Endpoint: "Following", Status: 404, Codes: []int{50}, class: errNotFound}}

	friends, err := FetchFollowing(context.Background(), api, "nobody")
	assert.Nil(t, friends)
	assert.ErrorIs(t, err, ErrRemoteCall)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.NotFound())
}
