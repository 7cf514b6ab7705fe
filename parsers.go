package tweetie

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// createdAtLayout is the timestamp format of v1.1 created_at fields.
const createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

// parseTimelinePage parses a statuses/user_timeline response.
func parseTimelinePage(body []byte) ([]Status, error) {
	var statuses []Status
	if err := json.Unmarshal(body, &statuses); err != nil {
		return nil, fmt.Errorf("unmarshal user timeline: %w", err)
	}
	return statuses, nil
}

// parseFriendsPage parses a friends/list response into users and the next cursor.
// Twitter signals the last page with next_cursor "0".
func parseFriendsPage(body []byte) ([]User, string, error) {
	var raw struct {
		Users         []User `json:"users"`
		NextCursorStr string `json:"next_cursor_str"`
		NextCursor    int64  `json:"next_cursor"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, "", fmt.Errorf("unmarshal friends list: %w", err)
	}
	next := raw.NextCursorStr
	if next == "" && raw.NextCursor != 0 {
		next = strconv.FormatInt(raw.NextCursor, 10)
	}
	if next == "0" {
		next = ""
	}
	return raw.Users, next, nil
}

// parseUser parses a single user object.
func parseUser(body []byte) (*User, error) {
	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	if u.ID == 0 && u.ScreenName == "" {
		return nil, fmt.Errorf("empty user in response: %s", truncateBytes(body, 200))
	}
	return &u, nil
}

// nextMaxID returns the max_id cursor that continues below the oldest status.
func nextMaxID(statuses []Status) string {
	if len(statuses) == 0 {
		return ""
	}
	oldest := statuses[len(statuses)-1].ID
	if oldest <= 1 {
		return ""
	}
	return strconv.FormatInt(oldest-1, 10)
}

// parseCreatedAt parses a v1.1 created_at value; invalid input yields the zero time.
func parseCreatedAt(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(createdAtLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// text returns the untruncated status text when Twitter sent one.
func (s Status) text() string {
	if s.FullText != "" {
		return s.FullText
	}
	return s.Text
}

// newFriend projects a user object onto the fields FetchFollowing reports.
func newFriend(u User) Friend {
	f := Friend{
		Name:       u.Name,
		ScreenName: u.ScreenName,
		Followers:  u.FollowersCount,
		Image:      u.ProfileImageURL,
	}
	if f.Image == "" {
		f.Image = u.ProfileImageURLHTTP
	}
	if created := parseCreatedAt(u.CreatedAt); !created.IsZero() {
		f.Created = DateOf(created)
	}
	return f
}

// timeOrNil maps the zero time to nil so it encodes as null.
func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// orEmpty keeps JSON output as [] rather than null for missing entity lists.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
