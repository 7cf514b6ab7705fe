package tweetie

import (
	"encoding/json"
	"fmt"
	"time"
)

// Tweet is a single post enriched with its sentiment score.
type Tweet struct {
	ID        int64      `json:"id" yaml:"id"`
	Created   *time.Time `json:"created" yaml:"created"`     // nil when Twitter's timestamp is unparseable
	Retweeted int        `json:"retweeted" yaml:"retweeted"` // retweet count
	Text      string     `json:"text" yaml:"text"`
	Hashtags  []Hashtag  `json:"hashtags" yaml:"hashtags"`
	URLs      []URL      `json:"urls" yaml:"urls"`
	Mentions  []Mention  `json:"mentions" yaml:"mentions"`
	Score     float64    `json:"score" yaml:"score"` // VADER compound, [-1, 1]
}

// Timeline is the result of FetchTweets. Count always equals len(Tweets).
type Timeline struct {
	User   string  `json:"user" yaml:"user"`
	Count  int     `json:"count" yaml:"count"`
	Tweets []Tweet `json:"tweets" yaml:"tweets"`
}

// Friend is the projection of an account the target user follows.
type Friend struct {
	Name       string `json:"name" yaml:"name"`
	ScreenName string `json:"screen_name" yaml:"screen_name"`
	Followers  int    `json:"followers" yaml:"followers"`
	Created    Date   `json:"created" yaml:"created"`
	Image      string `json:"image" yaml:"image"`
}

// Hashtag is a hashtag entity extracted by Twitter.
type Hashtag struct {
	Text    string `json:"text" yaml:"text"`
	Indices []int  `json:"indices" yaml:"indices"`
}

// URL is a link entity extracted by Twitter.
type URL struct {
	URL         string `json:"url" yaml:"url"`
	ExpandedURL string `json:"expanded_url" yaml:"expanded_url"`
	DisplayURL  string `json:"display_url" yaml:"display_url"`
	Indices     []int  `json:"indices" yaml:"indices"`
}

// Mention is a user-mention entity extracted by Twitter.
type Mention struct {
	ID         int64  `json:"id" yaml:"id"`
	ScreenName string `json:"screen_name" yaml:"screen_name"`
	Name       string `json:"name" yaml:"name"`
	Indices    []int  `json:"indices" yaml:"indices"`
}

// Entities groups the entity lists attached to a status.
type Entities struct {
	Hashtags     []Hashtag `json:"hashtags"`
	URLs         []URL     `json:"urls"`
	UserMentions []Mention `json:"user_mentions"`
}

// Status is a v1.1 status object as delivered by statuses/user_timeline.
type Status struct {
	ID           int64    `json:"id"`
	IDStr        string   `json:"id_str"`
	CreatedAt    string   `json:"created_at"`
	Text         string   `json:"text"`
	FullText     string   `json:"full_text"`
	RetweetCount int      `json:"retweet_count"`
	Entities     Entities `json:"entities"`
}

// User is a v1.1 user object as delivered by friends/list.
type User struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	ScreenName          string `json:"screen_name"`
	FollowersCount      int    `json:"followers_count"`
	FriendsCount        int    `json:"friends_count"`
	CreatedAt           string `json:"created_at"`
	ProfileImageURL     string `json:"profile_image_url_https"`
	ProfileImageURLHTTP string `json:"profile_image_url"`
}

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool { return d == Date{} }

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes d as "YYYY-MM-DD", or null for the zero date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string. null and "" decode to the zero date.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", *s, err)
	}
	*d = DateOf(t)
	return nil
}

// MarshalYAML encodes d as "YYYY-MM-DD", or null for the zero date.
func (d Date) MarshalYAML() (any, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
