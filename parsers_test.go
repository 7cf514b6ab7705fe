package tweetie

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jason-yu1/Tweet-Sentiment-Analysis/sentiment"
)

func TestParseTimelinePage(t *testing.T) {
	body := `[
		{
			"created_at": "Wed Oct 10 20:19:24 +0000 2018",
			"id": 1050118621198921728,
			"id_str": "1050118621198921728",
			"full_text": "To make room for more expression, we will now count all emojis as equal #emoji https://t.co/x @TwitterDev",
			"truncated": false,
			"retweet_count": 161,
			"entities": {
				"hashtags": [{"text": "emoji", "indices": [72, 78]}],
				"urls": [{"url": "https://t.co/x", "expanded_url": "https://blog.twitter.com", "display_url": "blog.twitter.com", "indices": [79, 93]}],
				"user_mentions": [{"screen_name": "TwitterDev", "name": "Twitter Dev", "id": 2244994945, "indices": [94, 105]}]
			}
		}
	]`

	statuses, err := parseTimelinePage([]byte(body))
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	st := statuses[0]
	assert.Equal(t, int64(1050118621198921728), st.ID)
	assert.Equal(t, 161, st.RetweetCount)
	assert.Contains(t, st.text(), "#emoji")
	assert.Equal(t, []Hashtag{{Text: "emoji", Indices: []int{72, 78}}}, st.Entities.Hashtags)
	assert.Equal(t, "https://blog.twitter.com", st.Entities.URLs[0].ExpandedURL)
	assert.Equal(t, "TwitterDev", st.Entities.UserMentions[0].ScreenName)
	assert.Equal(t, int64(2244994945), st.Entities.UserMentions[0].ID)

	assert.Equal(t, "1050118621198921727", nextMaxID(statuses))
}

func TestParseTimelinePage_NotAnArray(t *testing.T) {
	_, err := parseTimelinePage([]byte(`{"errors":[{"code":34}]}`))
	assert.Error(t, err)
}

func TestParseFriendsPage(t *testing.T) {
	body := `{
		"users": [
			{"id": 1, "name": "A", "screen_name": "a", "followers_count": 10, "created_at": "Tue Mar 21 20:50:14 +0000 2006",
			 "profile_image_url": "http://pbs.twimg.com/a.jpg", "profile_image_url_https": "https://pbs.twimg.com/a.jpg"}
		],
		"next_cursor": 1489467234237774933,
		"next_cursor_str": "1489467234237774933",
		"previous_cursor": 0,
		"previous_cursor_str": "0"
	}`
	users, next, err := parseFriendsPage([]byte(body))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "1489467234237774933", next)
	assert.Equal(t, "https://pbs.twimg.com/a.jpg", newFriend(users[0]).Image)

	_, next, err = parseFriendsPage([]byte(`{"users": [], "next_cursor": 0, "next_cursor_str": "0"}`))
	require.NoError(t, err)
	assert.Empty(t, next)
}

func TestNewFriend_ImageFallbackAndBadDate(t *testing.T) {
	f := newFriend(User{ProfileImageURLHTTP: "http://pbs.twimg.com/a.jpg", CreatedAt: "yesterday"})
	assert.Equal(t, "http://pbs.twimg.com/a.jpg", f.Image)
	assert.True(t, f.Created.IsZero())
}

func TestNextMaxID(t *testing.T) {
	assert.Empty(t, nextMaxID(nil))
	assert.Empty(t, nextMaxID([]Status{{ID: 1}}))
	assert.Equal(t, "9", nextMaxID([]Status{{ID: 30}, {ID: 10}}))
}

func TestParseCreatedAt(t *testing.T) {
	got := parseCreatedAt("Mon Jan 02 15:04:05 +0000 2020")
	assert.Equal(t, time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC), got)
	assert.True(t, parseCreatedAt("").IsZero())
	assert.True(t, parseCreatedAt("2020-01-02").IsZero())
}

func TestDate(t *testing.T) {
	d := DateOf(time.Date(2012, time.June, 2, 23, 59, 0, 0, time.FixedZone("X", -3*3600)))
	assert.Equal(t, Date{Year: 2012, Month: time.June, Day: 3}, d)
	assert.Equal(t, "2012-06-03", d.String())

	b, err := json.Marshal(Friend{ScreenName: "a", Created: d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"","screen_name":"a","followers":0,"created":"2012-06-03","image":""}`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2012-06-03"`), &back))
	assert.Equal(t, d, back)
	assert.Error(t, json.Unmarshal([]byte(`"June 3"`), &back))

	assert.True(t, Date{}.IsZero())
	b, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
	require.NoError(t, json.Unmarshal([]byte(`null`), &back))
	assert.True(t, back.IsZero())
}

func TestUnparseableTimestampsEncodeAsNull(t *testing.T) {
	tw := newTweet(Status{ID: 1, CreatedAt: "yesterday", Text: "x"}, sentiment.Func(func(string) sentiment.Scores { return sentiment.Scores{} }))
	f := newFriend(User{ScreenName: "a", CreatedAt: "yesterday"})

	tb, err := json.Marshal(tw)
	require.NoError(t, err)
	fb, err := json.Marshal(f)
	require.NoError(t, err)

	var tm, fm map[string]any
	require.NoError(t, json.Unmarshal(tb, &tm))
	require.NoError(t, json.Unmarshal(fb, &fm))
	assert.Contains(t, tm, "created")
	assert.Nil(t, tm["created"])
	assert.Contains(t, fm, "created")
	assert.Nil(t, fm["created"])

	yb, err := yaml.Marshal(tw)
	require.NoError(t, err)
	assert.Contains(t, string(yb), "created: null")
}

func TestTimelineJSONShape(t *testing.T) {
	tl := Timeline{User: "jack", Count: 0, Tweets: []Tweet{}}
	b, err := json.Marshal(tl)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"jack","count":0,"tweets":[]}`, string(b))
}
