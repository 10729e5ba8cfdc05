package twitter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds() Credentials {
	return Credentials{
		APIKey:            "key",
		APISecret:         "secret",
		AccessToken:       "token",
		AccessTokenSecret: "token-secret",
	}
}

func TestClientRecentMentions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/me":
			assert.Contains(t, r.Header.Get("Authorization"), "OAuth")
			_, _ = w.Write([]byte(`{"data":{"id":"42","username":"txbot"}}`))
		case "/users/42/mentions":
			assert.Equal(t, "5", r.URL.Query().Get("max_results"))
			_, _ = w.Write([]byte(`{"data":[
				{"id":"m2","text":"analyze 0xabc on Base","author_id":"7","created_at":"2025-04-15T00:00:00Z"},
				{"id":"m1","text":"older","author_id":"8","created_at":"2025-04-14T00:00:00Z"}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds())
	mentions, err := c.RecentMentions(context.Background())
	require.NoError(t, err)

	require.Len(t, mentions, 2)
	assert.Equal(t, "m2", mentions[0].ID)
	assert.Equal(t, "analyze 0xabc on Base", mentions[0].Text)
	assert.Equal(t, "7", mentions[0].AuthorID)
	assert.Equal(t, "m1", mentions[1].ID)

	// The user id is cached; a second fetch must not call /users/me again.
	_, err = c.RecentMentions(context.Background())
	require.NoError(t, err)
}

func TestClientRecentMentionsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/me" {
			_, _ = w.Write([]byte(`{"data":{"id":"42"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"meta":{"result_count":0}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds())
	mentions, err := c.RecentMentions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mentions)
}

func TestClientCreateTweet(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tweets", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"t1"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds())
	id, err := c.CreateTweet(context.Background(), "hello", "m2")
	require.NoError(t, err)
	assert.Equal(t, "t1", id)

	assert.Equal(t, "hello", body["text"])
	reply, ok := body["reply"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "m2", reply["in_reply_to_tweet_id"])
}

func TestClientCreateTweetStandalone(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"data":{"id":"t1"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds())
	_, err := c.CreateTweet(context.Background(), "hello", "")
	require.NoError(t, err)
	_, hasReply := body["reply"]
	assert.False(t, hasReply, "standalone tweets carry no reply block")
}

func TestClientCreateTweetFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds())
	_, err := c.CreateTweet(context.Background(), "hello", "m2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
