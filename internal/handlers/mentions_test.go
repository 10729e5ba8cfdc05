package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tx-mentions-bot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessRunsFullPipeline(t *testing.T) {
	var askedQuery string
	var published types.Thread
	var publishedReplyTo string

	h := MentionsHandler{
		Run: func(_ context.Context, q string) (string, error) {
			askedQuery = q
			return "Tweet 1: Hash 0xabc\nTweet 2: • From 0x1\n• To 0x2\nTweet 3: See https://basescan.org/tx/0xabc", nil
		},
		Publish: func(_ context.Context, th types.Thread, replyTo string) (string, error) {
			published = th
			publishedReplyTo = replyTo
			return "t1", nil
		},
	}

	m := types.Mention{ID: "m2", Text: "@txbot analyze 0xabc on Base https://example.com/x"}
	require.NoError(t, h.Process(context.Background(), m))

	assert.Equal(t, "analyze 0xabc on Base", askedQuery, "handles and URLs are stripped from the query")
	assert.Equal(t, "m2", publishedReplyTo)
	assert.Equal(t, "Hash 0xabc", published.Tweet1)
	assert.Equal(t, "• From 0x1\n• To 0x2", published.Tweet2)
	assert.Equal(t, "See https://basescan.org/tx/0xabc", published.Tweet3)
}

func TestProcessUsesComposerWhenSet(t *testing.T) {
	composed := types.Thread{Tweet1: "drafted"}
	h := MentionsHandler{
		Run: func(context.Context, string) (string, error) { return "raw analysis", nil },
		Compose: func(_ context.Context, data string) (types.Thread, error) {
			assert.Equal(t, "raw analysis", data)
			return composed, nil
		},
		Publish: func(_ context.Context, th types.Thread, _ string) (string, error) {
			assert.Equal(t, composed, th)
			return "t1", nil
		},
	}
	require.NoError(t, h.Process(context.Background(), types.Mention{ID: "m1", Text: "q"}))
}

func TestProcessAgentErrorPropagates(t *testing.T) {
	h := MentionsHandler{
		Run: func(context.Context, string) (string, error) { return "", errors.New("model down") },
		Publish: func(context.Context, types.Thread, string) (string, error) {
			t.Error("publish must not run when the agent fails")
			return "", nil
		},
	}
	err := h.Process(context.Background(), types.Mention{ID: "m1", Text: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent:")
}

func TestProcessPublishErrorPropagates(t *testing.T) {
	h := MentionsHandler{
		Run: func(context.Context, string) (string, error) { return "Tweet 1: A", nil },
		Publish: func(context.Context, types.Thread, string) (string, error) {
			return "", errors.New("duplicate content")
		},
	}
	err := h.Process(context.Background(), types.Mention{ID: "m1", Text: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish:")
}

func TestHandleRejectsBadSecret(t *testing.T) {
	h := MentionsHandler{Secret: "s3cret"}
	req := httptest.NewRequest(http.MethodPost, "/mentions", strings.NewReader(`{}`))
	req.Header.Set("X-Webhook-Secret", "wrong")
	rec := httptest.NewRecorder()

	h.Handle(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleProcessesPayload(t *testing.T) {
	h := MentionsHandler{
		Secret: "s3cret",
		Run:    func(context.Context, string) (string, error) { return "Tweet 1: A", nil },
		Publish: func(context.Context, types.Thread, string) (string, error) {
			return "t1", nil
		},
	}

	body := `{"count":2,"mentions":[{"id":"m1","text":"a"},{"id":"m2","text":"b"}]}`
	req := httptest.NewRequest(http.MethodPost, "/mentions", strings.NewReader(body))
	req.Header.Set("X-Webhook-Secret", "s3cret")
	rec := httptest.NewRecorder()

	h.Handle(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var summary struct {
		Received  int `json:"received"`
		Processed int `json:"processed"`
		Results   []struct {
			MentionID string `json:"mention_id"`
			Posted    bool   `json:"posted"`
			Error     string `json:"error,omitempty"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Received)
	assert.Equal(t, 2, summary.Processed)
	require.Len(t, summary.Results, 2)
	assert.True(t, summary.Results[0].Posted)
	assert.True(t, summary.Results[1].Posted)
}

func TestHandleAcceptsPayloadArray(t *testing.T) {
	h := MentionsHandler{
		Run:     func(context.Context, string) (string, error) { return "", errors.New("down") },
		Publish: func(context.Context, types.Thread, string) (string, error) { return "", nil },
	}

	body := `[{"mentions":[{"id":"m1","text":"a"}]},{"mentions":[{"id":"m2","text":"b"}]}]`
	req := httptest.NewRequest(http.MethodPost, "/mentions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"posted":false`)
}

func TestHandleBadBody(t *testing.T) {
	h := MentionsHandler{}
	req := httptest.NewRequest(http.MethodPost, "/mentions", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNormalizeTweetText(t *testing.T) {
	assert.Equal(t, "analyze 0xabc on Base",
		normalizeTweetText("@txbot   analyze 0xabc on Base  https://t.co/xyz"))
	assert.Equal(t, "", normalizeTweetText("@txbot https://t.co/xyz"))
}
