package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"

	"tx-mentions-bot/internal/thread"
	"tx-mentions-bot/internal/types"
)

// MentionsHandler runs the mention pipeline: ask the agent about the
// mention, draft a three-tweet thread from the answer, publish it as a
// reply chain under the mention. It also serves POST /mentions so an
// external watcher can push mentions instead of waiting for the poll
// loop.
type MentionsHandler struct {
	Secret string
	// Run asks the blockchain agent about the mention text.
	Run func(ctx context.Context, query string) (string, error)
	// Compose drafts the thread from the agent answer. When nil, the
	// agent answer is parsed directly.
	Compose ComposeFunc
	// Publish posts the thread as a reply chain and returns the root id.
	Publish func(ctx context.Context, t types.Thread, replyTo string) (string, error)
}

// ComposeFunc drafts a three-tweet thread from raw transaction analysis.
type ComposeFunc func(ctx context.Context, data string) (types.Thread, error)

// Process handles one mention end to end.
func (h MentionsHandler) Process(ctx context.Context, m types.Mention) error {
	log.Printf("processing mention %s: %s", m.ID, m.Text)

	answer, err := h.Run(ctx, normalizeTweetText(m.Text))
	if err != nil {
		return fmt.Errorf("agent: %w", err)
	}

	var t types.Thread
	if h.Compose != nil {
		t, err = h.Compose(ctx, answer)
		if err != nil {
			return fmt.Errorf("compose: %w", err)
		}
	} else {
		t = thread.Parse(answer)
	}

	rootID, err := h.Publish(ctx, t, m.ID)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	log.Printf("thread posted under mention %s, root tweet %s", m.ID, rootID)
	return nil
}

// Handle verifies the shared secret (if configured), processes each
// pushed mention, and returns a per-mention summary.
func (h MentionsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.Secret != "" && r.Header.Get("X-Webhook-Secret") != h.Secret {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// Accept either a single payload object or an array of payloads
	var payload types.MentionsPayload
	var payloads []types.MentionsPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		// Not an array, try single
		if err2 := json.Unmarshal(body, &payload); err2 != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		payloads = []types.MentionsPayload{payload}
	}

	mentions := make([]types.Mention, 0)
	received := 0
	for _, p := range payloads {
		if p.Count > 0 {
			received += p.Count
		}
		if len(p.Mentions) > 0 {
			mentions = append(mentions, p.Mentions...)
		}
	}
	if received == 0 {
		received = len(mentions)
	}

	type res struct {
		MentionID string `json:"mention_id"`
		Posted    bool   `json:"posted"`
		Error     string `json:"error,omitempty"`
	}

	results := make([]res, 0, len(mentions))
	for _, m := range mentions {
		if err := h.Process(r.Context(), m); err != nil {
			results = append(results, res{MentionID: m.ID, Posted: false, Error: err.Error()})
			continue
		}
		results = append(results, res{MentionID: m.ID, Posted: true})
	}

	summary := struct {
		Received  int   `json:"received"`
		Processed int   `json:"processed"`
		Results   []res `json:"results"`
	}{
		Received:  received,
		Processed: len(mentions),
		Results:   results,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(summary)
}

// normalizeTweetText removes handles and URLs and trims whitespace to form a concise question input.
func normalizeTweetText(s string) string {
	// Remove URLs
	urlRe := regexp.MustCompile(`https?://\S+`)
	s = urlRe.ReplaceAllString(s, " ")
	// Remove @handles
	handleRe := regexp.MustCompile(`@[A-Za-z0-9_]+`)
	s = handleRe.ReplaceAllString(s, " ")
	// Collapse whitespace
	s = strings.TrimSpace(strings.Join(strings.Fields(s), " "))
	return s
}
