package twitter

import (
	"context"
	"errors"
	"fmt"

	"tx-mentions-bot/internal/types"
)

// ErrEmptyThread is returned when every segment of a thread is empty and
// there is nothing to post.
var ErrEmptyThread = errors.New("thread has no non-empty segments")

// PublishError reports a thread that was only partially posted. Posting
// has no multi-tweet transaction, so callers must not assume
// all-or-nothing: Posted counts the segments that made it out before the
// failure.
type PublishError struct {
	Posted int
	Err    error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("thread publish failed after %d segment(s) posted: %v", e.Posted, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// PostFunc posts one tweet and returns its id. Satisfied by
// (*Client).CreateTweet.
type PostFunc func(ctx context.Context, text string, inReplyTo string) (string, error)

// Publisher posts a three-segment thread as a chained reply sequence.
type Publisher struct {
	Post PostFunc
}

// PublishThread posts the thread's segments in order, each as a reply to
// the previous tweet (the first replies to replyTo), and returns the id
// of the first posted tweet. Empty segments are skipped rather than
// posted as empty-text tweets; a thread with no content at all fails
// with ErrEmptyThread. Any post failure returns a *PublishError carrying
// how many segments were already out.
func (p Publisher) PublishThread(ctx context.Context, t types.Thread, replyTo string) (string, error) {
	if t.Empty() {
		return "", ErrEmptyThread
	}

	rootID := ""
	prevID := replyTo
	posted := 0
	for _, seg := range t.Segments() {
		if seg == "" {
			continue
		}
		id, err := p.Post(ctx, seg, prevID)
		if err != nil {
			return "", &PublishError{Posted: posted, Err: err}
		}
		posted++
		if rootID == "" {
			rootID = id
		}
		prevID = id
	}
	return rootID, nil
}
