package mentions

import (
	"sync"

	"tx-mentions-bot/internal/types"
)

// Tracker remembers the id of the last mention that was fully handled.
// It is the only cross-cycle state in the bot and is deliberately not
// persisted: a restart re-establishes the watermark from the live stream.
// Only one poll loop may drive a tracker; the mutex exists solely so the
// status endpoint can read the watermark from the server goroutine.
type Tracker struct {
	mu              sync.Mutex
	lastProcessedID string
}

// NewTracker returns a tracker with no watermark yet.
func NewTracker() *Tracker {
	return &Tracker{}
}

// DetectNew inspects a newest-first batch of recent mentions and returns
// the one to process, if any. On the very first call with a non-empty
// batch it records the newest id as the watermark and returns nothing, so
// mentions that predate startup are never processed. Only the newest
// mention is ever returned; older ones that arrived in the same window
// are skipped for good.
func (t *Tracker) DetectNew(recent []types.Mention) (types.Mention, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(recent) == 0 {
		return types.Mention{}, false
	}
	if t.lastProcessedID == "" {
		t.lastProcessedID = recent[0].ID
		return types.Mention{}, false
	}
	if recent[0].ID != t.lastProcessedID {
		return recent[0], true
	}
	return types.Mention{}, false
}

// Advance moves the watermark to m. Call it only after the mention has
// been fully handled; a failed cycle must leave the watermark alone.
func (t *Tracker) Advance(m types.Mention) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastProcessedID = m.ID
}

// LastProcessedID returns the current watermark, empty before the first
// successful DetectNew.
func (t *Tracker) LastProcessedID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastProcessedID
}
