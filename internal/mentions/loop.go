package mentions

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"tx-mentions-bot/internal/types"
)

// Default sleep durations for the poll loop.
const (
	DefaultInterval = 15 * time.Minute
	DefaultBackoff  = 60 * time.Second
)

// Loop polls the mention source on a fixed interval and dispatches at
// most one new mention per cycle. A failed cycle (fetch, agent, or
// publish) is logged, leaves the watermark untouched, and shortens the
// next sleep to Backoff so the loop recovers quickly; the failed mention
// itself is not requeued. Cycles are strictly sequential.
type Loop struct {
	// Fetch returns recent mentions, newest first.
	Fetch func(ctx context.Context) ([]types.Mention, error)
	// Handle runs the full pipeline for one mention.
	Handle func(ctx context.Context, m types.Mention) error

	Tracker  *Tracker
	Interval time.Duration
	Backoff  time.Duration

	// Sleep suspends between cycles. Tests inject a recorder; when nil a
	// context-aware timer sleep is used.
	Sleep func(ctx context.Context, d time.Duration)

	cycles    atomic.Int64
	errors    atomic.Int64
	processed atomic.Int64
}

// Run executes cycles until ctx is cancelled. It blocks.
func (l *Loop) Run(ctx context.Context) {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	backoff := l.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	sleep := l.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	for {
		if ctx.Err() != nil {
			return
		}
		d := interval
		if err := l.cycle(ctx); err != nil {
			log.Printf("poll cycle failed: %v", err)
			l.errors.Add(1)
			d = backoff
		}
		sleep(ctx, d)
	}
}

func (l *Loop) cycle(ctx context.Context) error {
	l.cycles.Add(1)

	recent, err := l.Fetch(ctx)
	if err != nil {
		return err
	}

	m, ok := l.Tracker.DetectNew(recent)
	if !ok {
		log.Printf("no new mentions found")
		return nil
	}

	log.Printf("new mention found: %s", m.ID)
	if err := l.Handle(ctx, m); err != nil {
		return err
	}
	l.Tracker.Advance(m)
	l.processed.Add(1)
	return nil
}

// Stats is a point-in-time snapshot of loop counters, served by the
// status endpoint.
type Stats struct {
	Cycles          int64  `json:"cycles"`
	Errors          int64  `json:"errors"`
	Processed       int64  `json:"processed"`
	LastProcessedID string `json:"last_processed_id,omitempty"`
}

// Stats returns the current counters and watermark.
func (l *Loop) Stats() Stats {
	return Stats{
		Cycles:          l.cycles.Load(),
		Errors:          l.errors.Load(),
		Processed:       l.processed.Load(),
		LastProcessedID: l.Tracker.LastProcessedID(),
	}
}

// sleepCtx sleeps for d or until ctx is cancelled, whichever is first.
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
