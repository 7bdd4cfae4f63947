// Package notify provides sinks for ledger lifecycle events.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmynk/splitledger/internal/ledger"
)

var (
	_ ledger.Notifier = (*Logger)(nil)
	_ ledger.Notifier = Fanout(nil)
	_ ledger.Notifier = (*Recorder)(nil)
)

// Logger writes every event to a slog logger.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger. A nil logger means slog.Default().
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

func (l *Logger) Publish(ctx context.Context, e ledger.Event) {
	l.logger.InfoContext(ctx, "Ledger event",
		"topic", e.Topic,
		"bill_id", e.BillID,
		"payload", e.Payload,
	)
}

// Fanout delivers each event to every sink in order.
type Fanout []ledger.Notifier

func (f Fanout) Publish(ctx context.Context, e ledger.Event) {
	for _, n := range f {
		n.Publish(ctx, e)
	}
}

// Recorder keeps the most recent events in memory.
type Recorder struct {
	mu     sync.Mutex
	limit  int
	events []ledger.Event
}

// NewRecorder keeps at most limit events; limit <= 0 keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Publish(_ context.Context, e ledger.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if r.limit > 0 && len(r.events) > r.limit {
		r.events = append(r.events[:0:0], r.events[len(r.events)-r.limit:]...)
	}
}

// Events returns a copy of the recorded events, oldest first.
func (r *Recorder) Events() []ledger.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ledger.Event(nil), r.events...)
}

// Topics returns the recorded topics, oldest first.
func (r *Recorder) Topics() []ledger.Topic {
	r.mu.Lock()
	defer r.mu.Unlock()
	topics := make([]ledger.Topic, len(r.events))
	for i, e := range r.events {
		topics[i] = e.Topic
	}
	return topics
}
