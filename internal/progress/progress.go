// Package progress reports how far long running passes have got.
package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Sink receives progress updates. fraction is in [0,1].
type Sink interface {
	Update(status, progress string, fraction float64)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(status, progress string, fraction float64)

func (f SinkFunc) Update(status, progress string, fraction float64) { f(status, progress, fraction) }

// Discard drops every update.
var Discard Sink = SinkFunc(func(string, string, float64) {})

// Text formats elapsed and remaining time for a fraction of work done.
type Text struct {
	now   func() time.Time
	start time.Time
}

// NewText starts the timer. A nil clock means time.Now.
func NewText(now func() time.Time) *Text {
	if now == nil {
		now = time.Now
	}
	return &Text{now: now, start: now()}
}

func (t *Text) ResetTimer() { t.start = t.now() }

func (t *Text) Get(fraction float64) string {
	elapsed := t.now().Sub(t.start).Round(time.Second)
	if fraction >= 1 {
		return fmt.Sprintf("Done 100.00%%, elapsed: %s", elapsed)
	}
	if fraction <= 0 {
		return fmt.Sprintf("Done 0.00%%, elapsed: %s", elapsed)
	}
	total := time.Duration(float64(t.now().Sub(t.start)) / fraction)
	remaining := (total - t.now().Sub(t.start)).Round(time.Second)
	return fmt.Sprintf("Done %.2f%%, elapsed: %s, estimated to end: %s", fraction*100, elapsed, remaining)
}

// Throttle lets an event through at most once per interval.
type Throttle struct {
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

func NewThrottle(interval time.Duration, now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	return &Throttle{interval: interval, now: now, last: now()}
}

// Ready reports whether more than interval has passed since the last true result.
func (t *Throttle) Ready() bool {
	n := t.now()
	if n.Sub(t.last) > t.interval {
		t.last = n
		return true
	}
	return false
}

// LogSink writes updates to a logrus logger at debug level.
type LogSink struct {
	Log logrus.FieldLogger
}

func (s LogSink) Update(status, progress string, fraction float64) {
	s.Log.WithFields(logrus.Fields{
		"status":   status,
		"fraction": fmt.Sprintf("%.3f", fraction),
	}).Debug(progress)
}

// Recorder keeps every update it receives. It is safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	fractions []float64
}

func (r *Recorder) Update(_, _ string, fraction float64) {
	r.mu.Lock()
	r.fractions = append(r.fractions, fraction)
	r.mu.Unlock()
}

// Fractions returns the recorded fractions in arrival order.
func (r *Recorder) Fractions() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.fractions))
	copy(out, r.fractions)
	return out
}
