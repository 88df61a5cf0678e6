// Package activity tracks the number of in-flight requests and announces
// busy/idle transitions, the signal behind a UI network-activity
// indicator.
package activity

import (
	"sync"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
)

// Tracker counts in-flight requests and notifies observers when the count
// crosses between zero and nonzero. Overlapping requests produce exactly
// one busy notification and, once all have settled, exactly one idle
// notification: observers see transitions, not traffic.
//
// Counter mutation and transition detection happen under one lock, so
// concurrent increments and decrements from many in-flight requests can
// neither lose updates nor announce the same transition twice.
type Tracker struct {
	mtx       sync.Mutex
	count     int
	observers []func(active bool)
	gauge     metrics.Gauge
}

// TrackerOption sets an optional parameter for trackers.
type TrackerOption func(*Tracker)

// WithGauge mirrors the in-flight count into g on every change, e.g. into
// a Prometheus gauge. By default the count is discarded.
func WithGauge(g metrics.Gauge) TrackerOption {
	return func(t *Tracker) { t.gauge = g }
}

// NewTracker returns an idle Tracker with no observers.
func NewTracker(options ...TrackerOption) *Tracker {
	t := &Tracker{
		gauge: discard.NewGauge(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Incr records one more request in flight. Crossing from idle to busy
// notifies every observer with active == true.
func (t *Tracker) Incr() {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.count++
	t.gauge.Set(float64(t.count))
	if t.count == 1 {
		t.broadcast(true)
	}
}

// Decr records that one request has settled. Crossing from busy to idle
// notifies every observer with active == false. The count clamps at zero:
// a decrement below zero indicates a caller defect and is ignored rather
// than trusted.
func (t *Tracker) Decr() {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.count == 0 {
		return
	}
	t.count--
	t.gauge.Set(float64(t.count))
	if t.count == 0 {
		t.broadcast(false)
	}
}

// Observe registers fn for every future busy/idle transition. The current
// state is not replayed. Observers run synchronously with the tracker's
// lock held, in registration order, so notifications are totally ordered;
// they must return quickly and must not call back into the tracker.
func (t *Tracker) Observe(fn func(active bool)) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.observers = append(t.observers, fn)
}

// Active reports whether any request is in flight.
func (t *Tracker) Active() bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.count > 0
}

// Count returns the current in-flight request count.
func (t *Tracker) Count() int {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.count
}

// broadcast is not goroutine-safe; callers hold mtx.
func (t *Tracker) broadcast(active bool) {
	for _, fn := range t.observers {
		fn(active)
	}
}
