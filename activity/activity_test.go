package activity_test

import (
	"sync"
	"testing"

	"github.com/go-kit/kit/metrics/generic"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/go-kit/fetch/activity"
)

func TestTransitionsOnly(t *testing.T) {
	var (
		tracker = activity.NewTracker()
		events  []bool
	)
	tracker.Observe(func(active bool) { events = append(events, active) })

	tracker.Incr() // 0 -> 1: busy
	tracker.Incr() // 1 -> 2: no event
	tracker.Decr() // 2 -> 1: no event
	tracker.Decr() // 1 -> 0: idle

	want := []bool{true, false}
	if len(events) != len(want) {
		t.Fatalf("want %d events, have %d: %v", len(want), len(events), events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: want %v, have %v", i, want[i], events[i])
		}
	}
}

func TestDecrClampsAtZero(t *testing.T) {
	var (
		tracker = activity.NewTracker()
		events  int
	)
	tracker.Observe(func(bool) { events++ })

	tracker.Decr() // stray: ignored, no event
	if want, have := 0, tracker.Count(); want != have {
		t.Errorf("count: want %d, have %d", want, have)
	}
	if want, have := 0, events; want != have {
		t.Errorf("events: want %d, have %d", want, have)
	}

	tracker.Incr()
	tracker.Decr()
	tracker.Decr() // stray again
	if want, have := 0, tracker.Count(); want != have {
		t.Errorf("count: want %d, have %d", want, have)
	}
	if want, have := 2, events; want != have { // one busy, one idle
		t.Errorf("events: want %d, have %d", want, have)
	}
}

func TestObserveDoesNotReplay(t *testing.T) {
	var (
		tracker  = activity.NewTracker()
		notified bool
	)

	tracker.Incr()
	tracker.Observe(func(bool) { notified = true })
	if notified {
		t.Error("observer saw past state")
	}
	if !tracker.Active() {
		t.Error("want active")
	}

	tracker.Decr()
	if !notified {
		t.Error("observer missed the idle transition")
	}
}

func TestConcurrentTransitions(t *testing.T) {
	var (
		tracker = activity.NewTracker()
		events  []bool // appended under the tracker lock
		wg      sync.WaitGroup
	)
	tracker.Observe(func(active bool) { events = append(events, active) })

	const n = 100
	wg.Add(n)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			<-start
			tracker.Incr()
			tracker.Decr()
		}()
	}
	close(start)
	wg.Wait()

	if want, have := 0, tracker.Count(); want != have {
		t.Errorf("count: want %d, have %d", want, have)
	}
	if len(events)%2 != 0 {
		t.Fatalf("unbalanced events: %v", events)
	}
	// Whatever the interleaving, notifications strictly alternate
	// busy, idle, busy, idle, ...
	for i, active := range events {
		if want := i%2 == 0; active != want {
			t.Fatalf("event %d: want %v, have %v (%v)", i, want, active, events)
		}
	}
}

func TestGaugeTracksCount(t *testing.T) {
	var (
		gauge   = generic.NewGauge("inflight_requests")
		tracker = activity.NewTracker(activity.WithGauge(gauge))
	)

	tracker.Incr()
	tracker.Incr()
	if want, have := 2.0, gauge.Value(); want != have {
		t.Errorf("want %f, have %f", want, have)
	}
	tracker.Decr()
	if want, have := 1.0, gauge.Value(); want != have {
		t.Errorf("want %f, have %f", want, have)
	}
}

func TestPrometheusGauge(t *testing.T) {
	gv := stdprometheus.NewGaugeVec(stdprometheus.GaugeOpts{
		Namespace: "fetch",
		Name:      "inflight_requests",
		Help:      "Requests currently in flight.",
	}, []string{})

	tracker := activity.NewTracker(activity.WithGauge(kitprometheus.NewGauge(gv)))

	tracker.Incr()
	if want, have := 1.0, testutil.ToFloat64(gv); want != have {
		t.Errorf("want %f, have %f", want, have)
	}
	tracker.Decr()
	if want, have := 0.0, testutil.ToFloat64(gv); want != have {
		t.Errorf("want %f, have %f", want, have)
	}
}
