package fetch

import "sync"

// Scheduler runs delivery callbacks on a designated execution context.
// Which goroutine runs a callback is a wiring choice, not a property of
// the pipeline, so clients take the Scheduler as a collaborator: a UI
// shell can pin deliveries to its event loop, a service can fan them out,
// and tests can run them inline.
type Scheduler interface {
	Schedule(f func())
}

// SchedulerFunc is an adapter to allow use of ordinary functions as
// Schedulers. If f is a function with the appropriate signature,
// SchedulerFunc(f) is a Scheduler object that calls f.
type SchedulerFunc func(f func())

// Schedule implements Scheduler by calling f(g).
func (f SchedulerFunc) Schedule(g func()) { f(g) }

// NewAsyncScheduler returns a Scheduler that runs every callback on its
// own goroutine. Callbacks of distinct requests may interleave freely.
func NewAsyncScheduler() Scheduler {
	return SchedulerFunc(func(f func()) { go f() })
}

// NewSyncScheduler returns a Scheduler that runs callbacks inline on the
// scheduling goroutine. Useful in tests, where a delivery should complete
// before the test goes on.
func NewSyncScheduler() Scheduler {
	return SchedulerFunc(func(f func()) { f() })
}

// SerialScheduler runs callbacks one at a time, in submission order, on a
// single long-lived goroutine, the moral equivalent of a UI main thread.
// Everything delivered through it observes one consistent ordering.
type SerialScheduler struct {
	tasks chan func()
	quit  chan struct{}
	stop  sync.Once
}

// NewSerialScheduler returns a running SerialScheduler.
func NewSerialScheduler() *SerialScheduler {
	s := &SerialScheduler{
		tasks: make(chan func()),
		quit:  make(chan struct{}),
	}
	go s.loop()
	return s
}

// Schedule implements Scheduler. It blocks until the loop accepts f;
// after Stop, f is dropped.
func (s *SerialScheduler) Schedule(f func()) {
	select {
	case s.tasks <- f:
	case <-s.quit:
	}
}

// Stop terminates the loop. Callbacks not yet accepted are dropped, so
// stop only once in-flight requests have settled.
func (s *SerialScheduler) Stop() {
	s.stop.Do(func() { close(s.quit) })
}

func (s *SerialScheduler) loop() {
	for {
		select {
		case f := <-s.tasks:
			f()
		case <-s.quit:
			return
		}
	}
}
