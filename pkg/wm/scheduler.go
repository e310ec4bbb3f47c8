package wm

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock creates timers. The Manager uses it for debounce and settle delays.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Scheduler runs keyed, debounced callbacks. Scheduling a key cancels the
// pending callback for that key; a callback that fires runs exactly once.
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	seq     uint64
	pending map[string]pendingCall
}

type pendingCall struct {
	seq   uint64
	timer Timer
}

// NewScheduler creates a scheduler on the given clock (nil means wall time).
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = realClock{}
	}
	return &Scheduler{
		clock:   clock,
		pending: make(map[string]pendingCall),
	}
}

// Schedule arranges for fn to run after delay unless key is scheduled or
// cancelled again first.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
	}
	s.seq++
	seq := s.seq
	timer := s.clock.AfterFunc(delay, func() { s.fire(key, seq, fn) })
	s.pending[key] = pendingCall{seq: seq, timer: timer}
}

// Cancel drops the pending callback for key, if any.
func (s *Scheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
		delete(s.pending, key)
	}
}

// Pending reports whether a callback for key is waiting to run.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Stop cancels every pending callback.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, key)
	}
}

func (s *Scheduler) fire(key string, seq uint64, fn func()) {
	s.mu.Lock()
	p, ok := s.pending[key]
	// A timer that lost the race with Stop must not run.
	if !ok || p.seq != seq {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.mu.Unlock()

	fn()
}
