package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler runs tasks after a delay. Scheduled tasks can be cancelled by
// the handle returned from Schedule; duel expiries and message retention
// deletes both go through here so expiry is deterministic under test.
type Scheduler interface {
	// Schedule runs task after delay and returns a cancellation handle.
	Schedule(delay time.Duration, task func()) uuid.UUID

	// Cancel stops a pending task. It reports whether the task was still
	// pending.
	Cancel(id uuid.UUID) bool

	// Stop cancels all pending tasks.
	Stop()
}

// timerScheduler is the production implementation backed by time.AfterFunc.
type timerScheduler struct {
	mu      sync.Mutex
	timers  map[uuid.UUID]*time.Timer
	stopped bool
}

// New creates a wall-clock scheduler.
func New() Scheduler {
	return &timerScheduler{timers: make(map[uuid.UUID]*time.Timer)}
}

func (s *timerScheduler) Schedule(delay time.Duration, task func()) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	if s.stopped {
		return id
	}
	s.timers[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		task()
	})
	return id
}

func (s *timerScheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	return timer.Stop()
}

func (s *timerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

type manualTask struct {
	id   uuid.UUID
	due  time.Time
	seq  int
	task func()
}

// Manual is a deterministic scheduler for tests. Tasks fire only when
// Advance moves its fake clock past their due time.
type Manual struct {
	mu    sync.Mutex
	clock *FakeClock
	tasks []manualTask
	seq   int
}

// NewManual creates a manual scheduler driven by the given fake clock.
func NewManual(clock *FakeClock) *Manual {
	return &Manual{clock: clock}
}

func (s *Manual) Schedule(delay time.Duration, task func()) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.tasks = append(s.tasks, manualTask{
		id:   id,
		due:  s.clock.Now().Add(delay),
		seq:  s.seq,
		task: task,
	})
	s.seq++
	return id
}

func (s *Manual) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Manual) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
}

// Advance moves the clock forward by d and fires every task that came due,
// in due-time order.
func (s *Manual) Advance(d time.Duration) {
	s.clock.Advance(d)
	now := s.clock.Now()

	s.mu.Lock()
	var due, pending []manualTask
	for _, t := range s.tasks {
		if !t.due.After(now) {
			due = append(due, t)
		} else {
			pending = append(pending, t)
		}
	}
	s.tasks = pending
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, t := range due {
		t.task()
	}
}
