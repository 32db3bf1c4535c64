package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pulsarwave/indexheap"
)

var ErrStarted = errors.New("scheduler: already started")

const defaultCapacity = 16

// Task is one unit of scheduled work. A non-nil error is logged; it never
// stops the scheduler.
type Task func(ctx context.Context) error

// entry is one pending task. Ties on the deadline are broken by submission
// order so the run order is deterministic.
type entry struct {
	id  string
	at  time.Time
	seq uint64
	run Task
}

func entryLess(a, b entry) bool {
	if !a.at.Equal(b.at) {
		return a.at.Before(b.at)
	}
	return a.seq < b.seq
}

// Options configures the behavior of a Scheduler.
type Options struct {
	// PollInterval is how often the scheduler checks for due tasks.
	PollInterval time.Duration

	// Clock is the time source. Inject a mock clock in tests to avoid
	// flakiness.
	Clock clock.Clock

	// Logger receives task failures. Defaults to a no-op logger.
	Logger *zap.SugaredLogger
}

// DefaultOptions returns the default configuration options.
func DefaultOptions() Options {
	return Options{
		PollInterval: 100 * time.Millisecond,
		Clock:        clock.New(),
		Logger:       zap.NewNop().Sugar(),
	}
}

// Scheduler runs one-shot tasks at their scheduled time. Tasks can be
// cancelled or rescheduled any time before they fire: pending work sits in
// a heap keyed by deadline, and the handle each Schedule call keeps lets a
// later Cancel retract the task in O(log n) without scanning the queue.
//
// The scheduler serializes all heap access behind its own mutex; the heap
// itself performs no locking.
type Scheduler struct {
	mu      sync.Mutex
	heap    *indexheap.Heap[entry]
	handles map[string]indexheap.Handle
	seq     uint64
	started bool

	clock        clock.Clock
	logger       *zap.SugaredLogger
	pollInterval time.Duration

	stopOnce sync.Once
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a scheduler. Zero fields in opts fall back to the defaults.
func New(opts Options) *Scheduler {
	def := DefaultOptions()
	if opts.PollInterval <= 0 {
		opts.PollInterval = def.PollInterval
	}
	if opts.Clock == nil {
		opts.Clock = def.Clock
	}
	if opts.Logger == nil {
		opts.Logger = def.Logger
	}

	h, _ := indexheap.New[entry](defaultCapacity, entryLess)
	return &Scheduler{
		heap:         h,
		handles:      make(map[string]indexheap.Handle),
		clock:        opts.Clock,
		logger:       opts.Logger,
		pollInterval: opts.PollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Schedule queues task to run at the given time and returns its id. A time
// in the past runs on the next poll.
func (s *Scheduler) Schedule(at time.Time, task Task) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	e := entry{id: id, at: at, seq: s.seq, run: task}
	s.seq++

	hd, err := s.heap.Push(e)
	if err != nil {
		return "", fmt.Errorf("scheduler: schedule: %w", err)
	}
	s.handles[id] = hd
	return id, nil
}

// ScheduleAfter queues task to run after the given delay.
func (s *Scheduler) ScheduleAfter(d time.Duration, task Task) (string, error) {
	return s.Schedule(s.clock.Now().Add(d), task)
}

// Cancel retracts a pending task. It reports false if the task already ran,
// was already cancelled, or never existed.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	hd, ok := s.handles[id]
	if !ok {
		return false
	}
	delete(s.handles, id)
	_, err := s.heap.Remove(hd)
	return err == nil
}

// Reschedule moves a pending task to a new time, keeping its id. It reports
// false if the task is no longer pending.
func (s *Scheduler) Reschedule(id string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	hd, ok := s.handles[id]
	if !ok {
		return false
	}
	e, err := s.heap.Value(hd)
	if err != nil {
		return false
	}
	e.at = at
	return s.heap.Update(hd, e) == nil
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Len()
}

// Start launches the background polling loop. It returns immediately; the
// loop runs until Stop is called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrStarted
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
	return nil
}

// Stop gracefully shuts down the scheduler and waits for the loop to exit.
// Pending tasks stay queued but will not run. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := s.clock.Ticker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runDue(ctx)
		}
	}
}

// runDue pops and runs every task due at the current tick, earliest first.
// Tasks execute outside the lock so they may schedule further work.
func (s *Scheduler) runDue(ctx context.Context) {
	for {
		s.mu.Lock()
		e, ok := s.heap.TryPeek()
		if !ok || e.at.After(s.clock.Now()) {
			s.mu.Unlock()
			return
		}
		e, _ = s.heap.TryPop()
		delete(s.handles, e.id)
		s.mu.Unlock()

		if err := e.run(ctx); err != nil {
			s.logger.Errorw("scheduled task failed", "id", e.id, "error", err)
		}
	}
}
