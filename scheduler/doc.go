// Package scheduler runs one-shot tasks at scheduled times, with
// cancellation and rescheduling of tasks that have not fired yet. It is
// built on the indexheap package: each pending task holds a heap handle,
// so retracting or moving a task costs O(log n) rather than a scan of the
// queue.
//
// Basic usage:
//
//	s := scheduler.New(scheduler.DefaultOptions())
//	if err := s.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Stop()
//
//	id, _ := s.ScheduleAfter(5*time.Second, func(ctx context.Context) error {
//	    fmt.Println("fired")
//	    return nil
//	})
//
//	// Changed our mind before it fired
//	s.Cancel(id)
//
// All methods are safe for concurrent use.
package scheduler
