// Package indexheap implements a generic binary min-heap that, on top of
// the standard insert, peek and pop operations, supports removing an
// arbitrary element in O(log n) by a stable handle. That fourth operation
// is what shortest-path searches with decrease-key updates, event
// simulations with cancellable timers, and schedulers that retract queued
// work before it is due all need from a priority queue.
//
// Each Push returns a Handle: an opaque, copyable capability bound to the
// pushed element through a generational index. Internally the heap pairs
// its node array with an index table; every node carries a back-pointer to
// the table slot tracking it, and every rebalancing move keeps the two in
// sync. A slot's generation is bumped whenever its element leaves the heap,
// so a handle held across a Pop, Remove or Clear of its element is detected
// as stale rather than silently addressing whatever reuses the slot.
// Validation is always on; there is no unchecked mode.
//
// Key features:
//   - Generic implementation supporting any value type
//   - O(log n) insertion, pop and arbitrary removal by handle
//   - O(1) peek and handle validity checks
//   - Stale, cross-heap and never-issued handles reported distinctly
//   - First-class Update (decrease-key/increase-key) keeping the handle valid
//   - Pluggable growth policy; capacity never shrinks and growth never
//     invalidates handles
//
// Basic usage:
//
//	// Create a min-heap of ints
//	h, err := indexheap.New[int](8, func(a, b int) bool {
//	    return a < b
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
//	// Add items, keeping a handle for one of them
//	h.Push(5)
//	hd, _ := h.Push(3)
//	h.Push(7)
//
//	// Retract the queued 3 before it is popped
//	v, err := h.Remove(hd)
//
//	// Pop the rest in comparator order
//	for {
//	    v, ok := h.TryPop()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(v)
//	}
//
// A Heap performs no synchronization and is not safe to use concurrently
// without external locking. It is a uniquely owned resource addressed
// through a pointer: pointer copies alias the same heap and all observe
// mutations and Close.
package indexheap
