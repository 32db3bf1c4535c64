package indexheap

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// ownerSeq issues a distinct identity to every heap so that handles carry
// which instance minted them. Identities start at 1; the zero Handle can
// therefore never validate.
var ownerSeq atomic.Uint64

// Heap implements a priority queue over values of type V with removal of
// arbitrary elements by handle in O(log n). The element returned first is
// the one the comparator orders before all others.
//
// A Heap must not be copied after first use; share it by pointer. It
// performs no synchronization and is not safe for concurrent use without
// external locking.
type Heap[V any] struct {
	st     *storage[V]
	count  int
	less   func(a, b V) bool
	grow   func(capacity, need int) int
	owner  uint64
	closed bool
}

// New creates a heap with the given initial capacity and comparator. The
// comparator must be a pure total order: less(a, b) reports whether a
// should be returned before b.
func New[V any](capacity int, less func(a, b V) bool, opts ...Option) (*Heap[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if less == nil {
		return nil, ErrNilLess
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Heap[V]{
		st:    newStorage[V](capacity),
		less:  less,
		grow:  o.grow,
		owner: ownerSeq.Add(1),
	}, nil
}

// Len returns the number of elements currently in the heap.
func (h *Heap[V]) Len() int {
	return h.count
}

// Cap returns the current capacity. Capacity only ever grows; it is zero
// after Close.
func (h *Heap[V]) Cap() int {
	if h.closed {
		return 0
	}
	return h.st.capacity()
}

// Less returns the comparator in use.
func (h *Heap[V]) Less() func(a, b V) bool {
	return h.less
}

// SetLess replaces the comparator. Changing the ordering rule under live
// elements would break heap order, so it is only permitted while the heap
// is empty.
func (h *Heap[V]) SetLess(less func(a, b V) bool) error {
	if h.closed {
		return ErrClosed
	}
	if less == nil {
		return ErrNilLess
	}
	if h.count > 0 {
		return ErrNotEmpty
	}
	h.less = less
	return nil
}

// Push adds a value and returns a handle addressing it for a later Remove,
// Update or Value. Grows the heap when full.
func (h *Heap[V]) Push(v V) (Handle, error) {
	if h.closed {
		return Handle{}, ErrClosed
	}

	if h.count == h.st.capacity() {
		need := h.count + 1
		capacity := h.grow(h.st.capacity(), need)
		if capacity < need {
			capacity = need
		}
		h.st.grow(capacity)
	}

	// Consume the free slot id parked at the first unoccupied position.
	id := h.st.at(h.count).slot
	h.count++
	h.up(h.count-1, node[V]{value: v, slot: id})

	return Handle{slot: id, gen: h.st.tab.gen(id), owner: h.owner}, nil
}

// Peek returns the first element without removing it.
func (h *Heap[V]) Peek() (V, error) {
	var zero V
	if h.closed {
		return zero, ErrClosed
	}
	if h.count == 0 {
		return zero, ErrEmpty
	}
	return h.st.at(0).value, nil
}

// TryPeek is Peek reporting absence instead of an error.
func (h *Heap[V]) TryPeek() (V, bool) {
	var zero V
	if h.closed || h.count == 0 {
		return zero, false
	}
	return h.st.at(0).value, true
}

// Pop removes and returns the first element. Handles addressing it become
// stale.
func (h *Heap[V]) Pop() (V, error) {
	var zero V
	if h.closed {
		return zero, ErrClosed
	}
	if h.count == 0 {
		return zero, ErrEmpty
	}
	return h.popRoot(), nil
}

// TryPop is Pop reporting absence instead of an error.
func (h *Heap[V]) TryPop() (V, bool) {
	var zero V
	if h.closed || h.count == 0 {
		return zero, false
	}
	return h.popRoot(), true
}

func (h *Heap[V]) popRoot() V {
	root := h.st.at(0)
	h.st.tab.release(root.slot)
	h.count--
	last := h.st.at(h.count)
	h.st.park(h.count, root.slot)
	if h.count > 0 {
		h.down(0, last)
	}
	return root.value
}

// Remove removes the element the handle addresses, wherever it currently
// sits in the tree, and returns its value. The handle and all its copies
// become stale. Cost is O(log n), the same as Pop.
func (h *Heap[V]) Remove(hd Handle) (V, error) {
	var zero V
	if h.closed {
		return zero, ErrClosed
	}
	i, err := h.lookup(hd)
	if err != nil {
		return zero, err
	}

	n := h.st.at(i)
	h.st.tab.release(n.slot)
	h.count--
	last := h.st.at(h.count)
	h.st.park(h.count, n.slot)

	if i < h.count {
		// One comparison decides the direction: the displaced node sifts
		// up only if it precedes the parent of the vacated position, in
		// which case the subtree below is already ordered around it and
		// a downward pass would be wasted work.
		if i != 0 && h.less(last.value, h.st.at((i-1)/2).value) {
			h.up(i, last)
		} else {
			h.down(i, last)
		}
	}
	return n.value, nil
}

// Update replaces the value the handle addresses and restores heap order.
// The handle stays valid: the element never left the heap. This is the
// decrease-key (and increase-key) operation.
func (h *Heap[V]) Update(hd Handle, v V) error {
	if h.closed {
		return ErrClosed
	}
	i, err := h.lookup(hd)
	if err != nil {
		return err
	}

	n := h.st.at(i)
	n.value = v
	if i != 0 && h.less(v, h.st.at((i-1)/2).value) {
		h.up(i, n)
	} else {
		h.down(i, n)
	}
	return nil
}

// Value returns the value the handle currently addresses.
func (h *Heap[V]) Value(hd Handle) (V, error) {
	var zero V
	if h.closed {
		return zero, ErrClosed
	}
	i, err := h.lookup(hd)
	if err != nil {
		return zero, err
	}
	return h.st.at(i).value, nil
}

// Has reports whether the handle addresses a live element of this heap.
// It is the non-erroring form of the validation Remove performs.
func (h *Heap[V]) Has(hd Handle) bool {
	if h.closed {
		return false
	}
	_, err := h.lookup(hd)
	return err == nil
}

// Clear removes every element, invalidating all outstanding handles.
// Capacity and comparator are untouched.
func (h *Heap[V]) Clear() error {
	if h.closed {
		return ErrClosed
	}
	for i := 0; i < h.count; i++ {
		id := h.st.at(i).slot
		h.st.tab.release(id)
		h.st.park(i, id)
	}
	h.count = 0
	return nil
}

// Grow raises the capacity to at least the given value. Growth never
// disturbs live elements or their handles; a request at or below the
// current capacity is a no-op, and one below Len is rejected.
func (h *Heap[V]) Grow(capacity int) error {
	if h.closed {
		return ErrClosed
	}
	if capacity < h.count {
		return fmt.Errorf("%w: %d below count %d", ErrInvalidCapacity, capacity, h.count)
	}
	h.st.grow(capacity)
	return nil
}

// All returns an iterator over the live values in arbitrary internal
// order, without mutating the heap. The iterator is only valid until the
// next mutation.
func (h *Heap[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		if h.closed {
			return
		}
		for i := 0; i < h.count; i++ {
			if !yield(h.st.at(i).value) {
				return
			}
		}
	}
}

// Close releases the backing arrays and invalidates every outstanding
// handle. Any further operation reports ErrClosed (or absence, for the
// non-erroring variants). Close is idempotent.
func (h *Heap[V]) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.count = 0
	h.st = nil
	return nil
}

// lookup translates a handle into the current tree position of the element
// it addresses, validating owner, slot range and generation in that order.
func (h *Heap[V]) lookup(hd Handle) (int, error) {
	if hd.owner != h.owner {
		return 0, ErrWrongHeap
	}
	if hd.slot < 0 || hd.slot >= h.st.tab.len() {
		return 0, ErrSlotOutOfRange
	}
	if hd.gen != h.st.tab.gen(hd.slot) {
		return 0, ErrStaleHandle
	}
	return h.st.tab.pos(hd.slot), nil
}

// up sifts n toward the root from position i: parents that n precedes
// shift down through the hole, and n is written once at its resting
// position.
func (h *Heap[V]) up(i int, n node[V]) {
	for i > 0 {
		parent := (i - 1) / 2
		p := h.st.at(parent)
		if !h.less(n.value, p.value) {
			break
		}
		h.st.place(i, p)
		i = parent
	}
	h.st.place(i, n)
}

// down sifts n toward the leaves from position i: at each step the
// preceding child (ties toward the left) shifts up through the hole until
// neither child precedes n.
func (h *Heap[V]) down(i int, n node[V]) {
	for {
		child := 2*i + 1
		if child >= h.count {
			break
		}
		if right := child + 1; right < h.count && h.less(h.st.at(right).value, h.st.at(child).value) {
			child = right
		}
		c := h.st.at(child)
		if !h.less(c.value, n.value) {
			break
		}
		h.st.place(i, c)
		i = child
	}
	h.st.place(i, n)
}
