package indexheap

// node is one tree slot: the stored value plus a back-reference to the
// table slot currently tracking it. Nodes are copied whenever the tree is
// rebalanced; moving a node updates its table slot's position, never its
// identity.
type node[V any] struct {
	value V
	slot  int
}

// storage holds the nodes in array form so that parent(i) = (i-1)/2 and
// children(i) = 2i+1, 2i+2 describe the binary tree. Positions at or past
// the live count park the ids of free table slots: across the whole array
// the slot ids are always a permutation of 0..cap-1, which is how "reuse a
// freed slot, else extend" falls out structurally — the next free id is
// whatever is parked at the first unoccupied position.
type storage[V any] struct {
	nodes []node[V]
	tab   *table
}

func newStorage[V any](capacity int) *storage[V] {
	st := &storage[V]{
		nodes: make([]node[V], capacity),
		tab:   newTable(capacity),
	}
	for i := range st.nodes {
		st.nodes[i].slot = i
	}
	return st
}

func (st *storage[V]) capacity() int { return len(st.nodes) }

func (st *storage[V]) at(i int) node[V] { return st.nodes[i] }

// place writes n at tree position i and points its table slot back at i in
// the same step. Every write on the live range goes through here; the
// pairing is the structural invariant the whole design hinges on.
func (st *storage[V]) place(i int, n node[V]) {
	st.nodes[i] = n
	st.tab.setPos(n.slot, i)
}

// park stores the freed slot id at an unoccupied position, zeroing the
// value so the garbage collector can reclaim whatever it referenced.
func (st *storage[V]) park(i, id int) {
	st.nodes[i] = node[V]{slot: id}
}

// grow reallocates both backing arrays to the given capacity. Live and
// parked entries are copied as-is; the newly added positions park fresh
// slot ids, keeping the permutation property. Both arrays are built before
// being swapped in, so a caller never observes a partial growth.
func (st *storage[V]) grow(capacity int) {
	if capacity <= len(st.nodes) {
		return
	}
	nodes := make([]node[V], capacity)
	copy(nodes, st.nodes)
	for i := len(st.nodes); i < capacity; i++ {
		nodes[i].slot = i
	}
	st.nodes = nodes
	st.tab.grow(capacity)
}
