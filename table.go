package indexheap

// slot is one identity record in the index table. It tracks where the
// element it backs currently sits in the tree, and carries a generation
// counter bumped every time the slot is released so that handles minted
// against an earlier occupant can be told apart from handles addressing
// the current one.
type slot struct {
	pos int
	gen uint64
}

// table gives each element a stable identity independent of its current
// tree position. Slot ids are dense: the table always holds exactly one
// slot per storage position.
type table struct {
	slots []slot
}

func newTable(capacity int) *table {
	return &table{slots: make([]slot, capacity)}
}

// grow extends the table to capacity slots. Existing slots keep their
// positions and generations; new slots start at generation zero.
func (t *table) grow(capacity int) {
	if capacity <= len(t.slots) {
		return
	}
	slots := make([]slot, capacity)
	copy(slots, t.slots)
	t.slots = slots
}

func (t *table) len() int { return len(t.slots) }

func (t *table) pos(id int) int { return t.slots[id].pos }

func (t *table) setPos(id, pos int) { t.slots[id].pos = pos }

func (t *table) gen(id int) uint64 { return t.slots[id].gen }

// release bumps the slot's generation, invalidating every handle minted
// against the element it was backing. Release is the only operation that
// changes a generation; re-allocating a freed slot reuses the post-bump
// value, so the new occupant's handles never collide with the old ones.
func (t *table) release(id int) { t.slots[id].gen++ }
