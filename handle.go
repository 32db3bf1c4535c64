package indexheap

// Handle addresses one element previously pushed onto a heap. It is an
// opaque, freely copyable value: copies address the same element. A Handle
// becomes permanently stale the moment its element leaves the heap by any
// means (Remove, Pop, Clear or Close); no operation revives it.
//
// The zero Handle is never valid.
type Handle struct {
	slot  int
	gen   uint64
	owner uint64
}
