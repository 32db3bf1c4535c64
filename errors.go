package indexheap

import (
	"errors"
	"fmt"
)

// Common errors that can be returned by heap operations.
var (
	ErrEmpty           = errors.New("indexheap: heap is empty")
	ErrClosed          = errors.New("indexheap: heap is closed")
	ErrInvalidCapacity = errors.New("indexheap: invalid capacity")
	ErrNilLess         = errors.New("indexheap: comparator must not be nil")
	ErrNotEmpty        = errors.New("indexheap: comparator cannot change while heap is populated")
	ErrInvalidHandle   = errors.New("indexheap: invalid handle")
)

// Handle validation failures wrap ErrInvalidHandle so callers can match the
// whole family with errors.Is while still telling the causes apart.
var (
	ErrWrongHeap      = fmt.Errorf("%w: handle issued by a different heap", ErrInvalidHandle)
	ErrSlotOutOfRange = fmt.Errorf("%w: slot never issued by this heap", ErrInvalidHandle)
	ErrStaleHandle    = fmt.Errorf("%w: element already removed", ErrInvalidHandle)
)
