package indexheap

// options defines all configuration options for a heap.
type options struct {
	grow func(capacity, need int) int // picks a new capacity when full
}

// Option is a function that configures the heap options.
type Option func(*options)

// WithGrowth sets the policy used to pick a new capacity when a Push finds
// the heap full. The policy receives the current capacity and the minimum
// capacity required and returns the capacity to grow to; results below the
// requirement are rounded up to it.
func WithGrowth(grow func(capacity, need int) int) Option {
	return func(o *options) {
		o.grow = grow
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		grow: doubleGrowth,
	}
}

// doubleGrowth doubles the capacity until the requirement fits.
func doubleGrowth(capacity, need int) int {
	for capacity < need {
		capacity *= 2
	}
	return capacity
}
