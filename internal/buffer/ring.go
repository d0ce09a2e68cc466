// Package buffer provides bounded buffering for entry windows.
package buffer

// Ring is a fixed-capacity circular buffer. When full, the oldest values are
// evicted. A Ring is not safe for concurrent use.
type Ring[T any] struct {
	values   []T
	head     int // next write position
	count    int // current number of values
	capacity int
	dropped  uint64 // total evicted values
}

// NewRing creates a ring buffer with the given capacity.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Ring[T]{
		values:   make([]T, capacity),
		capacity: capacity,
	}
}

// Push adds a value to the ring buffer. If full, the oldest value is evicted.
func (r *Ring[T]) Push(v T) {
	r.values[r.head] = v
	r.head = (r.head + 1) % r.capacity
	if r.count < r.capacity {
		r.count++
	} else {
		r.dropped++
	}
}

// Snapshot returns a copy of all buffered values, oldest first.
func (r *Ring[T]) Snapshot() []T {
	result := make([]T, r.count)
	if r.count < r.capacity {
		copy(result, r.values[:r.count])
	} else {
		// Buffer is full: read from head (oldest) to end, then from start to head.
		n := copy(result, r.values[r.head:])
		copy(result[n:], r.values[:r.head])
	}
	return result
}

// Len returns the current number of values in the buffer.
func (r *Ring[T]) Len() int {
	return r.count
}

// Dropped returns the total number of evicted values.
func (r *Ring[T]) Dropped() uint64 {
	return r.dropped
}

