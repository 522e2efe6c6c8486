package pipeline

// Ring is a FIFO buffer with an optional capacity.
// When the capacity is reached, Push evicts the oldest element first.
// A capacity of zero or less means the buffer grows without bound.
type Ring[T any] struct {
	items []T
	head  int
	size  int
	limit int
}

// NewRing creates a Ring holding at most capacity elements (0 = unbounded).
func NewRing[T any](capacity int) *Ring[T] {
	r := &Ring[T]{limit: capacity}
	if capacity > 0 {
		r.items = make([]T, capacity)
	}
	return r
}

// Push appends v, evicting the oldest element if the ring is full.
func (r *Ring[T]) Push(v T) {
	if r.limit <= 0 {
		r.items = append(r.items, v)
		r.size++
		return
	}

	if r.size == r.limit {
		r.items[r.head] = v
		r.head = (r.head + 1) % r.limit
		return
	}

	r.items[(r.head+r.size)%r.limit] = v
	r.size++
}

// Len returns the number of buffered elements.
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the capacity, or 0 for an unbounded ring.
func (r *Ring[T]) Cap() int {
	if r.limit <= 0 {
		return 0
	}
	return r.limit
}

// Snapshot returns a copy of the elements, oldest first.
// The returned slice never aliases the ring's storage.
func (r *Ring[T]) Snapshot() []T {
	out := make([]T, r.size)
	if r.limit <= 0 {
		copy(out, r.items)
		return out
	}
	for i := 0; i < r.size; i++ {
		out[i] = r.items[(r.head+i)%r.limit]
	}
	return out
}

// Reset drops all elements and keeps the capacity.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	if r.limit <= 0 {
		r.items = r.items[:0]
	}
	r.head = 0
	r.size = 0
}
