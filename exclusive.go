package partition

import "sync"

// Exclusive wraps a slice that may be reachable from several goroutines and
// turns a violation of the single-writer contract into a panic with
// ErrConcurrentAccess instead of a silent data race. The guard never blocks.
type Exclusive[T any] struct {
	mu  sync.Mutex
	buf []T
}

func NewExclusive[T any](buf []T) *Exclusive[T] {
	return &Exclusive[T]{buf: buf}
}

func (e *Exclusive[T]) acquire() {
	if !e.mu.TryLock() {
		panic(ErrConcurrentAccess)
	}
}

// Partition calls Partition on the wrapped slice while holding the guard.
// The returned views are only safe to use while no other call is in flight.
func (e *Exclusive[T]) Partition(predicate func(T) bool) (trues, falses []T) {
	e.acquire()
	defer e.mu.Unlock()

	return Partition(e.buf, predicate)
}

func (e *Exclusive[T]) PartitionIndex(predicate func(T) bool) int {
	e.acquire()
	defer e.mu.Unlock()

	return PartitionIndex(e.buf, predicate)
}

// Do runs fn with the wrapped slice while holding the guard.
func (e *Exclusive[T]) Do(fn func(buf []T)) {
	e.acquire()
	defer e.mu.Unlock()

	fn(e.buf)
}

func (e *Exclusive[T]) Len() int {
	return len(e.buf)
}
