package predicate

import "go.uber.org/atomic"

// Probe counts how many times a predicate is evaluated.
type Probe[T any] struct {
	predicate func(T) bool
	calls     atomic.Int64
}

func NewProbe[T any](predicate func(T) bool) *Probe[T] {
	return &Probe[T]{predicate: predicate}
}

func (p *Probe[T]) Func() func(T) bool {
	return func(v T) bool {
		p.calls.Inc()
		return p.predicate(v)
	}
}

func (p *Probe[T]) Calls() int64 {
	return p.calls.Load()
}

func (p *Probe[T]) Reset() {
	p.calls.Store(0)
}
