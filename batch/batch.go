// Package batch partitions many independent slices concurrently. Each slice
// is handled by exactly one worker, so the single-writer contract of the
// partition package holds as long as the slices do not alias each other.
package batch

import (
	"context"

	"github.com/ar90n/partition"
	"github.com/ar90n/partition/common"
	"github.com/sourcegraph/conc/pool"
)

type Partitioner[T any] struct {
	predicate     func(T) bool
	maxGoroutines uint
}

func NewPartitioner[T any](predicate func(T) bool) *Partitioner[T] {
	return &Partitioner[T]{
		predicate: predicate,
	}
}

// SetMaxGoroutines limits the number of workers. Zero means one per CPU.
func (p *Partitioner[T]) SetMaxGoroutines(maxGoroutines uint) *Partitioner[T] {
	p.maxGoroutines = maxGoroutines
	return p
}

// PartitionAll partitions every slice of bufs in place and returns the split
// indices in input order. Slices not yet started when ctx is cancelled are
// left untouched and ctx.Err() is returned. A panicking predicate is
// re-raised in the calling goroutine once all workers have stopped.
func (p *Partitioner[T]) PartitionAll(ctx context.Context, bufs [][]T) ([]int, error) {
	indice := make([]int, len(bufs))

	wp := pool.New().WithContext(ctx).WithMaxGoroutines(int(common.ProcNum(p.maxGoroutines))).WithCancelOnError().WithFirstError()
	for i := range bufs {
		i := i
		wp.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			indice[i] = partition.PartitionIndex(bufs[i], p.predicate)
			return nil
		})
	}

	if err := wp.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return indice, nil
}
