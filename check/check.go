// Package check verifies the partition properties on generated inputs.
package check

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/ar90n/partition"
	"github.com/ar90n/partition/common"
	"github.com/ar90n/partition/pipeline"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/atomic"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

var (
	ErrNotPermutation = errors.New("result is not a permutation of the input")
	ErrMisplaced      = errors.New("element on the wrong side of the split")
	ErrIndexMismatch  = errors.New("split index disagrees with views")
	ErrUnstableSplit  = errors.New("split point moved on re-partition")
)

// Verify checks that trues and falses together are a permutation of orig
// and that every element lies on the side predicate assigns it to.
func Verify[T constraints.Ordered](orig, trues, falses []T, predicate func(T) bool) error {
	got := make([]T, 0, len(trues)+len(falses))
	got = append(got, trues...)
	got = append(got, falses...)
	if err := samePermutation(orig, got); err != nil {
		return err
	}

	for i, v := range trues {
		if !predicate(v) {
			return errors.Wrapf(ErrMisplaced, "trues[%d] = %v", i, v)
		}
	}
	for i, v := range falses {
		if predicate(v) {
			return errors.Wrapf(ErrMisplaced, "falses[%d] = %v", i, v)
		}
	}

	return nil
}

// VerifyIndex checks partitioned against orig given the split index idx.
func VerifyIndex[T constraints.Ordered](orig, partitioned []T, idx int, predicate func(T) bool) error {
	if idx < 0 || len(partitioned) < idx {
		return errors.Wrapf(ErrIndexMismatch, "index %d out of [0, %d]", idx, len(partitioned))
	}
	return Verify(orig, partitioned[:idx], partitioned[idx:], predicate)
}

func samePermutation[T constraints.Ordered](want, got []T) error {
	if len(want) != len(got) {
		return errors.Wrapf(ErrNotPermutation, "length %d, want %d", len(got), len(want))
	}

	want = slices.Clone(want)
	got = slices.Clone(got)
	slices.Sort(want)
	slices.Sort(got)
	for i := range want {
		if want[i] != got[i] {
			return errors.Wrapf(ErrNotPermutation, "multiset differs at sorted position %d", i)
		}
	}

	return nil
}

type Config struct {
	Trials        uint
	Seed          int64
	MaxGoroutines uint
}

type Report struct {
	Trials   uint
	Elements uint64
	Trues    uint64
}

// Failure carries the seed of the trial that broke a property so the input
// can be regenerated.
type Failure struct {
	Seed int64
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("trial seed %d: %v", f.Seed, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Run generates cfg.Trials inputs with gen and checks every property of
// Partition and PartitionIndex on each of them. Each trial owns its input,
// so trials run concurrently on a worker pool.
func Run[T constraints.Ordered](ctx context.Context, cfg Config, gen func(r *rand.Rand) []T, predicate func(T) bool) (Report, error) {
	genCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	seeds := rand.New(rand.NewSource(cfg.Seed))
	trials := pipeline.Take(genCtx, cfg.Trials, pipeline.Generate(genCtx, seeds.Int63))

	var elements, trues atomic.Uint64
	p := pool.New().WithContext(ctx).WithMaxGoroutines(int(common.ProcNum(cfg.MaxGoroutines))).WithCancelOnError().WithFirstError()
	n := uint(0)
	for seed := range trials {
		seed := seed
		n++
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data := gen(rand.New(rand.NewSource(seed)))
			mid, err := trial(data, predicate)
			if err != nil {
				return &Failure{Seed: seed, Err: err}
			}
			elements.Add(uint64(len(data)))
			trues.Add(uint64(mid))
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	return Report{
		Trials:   n,
		Elements: elements.Load(),
		Trues:    trues.Load(),
	}, nil
}

func trial[T constraints.Ordered](data []T, predicate func(T) bool) (int, error) {
	viewBuf := slices.Clone(data)
	t, f := partition.Partition(viewBuf, predicate)
	if err := Verify(data, t, f, predicate); err != nil {
		return 0, errors.Wrap(err, "Partition")
	}

	indexBuf := slices.Clone(data)
	mid := partition.PartitionIndex(indexBuf, predicate)
	if err := VerifyIndex(data, indexBuf, mid, predicate); err != nil {
		return 0, errors.Wrap(err, "PartitionIndex")
	}
	if mid != len(t) {
		return 0, errors.Wrapf(ErrIndexMismatch, "index %d, true view length %d", mid, len(t))
	}

	if again := partition.PartitionIndex(viewBuf, predicate); again != mid {
		return 0, errors.Wrapf(ErrUnstableSplit, "index %d, then %d", mid, again)
	}

	return mid, nil
}
