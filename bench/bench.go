// Package bench compares the in-place partition against the allocating
// two-slice split on random uint32 data.
package bench

import (
	"fmt"
	"io"
	"math/rand"
	"testing"
	"text/tabwriter"

	"github.com/ar90n/partition"
	"github.com/ar90n/partition/predicate"
	"github.com/dustin/go-humanize"
)

const (
	MethodInPlace    = "slice"
	MethodAllocating = "vec"
)

var (
	DefaultSizes      = []int{1, 10, 100, 1000, 10000}
	DefaultPredicates = []string{"true", "false", "odd"}
)

type Config struct {
	Sizes      []int
	Predicates []string
	Seed       int64
}

type Result struct {
	Name        string
	Size        int
	Predicate   string
	Method      string
	NsPerOp     int64
	AllocsPerOp int64
	BytesPerOp  int64
}

// AllocatingPartition copies buf into two new slices.
func AllocatingPartition[T any](buf []T, predicate func(T) bool) (trues, falses []T) {
	for _, v := range buf {
		if predicate(v) {
			trues = append(trues, v)
		} else {
			falses = append(falses, v)
		}
	}
	return trues, falses
}

func RandomValues(r *rand.Rand, n int) []uint32 {
	values := make([]uint32, n)
	for i := range values {
		values[i] = r.Uint32()
	}
	return values
}

// Run benchmarks every size and predicate pair with both methods.
func Run(cfg Config) ([]Result, error) {
	sizes := cfg.Sizes
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	names := cfg.Predicates
	if len(names) == 0 {
		names = DefaultPredicates
	}

	r := rand.New(rand.NewSource(cfg.Seed))
	results := make([]Result, 0, 2*len(sizes)*len(names))
	for _, name := range names {
		pred, err := predicate.Parse[uint32](name)
		if err != nil {
			return nil, err
		}

		for _, size := range sizes {
			data := RandomValues(r, size)
			inPlace := testing.Benchmark(func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					partition.Partition(data, pred)
				}
			})
			allocating := testing.Benchmark(func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					AllocatingPartition(data, pred)
				}
			})

			results = append(results,
				newResult(size, name, MethodInPlace, inPlace),
				newResult(size, name, MethodAllocating, allocating),
			)
		}
	}

	return results, nil
}

func newResult(size int, pred, method string, br testing.BenchmarkResult) Result {
	return Result{
		Name:        fmt.Sprintf("bench_%s_%d_%s", method, size, pred),
		Size:        size,
		Predicate:   pred,
		Method:      method,
		NsPerOp:     br.NsPerOp(),
		AllocsPerOp: br.AllocsPerOp(),
		BytesPerOp:  br.AllocedBytesPerOp(),
	}
}

func Format(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "name\tsize\tns/op\tallocs/op\tB/op\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			r.Name,
			humanize.Comma(int64(r.Size)),
			humanize.Comma(r.NsPerOp),
			humanize.Comma(r.AllocsPerOp),
			humanize.Bytes(uint64(r.BytesPerOp)),
		)
	}
	return tw.Flush()
}
