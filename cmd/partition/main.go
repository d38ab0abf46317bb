package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"runtime/pprof"

	"github.com/ar90n/partition"
	"github.com/ar90n/partition/bench"
	"github.com/ar90n/partition/check"
	"github.com/ar90n/partition/number"
	"github.com/ar90n/partition/predicate"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// maxCheckLen bounds --max-len so generated inputs stay allocatable.
const maxCheckLen = 1 << 24

func startProfile(profileOutputName string) (func(), error) {
	if profileOutputName == "" {
		return func() {}, nil
	}

	f, err := os.Create(profileOutputName)
	if err != nil {
		return nil, errors.Wrap(err, "create profile output")
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "start cpu profile")
	}

	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func readValues[T number.Number](r io.Reader) ([]T, error) {
	values := make([]T, 0, 1024)
	for {
		var v T
		err := binary.Read(r, binary.LittleEndian, &v)
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read value %d", len(values))
		}
		values = append(values, v)
	}
}

func runAction(c *cli.Context) error {
	stop, err := startProfile(c.String("profile-output"))
	if err != nil {
		return err
	}
	defer stop()

	dtype := c.String("dtype")
	expr := c.String("predicate")
	indexOnly := c.Bool("index-only")

	switch dtype {
	case "uint32":
		return run[uint32](expr, indexOnly, os.Stdin, os.Stdout)
	case "int64":
		return run[int64](expr, indexOnly, os.Stdin, os.Stdout)
	case "float32":
		return run[float32](expr, indexOnly, os.Stdin, os.Stdout)
	case "uint8":
		return run[uint8](expr, indexOnly, os.Stdin, os.Stdout)
	default:
		return errors.Errorf("unknown dtype: %s", dtype)
	}
}

func run[T number.Number](expr string, indexOnly bool, r io.Reader, w io.Writer) error {
	pred, err := predicate.Parse[T](expr)
	if err != nil {
		return err
	}

	log.Println("reading data...")
	values, err := readValues[T](bufio.NewReader(r))
	if err != nil {
		return err
	}
	log.Println("done")

	log.Printf("partitioning %d values...", len(values))
	mid := partition.PartitionIndex(values, pred)
	log.Println("done")

	index, err := encodeIndex(mid)
	if err != nil {
		return err
	}

	wtr := bufio.NewWriter(w)
	if err := binary.Write(wtr, binary.LittleEndian, index); err != nil {
		return errors.Wrap(err, "write index")
	}
	if !indexOnly {
		if err := binary.Write(wtr, binary.LittleEndian, values); err != nil {
			return errors.Wrap(err, "write values")
		}
	}
	return wtr.Flush()
}

// encodeIndex converts a split index to the uint32 written on the wire.
func encodeIndex(mid int) (uint32, error) {
	if mid < 0 || uint64(mid) > math.MaxUint32 {
		return 0, errors.Errorf("split index %d does not fit in uint32", mid)
	}
	return uint32(mid), nil
}

func checkAction(c *cli.Context) error {
	stop, err := startProfile(c.String("profile-output"))
	if err != nil {
		return err
	}
	defer stop()

	pred, err := predicate.Parse[uint32](c.String("predicate"))
	if err != nil {
		return err
	}

	maxLen := c.Int("max-len")
	if maxLen < 0 || maxCheckLen < maxLen {
		return errors.Errorf("invalid max-len: %d", maxLen)
	}
	gen := func(r *rand.Rand) []uint32 {
		return bench.RandomValues(r, r.Intn(maxLen+1))
	}

	cfg := check.Config{
		Trials:        c.Uint("trials"),
		Seed:          c.Int64("seed"),
		MaxGoroutines: c.Uint("workers"),
	}

	log.Printf("checking %d trials...", cfg.Trials)
	report, err := check.Run(c.Context, cfg, gen, pred)
	if err != nil {
		return err
	}
	log.Printf("done: %d trials, %d elements, %d matched the predicate", report.Trials, report.Elements, report.Trues)

	return nil
}

func benchAction(c *cli.Context) error {
	stop, err := startProfile(c.String("profile-output"))
	if err != nil {
		return err
	}
	defer stop()

	cfg := bench.Config{
		Sizes:      c.IntSlice("sizes"),
		Predicates: c.StringSlice("predicates"),
		Seed:       c.Int64("seed"),
	}

	log.Println("benchmarking...")
	results, err := bench.Run(cfg)
	if err != nil {
		return err
	}
	log.Println("done")

	return bench.Format(os.Stdout, results)
}

func profileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "profile-output",
		Value: "",
		Usage: "cpu profile output file",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "partition",
		HelpName: "partition",
		Usage:    "in-place partition tool",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "partition little-endian values read from stdin (at most 2^32-1 values)",
				UsageText: "partition run [command options] < values.bin > partitioned.bin",
				Action:    runAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dtype",
						Value: "uint32",
						Usage: "data type (uint32, int64, float32, uint8)",
					},
					&cli.StringFlag{
						Name:  "predicate",
						Value: "even",
						Usage: "predicate (true, false, even, odd, lt:<n>, ge:<n>, !<predicate>)",
					},
					&cli.BoolFlag{
						Name:  "index-only",
						Usage: "write only the split index",
					},
					profileFlag(),
				},
			},
			{
				Name:      "check",
				Usage:     "check partition properties on random inputs",
				UsageText: "partition check [command options]",
				Action:    checkAction,
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  "trials",
						Value: 10000,
						Usage: "number of random inputs",
					},
					&cli.IntFlag{
						Name:  "max-len",
						Value: 64,
						Usage: "maximum input length (at most 16777216)",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Value: 1,
						Usage: "random seed",
					},
					&cli.UintFlag{
						Name:  "workers",
						Value: 0,
						Usage: "number of workers (0 means one per cpu)",
					},
					&cli.StringFlag{
						Name:  "predicate",
						Value: "even",
						Usage: "predicate",
					},
					profileFlag(),
				},
			},
			{
				Name:      "bench",
				Usage:     "compare in-place and allocating partition",
				UsageText: "partition bench [command options]",
				Action:    benchAction,
				Flags: []cli.Flag{
					&cli.IntSliceFlag{
						Name:  "sizes",
						Value: cli.NewIntSlice(bench.DefaultSizes...),
						Usage: "input sizes",
					},
					&cli.StringSliceFlag{
						Name:  "predicates",
						Value: cli.NewStringSlice(bench.DefaultPredicates...),
						Usage: "predicates",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Value: 0,
						Usage: "random seed",
					},
					profileFlag(),
				},
			},
		},
	}
}

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
