package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GenerateTake(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	i := 0
	gen := Generate(ctx, func() int {
		i++
		return i
	})

	got := ToSlice(ctx, Take(ctx, 5, gen))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func Test_TakeClosedInput(t *testing.T) {
	ctx := context.Background()
	in := make(chan string, 2)
	in <- "a"
	in <- "b"
	close(in)

	assert.Equal(t, []string{"a", "b"}, ToSlice(ctx, Take(ctx, 10, in)))
}

func Test_OrDoneCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := make(chan int)
	defer close(in)
	assert.Empty(t, ToSlice(ctx, OrDone(ctx, in)))
}
