package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ExclusivePartition(t *testing.T) {
	ex := NewExclusive([]uint32{0, 1, 2, 3, 4, 5, 6})
	assert.Equal(t, 7, ex.Len())

	trues, falses := ex.Partition(isEven)
	assert.ElementsMatch(t, []uint32{0, 2, 4, 6}, trues)
	assert.ElementsMatch(t, []uint32{1, 3, 5}, falses)
	assert.Equal(t, 4, ex.PartitionIndex(isEven))
}

func Test_ExclusiveRejectsReentry(t *testing.T) {
	ex := NewExclusive([]uint32{3, 2, 1})

	assert.PanicsWithValue(t, ErrConcurrentAccess, func() {
		ex.Partition(func(v uint32) bool {
			ex.PartitionIndex(isEven)
			return true
		})
	})

	assert.PanicsWithValue(t, ErrConcurrentAccess, func() {
		ex.Do(func(buf []uint32) {
			ex.Do(func([]uint32) {})
		})
	})

	// the guard is released after a panic
	assert.NotPanics(t, func() {
		ex.Do(func(buf []uint32) {
			assert.Len(t, buf, 3)
		})
	})
}

func Test_ExclusiveRejectsConcurrentCaller(t *testing.T) {
	ex := NewExclusive([]uint32{0, 1, 2, 3})

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ex.Do(func(buf []uint32) {
			close(held)
			<-release
		})
	}()

	<-held
	assert.PanicsWithValue(t, ErrConcurrentAccess, func() {
		ex.PartitionIndex(isEven)
	})
	assert.PanicsWithValue(t, ErrConcurrentAccess, func() {
		ex.Partition(isEven)
	})
	close(release)
	<-done

	assert.Equal(t, 2, ex.PartitionIndex(isEven))
}
