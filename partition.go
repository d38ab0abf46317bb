// Package partition rearranges slices in place so that every element for
// which a predicate holds precedes every element for which it does not.
//
// The functions borrow buf for the duration of the call: no other goroutine
// may read or write it until the call returns, and the predicate must not
// modify buf or partition it again. Predicates must be deterministic; they
// may be evaluated more than once for the same position. The relative order
// of elements within each half is not preserved.
package partition

// Partition partitions buf in place and returns the sub-slices holding the
// elements for which predicate returned true and false, respectively. Both
// share buf's backing array. The capacity of trues ends where falses begins.
//
// If predicate panics, the panic propagates and buf is left partially
// partitioned.
func Partition[T any](buf []T, predicate func(T) bool) (trues, falses []T) {
	mid := PartitionIndex(buf, predicate)
	return buf[:mid:mid], buf[mid:]
}

// PartitionIndex partitions buf in place and returns the index of the first
// element for which predicate returned false. It returns 0 if buf is empty
// or no element satisfies predicate, and len(buf) if every element does.
func PartitionIndex[T any](buf []T, predicate func(T) bool) int {
	return partitionIndex(buf, func(e *T) bool {
		return predicate(*e)
	})
}

// PartitionRef is Partition with a predicate over element references. The
// predicate must not write through the pointer.
func PartitionRef[T any](buf []T, predicate func(*T) bool) (trues, falses []T) {
	mid := partitionIndex(buf, predicate)
	return buf[:mid:mid], buf[mid:]
}

// PartitionIndexRef is PartitionIndex with a predicate over element
// references.
func PartitionIndexRef[T any](buf []T, predicate func(*T) bool) int {
	return partitionIndex(buf, predicate)
}

func partitionIndex[T any](buf []T, predicate func(*T) bool) int {
	n := len(buf)
	if n == 0 {
		return 0
	}

	l, r := 0, n-1
	for {
		for l < n && predicate(&buf[l]) {
			l++
		}
		for 0 < r && !predicate(&buf[r]) {
			r--
		}
		if r <= l {
			return l
		}
		buf[l], buf[r] = buf[r], buf[l]
	}
}
