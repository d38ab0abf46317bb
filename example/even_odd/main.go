package main

import (
	"fmt"

	"github.com/ar90n/partition"
	"github.com/ar90n/partition/predicate"
)

func main() {
	evenOdd := []uint8{0, 1, 2, 3, 4, 5, 6}
	even, odd := partition.Partition(evenOdd, predicate.Even[uint8])
	fmt.Println("even:", even)
	fmt.Println("odd:", odd)

	values := []int{9, 4, 7, 1, 8, 2}
	firstLarge := partition.PartitionIndex(values, predicate.Less(5))
	for i, v := range values {
		fmt.Printf("%d: %d (small: %t)\n", i, v, i < firstLarge)
	}
}
