package common

import "runtime"

// ProcNum returns the worker count to use for a pool: maxGoroutines, or the
// number of CPUs when it is zero.
func ProcNum(maxGoroutines uint) uint {
	if maxGoroutines == 0 {
		return uint(runtime.NumCPU())
	}

	return maxGoroutines
}
