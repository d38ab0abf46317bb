package number

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

type Integer = constraints.Integer

func IsEven[T Integer](v T) bool {
	return v%2 == 0
}

func IsOdd[T Integer](v T) bool {
	return v%2 != 0
}

// Parity reports whether v is an integral value and, if so, whether it is
// even. It accepts floats, for which only integral values have a parity.
func Parity[T Number](v T) (even bool, integral bool) {
	if IsIntegral[T]() {
		return v-(v/2)*2 == 0, true
	}

	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return false, false
	}
	return math.Mod(f, 2) == 0, true
}

// IsIntegral reports whether T is an integer type.
func IsIntegral[T Number]() bool {
	half := 0.5
	return T(half) == 0
}

// IsSigned reports whether T can hold negative values.
func IsSigned[T Number]() bool {
	var zero T
	return zero-1 < zero
}
