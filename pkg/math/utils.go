package math

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Epsilon is the tolerance used when comparing accumulated extents.
const Epsilon = 1e-9

// Clamp returns the value f clamped to the range [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Sum adds up all values.
func Sum[T constraints.Integer | constraints.Float](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}

// Exceeds reports whether a is larger than b by more than Epsilon.
func Exceeds(a, b float64) bool {
	return a-b > Epsilon
}

// NearlyEqual reports whether a and b differ by at most Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}
