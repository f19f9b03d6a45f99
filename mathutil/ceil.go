package mathutil

import (
	"golang.org/x/exp/constraints"
)

// CeilInts returns a / b rounded towards positive infinity.
func CeilInts[T constraints.Integer](a, b T) T {
	switch {
	case a == 0:
		return 0
	case (a < 0) != (b < 0):
		return a / b
	case a > 0:
		return (a + b - 1) / b
	default:
		return (a + b + 1) / b
	}
}
