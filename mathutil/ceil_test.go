package mathutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xeptore/promptgen/mathutil"
)

func TestCeilInts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b, expected int
	}{
		{0, 100, 0},
		{1, 100, 1},
		{100, 100, 1},
		{101, 100, 2},
		{150, 50, 3},
		{-7, 2, -3},
		{-7, -2, 4},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, mathutil.CeilInts(test.a, test.b), "CeilInts(%d, %d)", test.a, test.b)
	}
}
