package trivia

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intsUpTo(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginateWindows(t *testing.T) {
	items := intsUpTo(25)

	assert.Equal(t, intsUpTo(10), Paginate(items, 1, 10))
	assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, Paginate(items, 2, 10))
	assert.Equal(t, []int{21, 22, 23, 24, 25}, Paginate(items, 3, 10))
	assert.Empty(t, Paginate(items, 4, 10))
	assert.Empty(t, Paginate(items, 1000, 10))
}

func TestPaginateHugePage(t *testing.T) {
	items := intsUpTo(3)
	assert.NotPanics(t, func() {
		assert.Empty(t, Paginate(items, 922337203685477582, 10))
		assert.Empty(t, Paginate(items, math.MaxInt, 10))
	})
}

func TestPaginateInvalidPage(t *testing.T) {
	items := intsUpTo(5)
	assert.Empty(t, Paginate(items, 0, 10))
	assert.Empty(t, Paginate(items, -3, 10))
	assert.Empty(t, Paginate(items, 1, 0))
	assert.NotNil(t, Paginate([]int(nil), 1, 10))
}

func TestPaginateConcatenationReproducesPrefix(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 30, 47} {
		items := intsUpTo(n)
		joined := []int{}
		for k := 1; k <= 6; k++ {
			page := Paginate(items, k, 10)
			assert.LessOrEqual(t, len(page), 10)
			joined = append(joined, page...)

			want := 10 * k
			if want > n {
				want = n
			}
			assert.Equal(t, items[:want], joined[:want], "n=%d k=%d", n, k)
			assert.Len(t, joined, want)
		}
	}
}
