package combinatorics

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(seq func(func([]int) bool)) [][]int {
	var out [][]int
	for v := range seq {
		out = append(out, slices.Clone(v))
	}
	return out
}

func TestCartesianPowerOrder(t *testing.T) {
	got := collect(CartesianPower(2, 2))
	assert.Equal(t, [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, got)
}

func TestCartesianPowerCountMatches(t *testing.T) {
	for _, tc := range []struct{ n, k int }{{1, 5}, {2, 5}, {3, 5}, {4, 3}, {6, 5}} {
		var count uint64
		for v := range CartesianPower(tc.n, tc.k) {
			assert.Len(t, v, tc.k)
			for _, idx := range v {
				assert.True(t, idx >= 0 && idx < tc.n)
			}
			count++
		}
		assert.Equal(t, Count(tc.n, tc.k), count, "n=%d k=%d", tc.n, tc.k)
	}
}

func TestCartesianPowerEmptyDomain(t *testing.T) {
	assert.Empty(t, collect(CartesianPower(0, 5)))
	assert.Equal(t, uint64(0), Count(0, 5))
}

func TestCartesianPowerZeroDegree(t *testing.T) {
	got := collect(CartesianPower(3, 0))
	assert.Equal(t, [][]int{{}}, got)
	assert.Equal(t, uint64(1), Count(3, 0))
}

func TestCartesianPowerFromIsContiguousSlice(t *testing.T) {
	all := collect(CartesianPower(3, 3))

	var sharded [][]int
	for first := 0; first < 3; first++ {
		sharded = append(sharded, collect(CartesianPowerFrom(3, 3, []int{first}))...)
	}
	assert.Equal(t, all, sharded)

	assert.Equal(t, [][]int{{2, 1, 0}}, collect(CartesianPowerFrom(3, 3, []int{2, 1, 0})))
	assert.Empty(t, collect(CartesianPowerFrom(3, 3, []int{3})))
	assert.Empty(t, collect(CartesianPowerFrom(3, 1, []int{0, 0})))
}

func TestCartesianPowerStopsEarly(t *testing.T) {
	n := 0
	for range CartesianPower(13, 5) {
		n++
		if n == 10 {
			break
		}
	}
	assert.Equal(t, 10, n)
}

func TestPowerOverItems(t *testing.T) {
	var got []string
	for tuple := range Power([]string{"a", "b"}, 2) {
		got = append(got, tuple[0]+tuple[1])
	}
	assert.Equal(t, []string{"aa", "ab", "ba", "bb"}, got)
}

func TestCountSaturates(t *testing.T) {
	assert.Equal(t, uint64(371293), Count(13, 5))
	assert.Equal(t, ^uint64(0), Count(1<<20, 5))
}
