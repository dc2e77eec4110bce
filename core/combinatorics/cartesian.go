// Package combinatorics enumerates Cartesian powers lazily.
//
// Index vectors are produced in odometer order: position 0 varies slowest and
// the last position fastest, so for n=2, k=2 the sequence is
// [0 0] [0 1] [1 0] [1 1]. Only one vector is live at a time.
package combinatorics

import (
	"iter"
	"math"
	"math/bits"
)

// Count returns n^k, saturating at math.MaxUint64
func Count(n, k int) uint64 {
	if k <= 0 {
		return 1
	}
	if n <= 0 {
		return 0
	}
	total := uint64(1)
	for i := 0; i < k; i++ {
		hi, lo := bits.Mul64(total, uint64(n))
		if hi != 0 {
			return math.MaxUint64
		}
		total = lo
	}
	return total
}

// CartesianPower yields every length-k vector over indices [0, n).
// The yielded slice is reused; copy it to retain a vector.
func CartesianPower(n, k int) iter.Seq[[]int] {
	return CartesianPowerFrom(n, k, nil)
}

// CartesianPowerFrom yields the vectors of CartesianPower(n, k) that begin
// with prefix, in the same relative order. Prefix entries outside [0, n)
// or a prefix longer than k produce an empty sequence.
func CartesianPowerFrom(n, k int, prefix []int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 || len(prefix) > k {
			return
		}
		for _, p := range prefix {
			if p < 0 || p >= n {
				return
			}
		}
		if n <= 0 && k > 0 {
			return
		}

		vec := make([]int, k)
		copy(vec, prefix)
		fixed := len(prefix)

		for {
			if !yield(vec) {
				return
			}
			// advance the odometer over the free positions
			i := k - 1
			for ; i >= fixed; i-- {
				vec[i]++
				if vec[i] < n {
					break
				}
				vec[i] = 0
			}
			if i < fixed {
				return
			}
		}
	}
}

// Power yields every length-k tuple over items, in CartesianPower order.
// The yielded slice is reused; copy it to retain a tuple.
func Power[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		tuple := make([]T, k)
		for vec := range CartesianPower(len(items), k) {
			for i, idx := range vec {
				tuple[i] = items[idx]
			}
			if !yield(tuple) {
				return
			}
		}
	}
}
