// Package stats provides the aggregates shared by every report mode.
// All functions accept any PriceSource, so catalogs and pair lists share one
// implementation.
package stats

import (
	"iter"
	"slices"

	"materia-calc/core/types"
	"materia-calc/internal/errors"
)

// PriceSource is anything that can enumerate priced materials in a stable order
type PriceSource interface {
	All() iter.Seq2[string, types.Price]
}

// Sum returns the total of all prices. An empty source sums to zero.
func Sum(src PriceSource) types.Price {
	var total types.Price
	for _, p := range src.All() {
		total += p
	}
	return total
}

// Mean returns the arithmetic mean truncated toward zero.
// An empty source yields an EmptyData error.
func Mean(src PriceSource) (types.Price, error) {
	var total types.Price
	var n types.Price
	for _, p := range src.All() {
		total += p
		n++
	}
	if n == 0 {
		return 0, errors.EmptyData("mean")
	}
	return total / n, nil
}

// OptionalMean is Mean with an empty source reported as an undefined price
func OptionalMean(src PriceSource) types.OptionalPrice {
	m, err := Mean(src)
	if err != nil {
		return types.OptionalPrice{}
	}
	return types.SomePrice(m)
}

// Collect copies a source into an ordered pair list
func Collect(src PriceSource) types.Pairs {
	var out types.Pairs
	for name, p := range src.All() {
		out = append(out, types.Pair{Name: name, Price: p})
	}
	return out
}

// SortedByPrice returns the entries ordered by ascending price. Equal prices
// keep their source order.
func SortedByPrice(src PriceSource) types.Pairs {
	out := Collect(src)
	slices.SortStableFunc(out, func(a, b types.Pair) int {
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
		return 0
	})
	return out
}

// KSmallest returns the k cheapest entries in ascending price order.
// It fails with InvalidInput when the source holds fewer than k entries.
func KSmallest(src PriceSource, k int) (types.Pairs, error) {
	if k < 0 {
		return nil, errors.InvalidInputf("k must not be negative, got %d", k)
	}
	sorted := SortedByPrice(src)
	if len(sorted) < k {
		return nil, errors.InvalidInputf("need at least %d materials, have %d", k, len(sorted)).
			WithContext("required", k).
			WithContext("available", len(sorted))
	}
	return sorted[:k:k], nil
}

// Partition splits a source into entries that satisfy keep and those that don't.
// Both halves keep source order.
func Partition(src PriceSource, keep func(types.Pair) bool) (matched, rest types.Pairs) {
	for name, p := range src.All() {
		pair := types.Pair{Name: name, Price: p}
		if keep(pair) {
			matched = append(matched, pair)
		} else {
			rest = append(rest, pair)
		}
	}
	return matched, rest
}

// Without returns the entries whose name is not listed in exclude.
// Each excluded name removes at most one entry, however often it is listed.
func Without(src PriceSource, exclude []string) types.Pairs {
	_, rest := Partition(src, func(p types.Pair) bool {
		return slices.Contains(exclude, p.Name)
	})
	return rest
}
