// Package transmute evaluates and optimizes five-material transmutations.
//
// A transmutation consumes five materials of one grade and returns one random
// material of that grade that was not among the inputs. The expected return is
// therefore the mean price of the catalog minus the selected materials.
package transmute

import (
	"iter"

	"materia-calc/core/combinatorics"
	"materia-calc/core/stats"
	"materia-calc/core/types"
	"materia-calc/internal/errors"
)

// Combinations yields every ordered selection of five catalog materials,
// repeats included, position 0 varying slowest. An empty catalog yields nothing.
func Combinations(c *types.Catalog) iter.Seq[types.Selection] {
	return func(yield func(types.Selection) bool) {
		for vec := range combinatorics.CartesianPower(c.Len(), types.SelectionSize) {
			var sel types.Selection
			for i, idx := range vec {
				sel[i] = c.Name(idx)
			}
			if !yield(sel) {
				return
			}
		}
	}
}

// Evaluate computes the input cost and expected output of a selection.
// Every selected name must exist in the catalog.
func Evaluate(c *types.Catalog, sel types.Selection) (types.TransmuteResult, error) {
	var cost types.Price
	for _, name := range sel {
		p, ok := c.Price(name)
		if !ok {
			return types.TransmuteResult{}, errors.UnknownMaterial(name)
		}
		cost += p
	}

	result := types.TransmuteResult{InputCost: cost}
	mean, err := stats.Mean(stats.Without(c, sel.Distinct()))
	switch {
	case err == nil:
		result.ExpectedOutput = mean
		result.HasOutput = true
	case errors.IsType(err, errors.TypeEmptyData):
		// nothing left to receive
	default:
		return types.TransmuteResult{}, err
	}
	return result, nil
}

// EvaluateIn finds the first tier whose catalog lists every selected
// material and evaluates the selection there.
func EvaluateIn(economy *types.Economy, names []string) (types.Tier, types.TransmuteResult, error) {
	if len(names) != types.SelectionSize {
		return types.Tier{}, types.TransmuteResult{}, errors.InvalidInputf(
			"a transmutation takes exactly %d materials, got %d", types.SelectionSize, len(names))
	}

	var sel types.Selection
	copy(sel[:], names)

	for _, tier := range economy.Tiers() {
		if !containsAll(tier.Catalog, sel) {
			continue
		}
		result, err := Evaluate(tier.Catalog, sel)
		return tier, result, err
	}
	return types.Tier{}, types.TransmuteResult{}, errors.NotFound("grade containing", sel.String())
}

func containsAll(c *types.Catalog, sel types.Selection) bool {
	for _, name := range sel {
		if !c.Has(name) {
			return false
		}
	}
	return true
}

// scorer evaluates index vectors against a catalog without allocating
type scorer struct {
	prices []types.Price
	total  types.Price
}

func newScorer(c *types.Catalog) *scorer {
	s := &scorer{prices: make([]types.Price, c.Len())}
	for i := range s.prices {
		s.prices[i] = c.PriceAt(i)
		s.total += s.prices[i]
	}
	return s
}

// score matches Evaluate for the selection named by vec
func (s *scorer) score(vec []int) types.TransmuteResult {
	var cost, excluded types.Price
	distinct := 0
	for i, idx := range vec {
		cost += s.prices[idx]
		repeat := false
		for _, prev := range vec[:i] {
			if prev == idx {
				repeat = true
				break
			}
		}
		if !repeat {
			excluded += s.prices[idx]
			distinct++
		}
	}

	result := types.TransmuteResult{InputCost: cost}
	if others := len(s.prices) - distinct; others > 0 {
		result.ExpectedOutput = (s.total - excluded) / types.Price(others)
		result.HasOutput = true
	}
	return result
}
