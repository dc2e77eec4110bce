package transmute

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"materia-calc/core/stats"
	"materia-calc/core/types"
	"materia-calc/internal/errors"
)

func newCatalog(t *testing.T, pairs ...types.Pair) *types.Catalog {
	t.Helper()
	c := types.NewCatalog()
	for _, p := range pairs {
		require.NoError(t, c.Add(p.Name, p.Price))
	}
	return c
}

func sampleCatalog(t *testing.T) *types.Catalog {
	return newCatalog(t,
		types.Pair{Name: "A", Price: 1},
		types.Pair{Name: "B", Price: 2},
		types.Pair{Name: "C", Price: 3},
		types.Pair{Name: "D", Price: 4},
		types.Pair{Name: "E", Price: 5},
		types.Pair{Name: "F", Price: 100},
	)
}

func TestEvaluateRepeatedCheapest(t *testing.T) {
	c := sampleCatalog(t)

	r, err := Evaluate(c, types.Selection{"A", "A", "A", "A", "A"})
	require.NoError(t, err)
	assert.Equal(t, types.Price(5), r.InputCost)
	assert.Equal(t, types.Price(22), r.ExpectedOutput)
	assert.True(t, r.HasOutput)
	assert.Equal(t, int64(17), r.Profit())
}

func TestEvaluateCountsDuplicatesInCostOnly(t *testing.T) {
	c := sampleCatalog(t)

	r, err := Evaluate(c, types.Selection{"F", "A", "F", "A", "B"})
	require.NoError(t, err)
	assert.Equal(t, types.Price(100+1+100+1+2), r.InputCost)
	// others are C, D, E
	assert.Equal(t, types.Price(4), r.ExpectedOutput)
}

func TestEvaluateUnknownMaterial(t *testing.T) {
	c := sampleCatalog(t)

	_, err := Evaluate(c, types.Selection{"A", "A", "Z", "A", "A"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))
	assert.Contains(t, err.Error(), "unknown material")
}

func TestEvaluateCoveringWholeCatalogHasNoOutput(t *testing.T) {
	c := newCatalog(t,
		types.Pair{Name: "A", Price: 1},
		types.Pair{Name: "B", Price: 2},
		types.Pair{Name: "C", Price: 3},
		types.Pair{Name: "D", Price: 4},
		types.Pair{Name: "E", Price: 5},
	)

	r, err := Evaluate(c, types.Selection{"E", "D", "C", "B", "A"})
	require.NoError(t, err)
	assert.Equal(t, types.Price(15), r.InputCost)
	assert.False(t, r.HasOutput)
	assert.Equal(t, types.Price(0), r.ExpectedOutput)
	assert.False(t, r.Output().Valid)
}

func TestCombinationsCountAndMembership(t *testing.T) {
	for n := 1; n <= 4; n++ {
		c := types.NewCatalog()
		for i := 0; i < n; i++ {
			require.NoError(t, c.Add(string(rune('A'+i)), types.Price(i)))
		}

		count := 0
		for sel := range Combinations(c) {
			for _, name := range sel {
				assert.True(t, c.Has(name))
			}
			count++
		}
		want := 1
		for i := 0; i < types.SelectionSize; i++ {
			want *= n
		}
		assert.Equal(t, want, count, "catalog of %d", n)
	}
}

func TestCombinationsOrderStartsWithFirstMaterial(t *testing.T) {
	c := newCatalog(t, types.Pair{Name: "X", Price: 1}, types.Pair{Name: "Y", Price: 2})

	var got []types.Selection
	for sel := range Combinations(c) {
		got = append(got, sel)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []types.Selection{
		{"X", "X", "X", "X", "X"},
		{"X", "X", "X", "X", "Y"},
		{"X", "X", "X", "Y", "X"},
	}, got)
}

func TestCombinationsOfEmptyCatalog(t *testing.T) {
	for range Combinations(types.NewCatalog()) {
		t.Fatal("empty catalog produced a selection")
	}
}

func TestScorerAgreesWithEvaluate(t *testing.T) {
	c := newCatalog(t,
		types.Pair{Name: "A", Price: 7},
		types.Pair{Name: "B", Price: 0},
		types.Pair{Name: "C", Price: 13},
		types.Pair{Name: "D", Price: 5},
	)
	s := newScorer(c)

	for sel := range Combinations(c) {
		vec := make([]int, len(sel))
		for i, name := range sel {
			vec[i], _ = c.IndexOf(name)
		}
		want, err := Evaluate(c, sel)
		require.NoError(t, err)
		require.Equal(t, want, s.score(vec), "selection %s", sel)
	}
}

func TestFindBestSampleCatalog(t *testing.T) {
	best, ok := FindBest(sampleCatalog(t))
	require.True(t, ok)

	assert.Equal(t, types.Selection{"A", "B", "C", "D", "E"}, best.Selection)
	assert.Equal(t, types.Price(15), best.Result.InputCost)
	assert.Equal(t, types.Price(100), best.Result.ExpectedOutput)
	assert.Equal(t, int64(85), best.Profit)
	assert.Equal(t, uint64(6*6*6*6*6), best.Evaluated)
	require.True(t, best.Ratio.Valid)
	assert.Equal(t, "6.667", best.Ratio.Decimal.StringFixed(3))
}

func TestFindBestIsOptimal(t *testing.T) {
	c := newCatalog(t,
		types.Pair{Name: "Q", Price: 40},
		types.Pair{Name: "R", Price: 3},
		types.Pair{Name: "S", Price: 19},
		types.Pair{Name: "T", Price: 8},
		types.Pair{Name: "U", Price: 2},
		types.Pair{Name: "V", Price: 61},
	)

	best, ok := FindBest(c)
	require.True(t, ok)

	for sel := range Combinations(c) {
		r, err := Evaluate(c, sel)
		require.NoError(t, err)
		if r.HasOutput {
			require.LessOrEqual(t, r.Profit(), best.Profit, "selection %s beats best", sel)
		}
	}

	r, err := Evaluate(c, best.Selection)
	require.NoError(t, err)
	assert.Equal(t, r, best.Result)
}

func TestFindBestTieKeepsFirstSeen(t *testing.T) {
	c := newCatalog(t, types.Pair{Name: "X", Price: 1}, types.Pair{Name: "Y", Price: 1})
	best, ok := FindBest(c)
	require.True(t, ok)
	assert.Equal(t, types.Selection{"X", "X", "X", "X", "X"}, best.Selection)
	assert.Equal(t, int64(-4), best.Profit)

	reversed := newCatalog(t, types.Pair{Name: "Y", Price: 1}, types.Pair{Name: "X", Price: 1})
	best, ok = FindBest(reversed)
	require.True(t, ok)
	assert.Equal(t, types.Selection{"Y", "Y", "Y", "Y", "Y"}, best.Selection)
}

func TestFindBestEmptyCatalogIsNoResult(t *testing.T) {
	best, ok := FindBest(types.NewCatalog())
	assert.False(t, ok)
	assert.Equal(t, uint64(0), best.Evaluated)
}

func TestFindBestSingleMaterialIsNoResult(t *testing.T) {
	best, ok := FindBest(newCatalog(t, types.Pair{Name: "Solo", Price: 3}))
	assert.False(t, ok)
	assert.Equal(t, uint64(1), best.Evaluated)
}

func TestFindBestZeroCostRatioIsInvalid(t *testing.T) {
	c := newCatalog(t, types.Pair{Name: "Free", Price: 0}, types.Pair{Name: "Paid", Price: 9})
	best, ok := FindBest(c)
	require.True(t, ok)
	assert.Equal(t, types.Selection{"Free", "Free", "Free", "Free", "Free"}, best.Selection)
	assert.Equal(t, int64(9), best.Profit)
	assert.False(t, best.Ratio.Valid)
}

func TestFindBestConcurrentMatchesSequential(t *testing.T) {
	catalogs := []*types.Catalog{
		types.NewCatalog(),
		newCatalog(t, types.Pair{Name: "Solo", Price: 3}),
		newCatalog(t, types.Pair{Name: "X", Price: 1}, types.Pair{Name: "Y", Price: 1}),
		sampleCatalog(t),
		newCatalog(t,
			types.Pair{Name: "P", Price: 10},
			types.Pair{Name: "Q", Price: 10},
			types.Pair{Name: "R", Price: 10},
			types.Pair{Name: "S", Price: 10},
			types.Pair{Name: "T", Price: 10},
			types.Pair{Name: "U", Price: 10},
			types.Pair{Name: "V", Price: 10},
		),
	}

	for i, c := range catalogs {
		want, wantOK := FindBest(c)
		for _, workers := range []int{0, 1, 3, 8} {
			got, ok, err := FindBestConcurrent(context.Background(), c, workers)
			require.NoError(t, err)
			assert.Equal(t, wantOK, ok, "catalog %d workers %d", i, workers)
			assert.Equal(t, want, got, "catalog %d workers %d", i, workers)
		}
	}
}

func TestFindBestConcurrentHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := FindBestConcurrent(ctx, sampleCatalog(t), 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestOptimizeRunsEveryTier(t *testing.T) {
	economy := types.NewEconomy()
	require.NoError(t, economy.Add("VII", sampleCatalog(t)))
	require.NoError(t, economy.Add("Empty", types.NewCatalog()))
	require.NoError(t, economy.Add("VIII", newCatalog(t, types.Pair{Name: "X", Price: 1}, types.Pair{Name: "Y", Price: 1})))

	for _, workers := range []int{1, 4} {
		outcomes := Optimize(context.Background(), economy, workers)
		require.Len(t, outcomes, 3)

		names := make([]string, len(outcomes))
		for i, o := range outcomes {
			names[i] = o.Tier
			assert.NoError(t, o.Err)
		}
		assert.True(t, slices.Equal([]string{"VII", "Empty", "VIII"}, names))

		assert.True(t, outcomes[0].Found)
		assert.Equal(t, "VII", outcomes[0].Best.Tier)
		assert.Equal(t, int64(85), outcomes[0].Best.Profit)
		assert.False(t, outcomes[1].Found)
		assert.True(t, outcomes[2].Found)
	}
}

func TestOptimizeRecordsCancelledTiers(t *testing.T) {
	economy := types.NewEconomy()
	require.NoError(t, economy.Add("VII", sampleCatalog(t)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := Optimize(ctx, economy, 2)
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, context.Canceled)
}

func TestEvaluateInPicksContainingTier(t *testing.T) {
	economy := types.NewEconomy()
	require.NoError(t, economy.Add("VII", newCatalog(t, types.Pair{Name: "X", Price: 1}, types.Pair{Name: "Y", Price: 4})))
	require.NoError(t, economy.Add("VIII", sampleCatalog(t)))

	tier, r, err := EvaluateIn(economy, []string{"A", "A", "A", "A", "A"})
	require.NoError(t, err)
	assert.Equal(t, "VIII", tier.Name)
	assert.Equal(t, int64(17), r.Profit())

	_, _, err = EvaluateIn(economy, []string{"A", "X", "A", "A", "A"})
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	_, _, err = EvaluateIn(economy, []string{"A", "A"})
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))
}

func TestEvaluateOthersMeanMatchesStats(t *testing.T) {
	c := sampleCatalog(t)
	sel := types.Selection{"B", "B", "D", "F", "B"}

	r, err := Evaluate(c, sel)
	require.NoError(t, err)

	m, err := stats.Mean(types.Pairs{{Name: "A", Price: 1}, {Name: "C", Price: 3}, {Name: "E", Price: 5}})
	require.NoError(t, err)
	assert.Equal(t, m, r.ExpectedOutput)
}
