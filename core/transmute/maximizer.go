package transmute

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"materia-calc/core/combinatorics"
	"materia-calc/core/types"
	"materia-calc/internal/logging"
)

// cancelCheckInterval is how many selections a shard scores between context checks
const cancelCheckInterval = 4096

// best tracks the running maximum of a fold.
// Replacement requires a strictly greater profit, so the first maximum seen wins.
type best struct {
	found     bool
	vec       [types.SelectionSize]int
	result    types.TransmuteResult
	profit    int64
	evaluated uint64
}

func (b *best) offer(vec []int, r types.TransmuteResult) {
	b.evaluated++
	if !r.HasOutput {
		return
	}
	profit := r.Profit()
	if b.found && profit <= b.profit {
		return
	}
	b.found = true
	copy(b.vec[:], vec)
	b.result = r
	b.profit = profit
}

// merge folds a later shard into b, preserving first-seen-wins
func (b *best) merge(later *best) {
	b.evaluated += later.evaluated
	if !later.found || (b.found && later.profit <= b.profit) {
		return
	}
	b.found = true
	b.vec = later.vec
	b.result = later.result
	b.profit = later.profit
}

func (b *best) toResult(c *types.Catalog) types.BestResult {
	var sel types.Selection
	for i, idx := range b.vec {
		sel[i] = c.Name(idx)
	}
	return types.BestResult{
		Selection: sel,
		Result:    b.result,
		Profit:    b.profit,
		Ratio:     b.result.Ratio(),
		Evaluated: b.evaluated,
	}
}

// FindBest exhaustively searches every selection of the catalog and returns
// the one with the highest profit. Selections that cover the whole catalog
// have no possible output and are skipped. ok is false when no selection
// has an output, which includes the empty catalog.
func FindBest(c *types.Catalog) (result types.BestResult, ok bool) {
	s := newScorer(c)
	var b best
	for vec := range combinatorics.CartesianPower(c.Len(), types.SelectionSize) {
		b.offer(vec, s.score(vec))
	}
	if !b.found {
		return types.BestResult{Evaluated: b.evaluated}, false
	}
	return b.toResult(c), true
}

// FindBestConcurrent gives the same answer as FindBest, splitting the search
// into one shard per first-slot material. workers <= 0 uses GOMAXPROCS.
func FindBestConcurrent(ctx context.Context, c *types.Catalog, workers int) (types.BestResult, bool, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	n := c.Len()
	s := newScorer(c)
	shards := make([]best, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for first := 0; first < n; first++ {
		g.Go(func() error {
			local := &shards[first]
			for vec := range combinatorics.CartesianPowerFrom(n, types.SelectionSize, []int{first}) {
				if local.evaluated%cancelCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				local.offer(vec, s.score(vec))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.BestResult{}, false, err
	}

	var b best
	for i := range shards {
		b.merge(&shards[i])
	}
	if !b.found {
		return types.BestResult{Evaluated: b.evaluated}, false, nil
	}
	return b.toResult(c), true, nil
}

// TierOutcome is the optimizer's answer for one grade
type TierOutcome struct {
	Tier  string
	Best  types.BestResult
	Found bool
	Err   error
}

// Optimize runs the search on every tier in economy order. A failing tier
// is recorded and the remaining tiers still run. workers == 1 runs the
// sequential search.
func Optimize(ctx context.Context, economy *types.Economy, workers int) []TierOutcome {
	tiers := economy.Tiers()
	outcomes := make([]TierOutcome, 0, len(tiers))

	for _, tier := range tiers {
		log := logging.ForTier(tier.Name)
		start := time.Now()
		out := TierOutcome{Tier: tier.Name}

		if err := ctx.Err(); err != nil {
			out.Err = err
			outcomes = append(outcomes, out)
			continue
		}

		log.Debug("searching transmutations",
			zap.Int("materials", tier.Catalog.Len()),
			zap.Uint64("selections", combinatorics.Count(tier.Catalog.Len(), types.SelectionSize)))

		if workers == 1 {
			out.Best, out.Found = FindBest(tier.Catalog)
		} else {
			out.Best, out.Found, out.Err = FindBestConcurrent(ctx, tier.Catalog, workers)
		}
		out.Best.Tier = tier.Name

		switch {
		case out.Err != nil:
			log.Warn("search failed", zap.Error(out.Err))
		case !out.Found:
			log.Info("no profitable transmutation", zap.Duration("elapsed", time.Since(start)))
		default:
			log.Debug("search complete",
				zap.Int64("profit", out.Best.Profit),
				zap.Uint64("evaluated", out.Best.Evaluated),
				zap.Duration("elapsed", time.Since(start)))
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}
