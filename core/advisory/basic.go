// Package advisory produces the per-grade buying and selling reports that
// sit alongside the exhaustive optimizer.
package advisory

import (
	"materia-calc/core/stats"
	"materia-calc/core/types"
	"materia-calc/internal/logging"

	"go.uber.org/zap"
)

// BasicReport is the cheapest-five summary of one grade
type BasicReport struct {
	Tier string `json:"tier"`

	// Cheapest are the five lowest priced materials, cheapest first
	Cheapest types.Pairs `json:"cheapest"`

	// Cost is the price of transmuting the cheapest five
	Cost types.Price `json:"cost"`

	// RemainingMean is the mean price of everything else
	RemainingMean types.OptionalPrice `json:"remaining_mean"`
}

// Basic summarizes transmuting the five cheapest materials of a tier.
// Tiers with fewer than five materials fail with InvalidInput.
func Basic(tier types.Tier) (BasicReport, error) {
	cheapest, err := stats.KSmallest(tier.Catalog, types.SelectionSize)
	if err != nil {
		return BasicReport{}, err
	}

	remaining := stats.Without(tier.Catalog, cheapest.Names())
	return BasicReport{
		Tier:          tier.Name,
		Cheapest:      cheapest,
		Cost:          stats.Sum(cheapest),
		RemainingMean: stats.OptionalMean(remaining),
	}, nil
}

// BasicOutcome pairs a tier's report with the error that prevented it
type BasicOutcome struct {
	Report BasicReport
	Err    error
}

// BasicAll runs Basic on every tier. A failing tier does not stop the rest.
func BasicAll(economy *types.Economy) []BasicOutcome {
	tiers := economy.Tiers()
	out := make([]BasicOutcome, 0, len(tiers))
	for _, tier := range tiers {
		report, err := Basic(tier)
		if err != nil {
			logging.ForTier(tier.Name).Warn("basic report skipped", zap.Error(err))
			report.Tier = tier.Name
		}
		out = append(out, BasicOutcome{Report: report, Err: err})
	}
	return out
}
