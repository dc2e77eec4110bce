package advisory

import (
	"github.com/shopspring/decimal"

	"materia-calc/core/stats"
	"materia-calc/core/types"
	"materia-calc/internal/errors"
)

// Params tune the two-grade advisory. The shares and divisors are empirical
// market cutoffs.
type Params struct {
	// LowerGrade and UpperGrade name the tiers to compare
	LowerGrade string
	UpperGrade string

	// RetainShare is the chance a lower-grade transmutation stays in grade
	RetainShare decimal.Decimal

	// UpgradeShare is the chance it yields an upper-grade material instead
	UpgradeShare decimal.Decimal

	// A material sells when its price is at least mean/SellDivisor*SellMultiplier
	SellDivisor    types.Price
	SellMultiplier types.Price

	// Buy cutoffs scale mean/CutoffDivisor by the shares
	CutoffDivisor types.Price
}

// DefaultParams returns the cutoffs used for grades VII and VIII
func DefaultParams() Params {
	return Params{
		LowerGrade:     "VII",
		UpperGrade:     "VIII",
		RetainShare:    decimal.RequireFromString("0.92"),
		UpgradeShare:   decimal.RequireFromString("0.08"),
		SellDivisor:    4,
		SellMultiplier: 2,
		CutoffDivisor:  5,
	}
}

// GradeAdvice is the buy, sell and transmute split for one grade
type GradeAdvice struct {
	Grade string      `json:"grade"`
	Mean  types.Price `json:"mean"`

	// SellThreshold is the lowest price worth selling outright
	SellThreshold types.Price `json:"sell_threshold"`

	// BuyCutoff is the price below which buying to transmute pays
	BuyCutoff types.Price `json:"buy_cutoff"`

	// ToTransmute are the five inputs to use, cheapest first, padded with
	// the cheapest when fewer than five candidates exist
	ToTransmute   types.Pairs `json:"to_transmute"`
	TransmuteCost types.Price `json:"transmute_cost"`

	// SellMean is the mean price of the materials worth selling
	SellMean types.OptionalPrice `json:"sell_mean"`

	// SellMeanWithUpgrade weighs SellMean with the upgrade chance. Only
	// reported for the lower grade.
	SellMeanWithUpgrade *types.OptionalPrice `json:"sell_mean_with_upgrade,omitempty"`

	Sell          types.Pairs `json:"sell"`
	TransmuteOnly types.Pairs `json:"transmute_only"`
	Buy           types.Pairs `json:"buy"`
}

// Advice covers the lower and upper grade
type Advice struct {
	Lower GradeAdvice `json:"lower"`
	Upper GradeAdvice `json:"upper"`
}

// Validate checks that the divisors can be used
func (p Params) Validate() error {
	if p.SellDivisor == 0 || p.CutoffDivisor == 0 {
		return errors.InvalidInput("advisory divisors must be positive")
	}
	if p.LowerGrade == "" || p.UpperGrade == "" {
		return errors.InvalidInput("advisory grades must be named")
	}
	return nil
}

// Advise splits the lower and upper grade into materials to sell, to buy
// for transmuting, and to transmute without buying.
func Advise(economy *types.Economy, p Params) (Advice, error) {
	if err := p.Validate(); err != nil {
		return Advice{}, err
	}

	lower, ok := economy.Tier(p.LowerGrade)
	if !ok {
		return Advice{}, errors.NotFound("grade", p.LowerGrade)
	}
	upper, ok := economy.Tier(p.UpperGrade)
	if !ok {
		return Advice{}, errors.NotFound("grade", p.UpperGrade)
	}

	lowerMean, err := stats.Mean(lower.Catalog)
	if err != nil {
		return Advice{}, errors.Wrapf(errors.TypeEmptyData, err, "grade %s", lower.Name)
	}
	upperMean, err := stats.Mean(upper.Catalog)
	if err != nil {
		return Advice{}, errors.Wrapf(errors.TypeEmptyData, err, "grade %s", upper.Name)
	}

	upperBase := decimal.NewFromInt(int64(upperMean / p.CutoffDivisor))
	lowerBase := decimal.NewFromInt(int64(lowerMean / p.CutoffDivisor))

	upperCutoff := truncate(p.RetainShare.Mul(upperBase))
	lowerCutoff := truncate(
		p.RetainShare.Mul(lowerBase).Mul(p.RetainShare).
			Add(p.RetainShare.Mul(p.UpgradeShare).Mul(upperBase)))

	advice := Advice{
		Lower: split(lower, lowerMean, p, lowerCutoff),
		Upper: split(upper, upperMean, p, upperCutoff),
	}

	withUpgrade := types.OptionalPrice{}
	if sm := advice.Lower.SellMean; sm.Valid {
		weighted := decimal.NewFromInt(int64(sm.Value)).Mul(p.RetainShare).
			Add(decimal.NewFromInt(int64(upperMean)).Mul(p.UpgradeShare))
		withUpgrade = types.SomePrice(truncate(weighted))
	}
	advice.Lower.SellMeanWithUpgrade = &withUpgrade

	return advice, nil
}

func split(tier types.Tier, mean types.Price, p Params, cutoff types.Price) GradeAdvice {
	threshold := mean / p.SellDivisor * p.SellMultiplier

	sell, candidates := stats.Partition(tier.Catalog, func(m types.Pair) bool {
		return m.Price >= threshold
	})
	buy, transmuteOnly := stats.Partition(candidates, func(m types.Pair) bool {
		return m.Price < cutoff
	})
	toTransmute := fillTransmute(stats.SortedByPrice(candidates))

	return GradeAdvice{
		Grade:         tier.Name,
		Mean:          mean,
		SellThreshold: threshold,
		BuyCutoff:     cutoff,
		ToTransmute:   toTransmute,
		TransmuteCost: stats.Sum(toTransmute),
		SellMean:      stats.OptionalMean(sell),
		Sell:          orEmpty(sell),
		TransmuteOnly: orEmpty(transmuteOnly),
		Buy:           orEmpty(buy),
	}
}

// fillTransmute takes up to five of the sorted candidates and repeats the
// cheapest until five slots are filled
func fillTransmute(sorted types.Pairs) types.Pairs {
	out := make(types.Pairs, 0, types.SelectionSize)
	if len(sorted) == 0 {
		return out
	}
	for _, m := range sorted {
		if len(out) == types.SelectionSize {
			break
		}
		out = append(out, m)
	}
	for len(out) < types.SelectionSize {
		out = append(out, sorted[0])
	}
	return out
}

func truncate(d decimal.Decimal) types.Price {
	if d.IsNegative() {
		return 0
	}
	return types.Price(d.Truncate(0).IntPart())
}

func orEmpty(p types.Pairs) types.Pairs {
	if p == nil {
		return types.Pairs{}
	}
	return p
}
