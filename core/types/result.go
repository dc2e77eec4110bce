package types

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SelectionSize is the number of input slots in a transmutation
const SelectionSize = 5

// Selection is an ordered set of five material names. Repeats are allowed.
type Selection [SelectionSize]string

// String renders the selection as "(a, b, c, d, e)"
func (s Selection) String() string {
	return "(" + strings.Join(s[:], ", ") + ")"
}

// Distinct returns the selected names with repeats removed, first occurrence kept
func (s Selection) Distinct() []string {
	out := make([]string, 0, SelectionSize)
	for _, name := range s {
		seen := false
		for _, o := range out {
			if o == name {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, name)
		}
	}
	return out
}

// OptionalPrice is a price that may be undefined, such as the mean of nothing
type OptionalPrice struct {
	Value Price
	Valid bool
}

// SomePrice returns a defined price
func SomePrice(p Price) OptionalPrice {
	return OptionalPrice{Value: p, Valid: true}
}

// String renders the price, or "n/a" when undefined
func (o OptionalPrice) String() string {
	if !o.Valid {
		return "n/a"
	}
	return strconv.FormatUint(uint64(o.Value), 10)
}

// MarshalJSON renders undefined prices as null
func (o OptionalPrice) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// TransmuteResult is the cost and expected return of one selection
type TransmuteResult struct {
	// InputCost sums the five selected prices, repeats included
	InputCost Price `json:"input_cost"`

	// ExpectedOutput is the truncated mean price of the materials not selected
	ExpectedOutput Price `json:"expected_output"`

	// HasOutput is false when the selection covers the whole catalog
	HasOutput bool `json:"has_output"`
}

// Profit returns expected output minus input cost
func (r TransmuteResult) Profit() int64 {
	return int64(r.ExpectedOutput) - int64(r.InputCost)
}

// Ratio returns expected output divided by input cost. The ratio is
// invalid when the input cost is zero.
func (r TransmuteResult) Ratio() decimal.NullDecimal {
	if r.InputCost == 0 {
		return decimal.NullDecimal{}
	}
	out := decimal.NewFromInt(int64(r.ExpectedOutput))
	return decimal.NewNullDecimal(out.Div(decimal.NewFromInt(int64(r.InputCost))))
}

// Output returns the expected output as an optional price
func (r TransmuteResult) Output() OptionalPrice {
	return OptionalPrice{Value: r.ExpectedOutput, Valid: r.HasOutput}
}

// BestResult is the most profitable selection found for a tier
type BestResult struct {
	Tier      string              `json:"tier"`
	Selection Selection           `json:"selection"`
	Result    TransmuteResult     `json:"result"`
	Profit    int64               `json:"profit"`
	Ratio     decimal.NullDecimal `json:"ratio"`

	// Evaluated counts every enumerated selection, viable or not
	Evaluated uint64 `json:"evaluated"`
}
