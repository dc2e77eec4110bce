package types

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"materia-calc/internal/errors"
)

func TestCatalogPreservesInsertionOrder(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add("Zeal", 3))
	require.NoError(t, c.Add("Aim", 1))
	require.NoError(t, c.Add("Mind", 2))

	assert.Equal(t, []string{"Zeal", "Aim", "Mind"}, c.Names())

	var got []string
	for name := range c.All() {
		got = append(got, name)
	}
	assert.Equal(t, []string{"Zeal", "Aim", "Mind"}, got)

	price, ok := c.Price("Aim")
	assert.True(t, ok)
	assert.Equal(t, Price(1), price)
	_, ok = c.Price("Missing")
	assert.False(t, ok)
}

func TestCatalogRejectsBadEntries(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add("A", 1))

	err := c.Add("A", 2)
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))

	err = c.Add("", 2)
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))

	err = c.Add("Huge", MaxPrice+1)
	assert.True(t, errors.IsType(err, errors.TypeInvalidInput))
	assert.Equal(t, 1, c.Len())
}

func TestCatalogFromMapSortsKeys(t *testing.T) {
	c, err := CatalogFromMap(map[string]Price{"c": 3, "a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, c.Names())
	assert.Equal(t, Pairs{{"a", 1}, {"b", 2}, {"c", 3}}, c.Pairs())
}

func TestEconomyRejectsDuplicateTier(t *testing.T) {
	e := NewEconomy()
	require.NoError(t, e.Add("VII", NewCatalog()))
	assert.True(t, errors.IsType(e.Add("VII", nil), errors.TypeInvalidInput))

	tier, ok := e.Tier("VII")
	assert.True(t, ok)
	assert.Equal(t, "VII", tier.Name)
	assert.Equal(t, 1, e.Len())
}

func TestSelectionDistinctKeepsFirstOccurrence(t *testing.T) {
	s := Selection{"B", "A", "B", "C", "A"}
	assert.Equal(t, []string{"B", "A", "C"}, s.Distinct())
	assert.Equal(t, "(B, A, B, C, A)", s.String())
}

func TestRatioIsInvalidForZeroCost(t *testing.T) {
	r := TransmuteResult{InputCost: 0, ExpectedOutput: 10, HasOutput: true}
	assert.False(t, r.Ratio().Valid)

	r = TransmuteResult{InputCost: 5, ExpectedOutput: 22, HasOutput: true}
	ratio := r.Ratio()
	require.True(t, ratio.Valid)
	assert.Equal(t, "4.400", ratio.Decimal.StringFixed(3))
	assert.Equal(t, int64(17), r.Profit())
}

func TestOptionalPriceRendering(t *testing.T) {
	assert.Equal(t, "n/a", OptionalPrice{}.String())
	assert.Equal(t, "42", SomePrice(42).String())

	b, err := OptionalPrice{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = SomePrice(7).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "7", string(b))
}

func TestPairsNames(t *testing.T) {
	p := Pairs{{"x", 1}, {"y", 2}}
	assert.True(t, slices.Equal([]string{"x", "y"}, p.Names()))
}
