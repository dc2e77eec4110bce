// Package types defines the core domain types for materia-calc.
package types

import (
	"iter"
	"math"
	"sort"

	"materia-calc/internal/errors"
)

// Price is a unit price in gil
type Price uint64

// MaxPrice is the largest accepted unit price. Five of them still fit in an int64.
const MaxPrice Price = math.MaxUint32

// Pair is a single priced material
type Pair struct {
	Name  string `json:"name"`
	Price Price  `json:"price"`
}

// Pairs is an ordered list of priced materials
type Pairs []Pair

// All iterates the pairs in order
func (p Pairs) All() iter.Seq2[string, Price] {
	return func(yield func(string, Price) bool) {
		for _, pair := range p {
			if !yield(pair.Name, pair.Price) {
				return
			}
		}
	}
}

// Len returns the number of pairs
func (p Pairs) Len() int {
	return len(p)
}

// Names returns the material names in order
func (p Pairs) Names() []string {
	names := make([]string, len(p))
	for i, pair := range p {
		names[i] = pair.Name
	}
	return names
}

// Catalog maps material names to prices for a single grade.
// Iteration follows insertion order, which loaders set to source order.
// A catalog must not be modified once it is handed to the optimizer.
type Catalog struct {
	names  []string
	prices []Price
	index  map[string]int
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		index: make(map[string]int),
	}
}

// CatalogFromMap builds a catalog from a map, ordering keys ascending
func CatalogFromMap(m map[string]Price) (*Catalog, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	c := NewCatalog()
	for _, name := range names {
		if err := c.Add(name, m[name]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a material
func (c *Catalog) Add(name string, price Price) error {
	if name == "" {
		return errors.InvalidInput("material name must not be empty")
	}
	if price > MaxPrice {
		return errors.InvalidInputf("price of %q exceeds %d", name, MaxPrice)
	}
	if _, exists := c.index[name]; exists {
		return errors.InvalidInputf("duplicate material: %q", name)
	}

	c.index[name] = len(c.names)
	c.names = append(c.names, name)
	c.prices = append(c.prices, price)
	return nil
}

// Len returns the number of materials
func (c *Catalog) Len() int {
	return len(c.names)
}

// Price returns the price of a material
func (c *Catalog) Price(name string) (Price, bool) {
	i, ok := c.index[name]
	if !ok {
		return 0, false
	}
	return c.prices[i], true
}

// Has reports whether the catalog lists a material
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// IndexOf returns the position of a material in iteration order
func (c *Catalog) IndexOf(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Name returns the material at position i
func (c *Catalog) Name(i int) string {
	return c.names[i]
}

// PriceAt returns the price at position i
func (c *Catalog) PriceAt(i int) Price {
	return c.prices[i]
}

// Names returns a copy of the material names in iteration order
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// All iterates materials in catalog order
func (c *Catalog) All() iter.Seq2[string, Price] {
	return func(yield func(string, Price) bool) {
		for i, name := range c.names {
			if !yield(name, c.prices[i]) {
				return
			}
		}
	}
}

// Pairs returns the catalog as an ordered pair list
func (c *Catalog) Pairs() Pairs {
	out := make(Pairs, len(c.names))
	for i, name := range c.names {
		out[i] = Pair{Name: name, Price: c.prices[i]}
	}
	return out
}
