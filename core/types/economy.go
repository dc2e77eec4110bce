package types

import (
	"materia-calc/internal/errors"
)

// Tier is a named grade and its catalog
type Tier struct {
	Name    string   `json:"name"`
	Catalog *Catalog `json:"-"`
}

// Economy is an ordered snapshot of every grade
type Economy struct {
	tiers []Tier
	index map[string]int
}

// NewEconomy creates an empty economy
func NewEconomy() *Economy {
	return &Economy{
		index: make(map[string]int),
	}
}

// Add appends a tier. Tier names must be unique.
func (e *Economy) Add(name string, catalog *Catalog) error {
	if name == "" {
		return errors.InvalidInput("grade name must not be empty")
	}
	if _, exists := e.index[name]; exists {
		return errors.InvalidInputf("duplicate grade: %q", name)
	}
	if catalog == nil {
		catalog = NewCatalog()
	}

	e.index[name] = len(e.tiers)
	e.tiers = append(e.tiers, Tier{Name: name, Catalog: catalog})
	return nil
}

// Tiers returns the tiers in order
func (e *Economy) Tiers() []Tier {
	out := make([]Tier, len(e.tiers))
	copy(out, e.tiers)
	return out
}

// Tier looks up a tier by name
func (e *Economy) Tier(name string) (Tier, bool) {
	i, ok := e.index[name]
	if !ok {
		return Tier{}, false
	}
	return e.tiers[i], true
}

// Len returns the number of tiers
func (e *Economy) Len() int {
	return len(e.tiers)
}
