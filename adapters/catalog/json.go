package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"materia-calc/core/types"
	"materia-calc/internal/errors"
)

// JSONLoader reads the materia.json document:
//
//	{"grades": [{"name": "VII", "materia": {"Savage Aim": 123}}]}
type JSONLoader struct{}

// NewJSONLoader creates a JSON loader
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// Name returns the format name
func (l *JSONLoader) Name() string {
	return "json"
}

// Extensions lists handled extensions
func (l *JSONLoader) Extensions() []string {
	return []string{".json"}
}

type jsonDocument struct {
	Grades []jsonGrade `json:"grades"`
}

type jsonGrade struct {
	Name    string       `json:"name"`
	Materia orderedPrices `json:"materia"`
}

// orderedPrices decodes a JSON object keeping member order
type orderedPrices []rawPrice

// UnmarshalJSON walks the object token by token
func (o *orderedPrices) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("materia must be an object, got %v", tok)
	}

	var out orderedPrices
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", keyTok)
		}

		var num json.Number
		if err := dec.Decode(&num); err != nil {
			return fmt.Errorf("price of %q: %w", name, err)
		}
		value, err := num.Int64()
		if err != nil {
			return fmt.Errorf("price of %q must be an integer, got %s", name, num)
		}
		out = append(out, rawPrice{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out
	return nil
}

// Load decodes a JSON catalog
func (l *JSONLoader) Load(src []byte, filename string) (*types.Economy, error) {
	var doc jsonDocument
	if err := json.Unmarshal(src, &doc); err != nil {
		return nil, errors.Parsing("decode JSON catalog "+filename, err)
	}

	grades := make([]rawGrade, len(doc.Grades))
	for i, g := range doc.Grades {
		grades[i] = rawGrade{Name: g.Name, Materia: g.Materia}
	}
	return build(filename, grades)
}
