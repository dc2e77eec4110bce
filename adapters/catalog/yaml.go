package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"materia-calc/core/types"
	"materia-calc/internal/errors"
)

// YAMLLoader reads the catalog document written as YAML:
//
//	grades:
//	  - name: VII
//	    materia:
//	      Savage Aim: 123
type YAMLLoader struct{}

// NewYAMLLoader creates a YAML loader
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Name returns the format name
func (l *YAMLLoader) Name() string {
	return "yaml"
}

// Extensions lists handled extensions
func (l *YAMLLoader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

type yamlDocument struct {
	Grades []yamlGrade `yaml:"grades"`
}

type yamlGrade struct {
	Name    string    `yaml:"name"`
	Materia yaml.Node `yaml:"materia"`
}

// Load decodes a YAML catalog
func (l *YAMLLoader) Load(src []byte, filename string) (*types.Economy, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.Parsing("decode YAML catalog "+filename, err)
	}

	grades := make([]rawGrade, 0, len(doc.Grades))
	for _, g := range doc.Grades {
		prices, err := yamlPrices(&g.Materia)
		if err != nil {
			return nil, errors.Parsing(fmt.Sprintf("%s: grade %s", filename, g.Name), err)
		}
		grades = append(grades, rawGrade{Name: g.Name, Line: g.Materia.Line, Materia: prices})
	}
	return build(filename, grades)
}

// yamlPrices reads a mapping node in document order
func yamlPrices(node *yaml.Node) ([]rawPrice, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("line %d: materia must be a mapping", node.Line)
	}

	out := make([]rawPrice, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: material name must be a scalar", key.Line)
		}

		var value int64
		if err := val.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: price of %q must be an integer: %w", val.Line, key.Value, err)
		}
		out = append(out, rawPrice{Name: key.Value, Value: value, Line: key.Line})
	}
	return out, nil
}
