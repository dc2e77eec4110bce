package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"materia-calc/core/types"
	"materia-calc/internal/errors"
)

// HCLLoader reads catalogs written as HCL grade blocks:
//
//	grade "VII" {
//	  materia = {
//	    "Savage Aim" = 123
//	  }
//	}
type HCLLoader struct{}

// NewHCLLoader creates an HCL loader
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{}
}

// Name returns the format name
func (l *HCLLoader) Name() string {
	return "hcl"
}

// Extensions lists handled extensions
func (l *HCLLoader) Extensions() []string {
	return []string{".hcl"}
}

var catalogSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "grade", LabelNames: []string{"name"}},
	},
}

var gradeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "materia", Required: true},
	},
}

// Load decodes an HCL catalog. A fresh parser is used per call so loads
// never share file caches.
func (l *HCLLoader) Load(src []byte, filename string) (*types.Economy, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("parse HCL catalog", diags)
	}

	content, diags := file.Body.Content(catalogSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("read HCL catalog", diags)
	}

	grades := make([]rawGrade, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		g, diags := decodeGrade(block)
		if diags.HasErrors() {
			return nil, errors.Parsing(fmt.Sprintf("grade %q", block.Labels[0]), diags)
		}
		grades = append(grades, g)
	}
	return build(filename, grades)
}

func decodeGrade(block *hcl.Block) (rawGrade, hcl.Diagnostics) {
	g := rawGrade{Name: block.Labels[0], Line: block.DefRange.Start.Line}

	body, diags := block.Body.Content(gradeSchema)
	if diags.HasErrors() {
		return g, diags
	}

	attr := body.Attributes["materia"]
	pairs, diags := hcl.ExprMap(attr.Expr)
	if diags.HasErrors() {
		return g, diags
	}

	for _, kv := range pairs {
		key, keyDiags := kv.Key.Value(nil)
		diags = append(diags, keyDiags...)
		if keyDiags.HasErrors() {
			continue
		}
		if key.IsNull() || !key.Type().Equals(cty.String) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid material name",
				Detail:   "Material names must be strings.",
				Subject:  kv.Key.Range().Ptr(),
			})
			continue
		}

		val, valDiags := kv.Value.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}

		var price int64
		if err := gocty.FromCtyValue(val, &price); err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid price",
				Detail:   fmt.Sprintf("Price of %q must be a whole number: %s.", key.AsString(), err),
				Subject:  kv.Value.Range().Ptr(),
			})
			continue
		}

		g.Materia = append(g.Materia, rawPrice{
			Name:  key.AsString(),
			Value: price,
			Line:  kv.Key.Range().Start.Line,
		})
	}
	return g, diags
}
