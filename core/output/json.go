package output

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"materia-calc/core/advisory"
	"materia-calc/core/transmute"
	"materia-calc/core/types"
)

// JSONFormatter renders reports as indented JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

type jsonBasic struct {
	advisory.BasicReport
	Error string `json:"error,omitempty"`
}

type jsonResult struct {
	InputCost      types.Price         `json:"input_cost"`
	ExpectedOutput types.OptionalPrice `json:"expected_output"`
	Profit         int64               `json:"profit"`
	Ratio          decimal.NullDecimal `json:"ratio"`
}

type jsonTransmute struct {
	Tier      string          `json:"tier"`
	Selection types.Selection `json:"selection"`
	Result    jsonResult      `json:"result"`
}

type jsonOptimize struct {
	Tier      string           `json:"tier"`
	Found     bool             `json:"found"`
	Selection *types.Selection `json:"selection,omitempty"`
	Result    *jsonResult      `json:"result,omitempty"`
	Evaluated uint64           `json:"evaluated"`
	Error     string           `json:"error,omitempty"`
}

func toJSONResult(r types.TransmuteResult) jsonResult {
	ratio := r.Ratio()
	if ratio.Valid {
		ratio.Decimal = ratio.Decimal.Round(RatioPlaces)
	}
	return jsonResult{
		InputCost:      r.InputCost,
		ExpectedOutput: r.Output(),
		Profit:         r.Profit(),
		Ratio:          ratio,
	}
}

// RenderBasic writes the cheapest-five report
func (f *JSONFormatter) RenderBasic(w io.Writer, outcomes []advisory.BasicOutcome) error {
	grades := make([]jsonBasic, len(outcomes))
	for i, o := range outcomes {
		grades[i] = jsonBasic{BasicReport: o.Report}
		if o.Err != nil {
			grades[i].Error = o.Err.Error()
		}
	}
	return encode(w, map[string]interface{}{"grades": grades})
}

// RenderAdvice writes the two-grade advisory
func (f *JSONFormatter) RenderAdvice(w io.Writer, advice advisory.Advice) error {
	return encode(w, advice)
}

// RenderTransmute writes one evaluated selection
func (f *JSONFormatter) RenderTransmute(w io.Writer, report TransmuteReport) error {
	return encode(w, jsonTransmute{
		Tier:      report.Tier,
		Selection: report.Selection,
		Result:    toJSONResult(report.Result),
	})
}

// RenderOptimize writes the best transmutation per grade
func (f *JSONFormatter) RenderOptimize(w io.Writer, outcomes []transmute.TierOutcome) error {
	grades := make([]jsonOptimize, len(outcomes))
	for i, o := range outcomes {
		g := jsonOptimize{Tier: o.Tier, Found: o.Found, Evaluated: o.Best.Evaluated}
		if o.Err != nil {
			g.Error = o.Err.Error()
		}
		if o.Found {
			sel := o.Best.Selection
			res := toJSONResult(o.Best.Result)
			g.Selection = &sel
			g.Result = &res
		}
		grades[i] = g
	}
	return encode(w, map[string]interface{}{"grades": grades})
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
