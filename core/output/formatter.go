// Package output provides output formatting interfaces.
// This package produces human and machine-readable reports.
package output

import (
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"materia-calc/core/advisory"
	"materia-calc/core/transmute"
	"materia-calc/core/types"
	"materia-calc/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatText is a human-readable terminal report
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// RatioPlaces is the precision used when printing cost/output ratios
const RatioPlaces = 3

// TransmuteReport is the evaluation of a single requested selection
type TransmuteReport struct {
	Tier      string                `json:"tier"`
	Selection types.Selection       `json:"selection"`
	Result    types.TransmuteResult `json:"result"`
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderBasic writes the cheapest-five report for every grade
	RenderBasic(w io.Writer, outcomes []advisory.BasicOutcome) error

	// RenderAdvice writes the two-grade advisory
	RenderAdvice(w io.Writer, advice advisory.Advice) error

	// RenderTransmute writes one evaluated selection
	RenderTransmute(w io.Writer, report TransmuteReport) error

	// RenderOptimize writes the best transmutation of every grade
	RenderOptimize(w io.Writer, outcomes []transmute.TierOutcome) error
}

// Options configure formatter construction
type Options struct {
	NoColor bool
}

// New returns the formatter for a format name
func New(format string, opts Options) (Formatter, error) {
	switch Format(strings.ToLower(format)) {
	case FormatText, "":
		return NewTextFormatter(opts.NoColor), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, errors.InvalidInputf("unknown output format %q (known: text, json)", format)
	}
}

// ratioString renders a ratio, or "n/a" when the input cost was zero
func ratioString(r decimal.NullDecimal) string {
	if !r.Valid {
		return "n/a"
	}
	return r.Decimal.StringFixed(RatioPlaces)
}
