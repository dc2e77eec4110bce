package output

import (
	"io"
	"strconv"

	"materia-calc/core/advisory"
	"materia-calc/core/transmute"
	"materia-calc/core/types"
	"materia-calc/core/ui"
)

// TextFormatter renders reports for a terminal
type TextFormatter struct {
	noColor bool
}

// NewTextFormatter creates a text formatter
func NewTextFormatter(noColor bool) *TextFormatter {
	return &TextFormatter{noColor: noColor}
}

// Format returns the format type
func (f *TextFormatter) Format() Format {
	return FormatText
}

// RenderBasic writes the cheapest-five report
func (f *TextFormatter) RenderBasic(w io.Writer, outcomes []advisory.BasicOutcome) error {
	out := ui.NewWriter(w, f.noColor)
	for i, o := range outcomes {
		if i > 0 {
			out.Blank()
		}
		out.Header("Grade " + o.Report.Tier)
		if o.Err != nil {
			out.Error("%v", o.Err)
			continue
		}

		out.SubHeader("Cheapest 5 materia")
		pairTable(out, o.Report.Cheapest)
		out.Blank()
		out.Field("Cost to input smallest 5", o.Report.Cost)
		out.Field("Average of remaining materia", o.Report.RemainingMean)
	}
	return out.Err()
}

// RenderAdvice writes the two-grade advisory
func (f *TextFormatter) RenderAdvice(w io.Writer, advice advisory.Advice) error {
	out := ui.NewWriter(w, f.noColor)
	renderGrade(out, advice.Lower)
	out.Blank()
	renderGrade(out, advice.Upper)
	return out.Err()
}

func renderGrade(out *ui.Writer, g advisory.GradeAdvice) {
	out.Header("Grade " + g.Grade)

	out.SubHeader("Transmute")
	pairTable(out, g.ToTransmute)
	out.Blank()
	out.Field("Sum to transmute", g.TransmuteCost)
	out.Field("Mean of remaining", g.SellMean)
	if g.SellMeanWithUpgrade != nil {
		out.Field("Mean incl. chance of upgrade", *g.SellMeanWithUpgrade)
	}
	out.Blank()

	out.SubHeader("Sell")
	pairTable(out, g.Sell)
	out.Blank()

	out.SubHeader("Transmute but do not buy")
	pairTable(out, g.TransmuteOnly)
	out.Blank()

	out.SubHeader("Buy (and transmute)")
	pairTable(out, g.Buy)
	out.Blank()
	out.Field("Buying cutoff", g.BuyCutoff)
	out.Field("Selling threshold", g.SellThreshold)
}

// RenderTransmute writes one evaluated selection
func (f *TextFormatter) RenderTransmute(w io.Writer, report TransmuteReport) error {
	out := ui.NewWriter(w, f.noColor)
	out.Header("Grade " + report.Tier)
	out.Field("Selection", report.Selection)
	resultFields(out, report.Result)
	return out.Err()
}

// RenderOptimize writes the best transmutation per grade
func (f *TextFormatter) RenderOptimize(w io.Writer, outcomes []transmute.TierOutcome) error {
	out := ui.NewWriter(w, f.noColor)
	for i, o := range outcomes {
		if i > 0 {
			out.Blank()
		}
		out.Header("Max profit for grade " + o.Tier)
		switch {
		case o.Err != nil:
			out.Error("%v", o.Err)
		case !o.Found:
			out.Warning("No profit for grade %s!", o.Tier)
		default:
			out.Field("Selection", o.Best.Selection)
			resultFields(out, o.Best.Result)
			out.Field("Combinations evaluated", o.Best.Evaluated)
		}
	}
	return out.Err()
}

func resultFields(out *ui.Writer, r types.TransmuteResult) {
	profit := strconv.FormatInt(r.Profit(), 10)
	if r.Profit() > 0 {
		profit = out.Color(ui.Green, profit)
	} else if r.Profit() < 0 {
		profit = out.Color(ui.Red, profit)
	}

	out.Field("Cost", r.InputCost)
	out.Field("Average result", r.Output())
	out.Field("Average profit", profit)
	out.Field("Cost-profit ratio", ratioString(r.Ratio()))
}

func pairTable(out *ui.Writer, pairs types.Pairs) {
	if len(pairs) == 0 {
		out.Println("  %s", out.Color(ui.Dim, "(none)"))
		return
	}
	table := out.NewTable("Materia", "Price")
	for _, p := range pairs {
		table.AddRow(p.Name, strconv.FormatUint(uint64(p.Price), 10))
	}
	table.Render()
}
