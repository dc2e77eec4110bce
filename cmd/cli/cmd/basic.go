// Package cmd - basic and advise commands
package cmd

import (
	"github.com/spf13/cobra"

	"materia-calc/core/advisory"
	"materia-calc/internal/config"
)

var (
	lowerGrade string
	upperGrade string
)

// basicCmd prints the cheapest-five report
var basicCmd = &cobra.Command{
	Use:   "basic",
	Short: "Cost of the five cheapest materia and the mean of the rest",
	Long: `For every grade, list the five cheapest materia, the cost of
transmuting them and the average price of the remaining materia.

This is the default when no subcommand is given.`,
	Args: cobra.NoArgs,
	RunE: runBasic,
}

// adviseCmd prints the two-grade sell/buy/transmute advisory
var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Which materia to sell, buy or transmute",
	Long: `Compare a lower and an upper grade and split each grade's materia into
those worth selling, those worth buying to transmute and those only worth
transmuting when already owned.

Examples:
  materia-calc advise
  materia-calc advise --lower VII --upper VIII`,
	Args: cobra.NoArgs,
	RunE: runAdvise,
}

func init() {
	adviseCmd.Flags().StringVar(&lowerGrade, "lower", "", "lower grade name (default from config)")
	adviseCmd.Flags().StringVar(&upperGrade, "upper", "", "upper grade name (default from config)")
}

func runBasic(cmd *cobra.Command, args []string) error {
	economy, err := loadEconomy()
	if err != nil {
		return err
	}
	f, err := newFormatter()
	if err != nil {
		return err
	}
	return f.RenderBasic(cmd.OutOrStdout(), advisory.BasicAll(economy))
}

func runAdvise(cmd *cobra.Command, args []string) error {
	params := config.Get().AdvisoryParams()
	if lowerGrade != "" {
		params.LowerGrade = lowerGrade
	}
	if upperGrade != "" {
		params.UpperGrade = upperGrade
	}
	if err := params.Validate(); err != nil {
		return err
	}

	economy, err := loadEconomy()
	if err != nil {
		return err
	}
	advice, err := advisory.Advise(economy, params)
	if err != nil {
		return err
	}

	f, err := newFormatter()
	if err != nil {
		return err
	}
	return f.RenderAdvice(cmd.OutOrStdout(), advice)
}
