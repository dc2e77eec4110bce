// Package cmd - transmute and optimize commands
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"materia-calc/core/output"
	"materia-calc/core/transmute"
	"materia-calc/core/types"
	"materia-calc/internal/config"
	"materia-calc/internal/errors"
)

var (
	workers  int
	onlyTier []string
)

// transmuteCmd evaluates one selection
var transmuteCmd = &cobra.Command{
	Use:   "transmute a,b,c,d,e",
	Short: "Evaluate a specific transmutation",
	Long: `Evaluate one transmutation of exactly five materia, separated by commas.
The first grade that lists all five is used. Materia may repeat.

Examples:
  materia-calc transmute "Zeal,Zeal,Aim,Mind,Mind"`,
	Args: cobra.ExactArgs(1),
	RunE: runTransmute,
}

// optimizeCmd searches every transmutation of every grade
var optimizeCmd = &cobra.Command{
	Use:     "optimize",
	Aliases: []string{"all"},
	Short:   "Find the most profitable transmutation per grade",
	Long: `Evaluate every ordered selection of five materia in each grade and report
the one with the highest expected profit.

Examples:
  materia-calc optimize
  materia-calc optimize --tier VII --workers 4`,
	Args: cobra.NoArgs,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().IntVarP(&workers, "workers", "w", -1, "concurrent shards per grade (0 = all CPUs, 1 = sequential; default from config)")
	optimizeCmd.Flags().StringSliceVarP(&onlyTier, "tier", "t", nil, "only search these grades")
}

// parseSelection splits a comma-separated selection
func parseSelection(arg string) []string {
	parts := strings.Split(arg, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return names
}

func runTransmute(cmd *cobra.Command, args []string) error {
	names := parseSelection(args[0])
	if len(names) != types.SelectionSize {
		return errors.InvalidInputf("expected %d comma-separated materia, got %d", types.SelectionSize, len(names))
	}

	economy, err := loadEconomy()
	if err != nil {
		return err
	}
	tier, result, err := transmute.EvaluateIn(economy, names)
	if err != nil {
		return err
	}

	f, err := newFormatter()
	if err != nil {
		return err
	}
	report := output.TransmuteReport{Tier: tier.Name, Result: result}
	copy(report.Selection[:], names)
	return f.RenderTransmute(cmd.OutOrStdout(), report)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	n := workers
	if n < 0 {
		n = config.Get().Optimizer.Workers
	}

	economy, err := loadEconomy()
	if err != nil {
		return err
	}
	if len(onlyTier) > 0 {
		if economy, err = selectTiers(economy, onlyTier); err != nil {
			return err
		}
	}

	f, err := newFormatter()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	return f.RenderOptimize(cmd.OutOrStdout(), transmute.Optimize(ctx, economy, n))
}

// selectTiers keeps the named tiers in the order given
func selectTiers(economy *types.Economy, names []string) (*types.Economy, error) {
	selected := types.NewEconomy()
	for _, name := range names {
		tier, ok := economy.Tier(name)
		if !ok {
			return nil, errors.NotFound("grade", name)
		}
		if err := selected.Add(tier.Name, tier.Catalog); err != nil {
			return nil, err
		}
	}
	return selected, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
