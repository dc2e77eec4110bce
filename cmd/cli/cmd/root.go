// Package cmd provides the CLI commands for materia-calc.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"materia-calc/adapters/catalog"
	"materia-calc/core/output"
	"materia-calc/core/types"
	"materia-calc/internal/config"
	"materia-calc/internal/logging"
)

const version = "0.1.0"

var (
	cfgFile     string
	catalogPath string
	format      string
	noColor     bool
	verbose     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "materia-calc",
	Short: "Find profitable materia transmutations",
	Long: `materia-calc reads a market price catalog of materia grades and reports
which transmutations of five materia are worth doing.

Without a subcommand it prints the cheapest-five report for every grade.

Examples:
  materia-calc --catalog prices.json
  materia-calc optimize --catalog prices.yaml
  materia-calc transmute "Zeal,Zeal,Aim,Mind,Mind"
  materia-calc advise --format json`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runBasic,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.materia-calc.json)")
	flags.StringVar(&catalogPath, "catalog", "", "price catalog (.json, .yaml, .yml, .hcl)")
	flags.StringVarP(&format, "format", "f", "", "output format (text, json)")
	flags.BoolVar(&noColor, "no-color", false, "disable coloured output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(basicCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(transmuteCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings resolves the configuration, applies flag overrides and
// initializes logging before any command runs.
func loadSettings(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if noColor {
		cfg.Output.NoColor = true
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		cmd.PrintErrf("Error initializing logging: %v\n", err)
	}
	logging.Debug("configuration loaded",
		zap.String("config", path),
		zap.String("catalog", cfg.Catalog.Path),
		zap.String("format", cfg.Output.Format))
	return nil
}

// loadEconomy reads the configured catalog
func loadEconomy() (*types.Economy, error) {
	return catalog.LoadFile(config.Get().Catalog.Path)
}

// newFormatter builds the configured report formatter
func newFormatter() (output.Formatter, error) {
	cfg := config.Get()
	return output.New(cfg.Output.Format, output.Options{NoColor: cfg.Output.NoColor})
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "materia-calc version %s\n", version)
	},
}
