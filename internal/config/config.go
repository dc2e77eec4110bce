// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"materia-calc/core/advisory"
	"materia-calc/core/types"
	"materia-calc/internal/errors"
	"materia-calc/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog contains catalog source settings
	Catalog CatalogConfig `json:"catalog"`

	// Optimizer contains search settings
	Optimizer OptimizerConfig `json:"optimizer"`

	// Advisory contains the two-grade advisory cutoffs
	Advisory AdvisoryConfig `json:"advisory"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig locates the price catalog
type CatalogConfig struct {
	// Path is the catalog file; the extension selects the format
	Path string `json:"path" validate:"required"`
}

// OptimizerConfig tunes the exhaustive search
type OptimizerConfig struct {
	// Workers bounds concurrent shards per grade. 0 uses every CPU, 1 runs sequentially.
	Workers int `json:"workers" validate:"min=0,max=1024"`
}

// AdvisoryConfig holds the advisory cutoffs
type AdvisoryConfig struct {
	LowerGrade     string          `json:"lower_grade" validate:"required"`
	UpperGrade     string          `json:"upper_grade" validate:"required,nefield=LowerGrade"`
	RetainShare    decimal.Decimal `json:"retain_share"`
	UpgradeShare   decimal.Decimal `json:"upgrade_share"`
	SellDivisor    uint64          `json:"sell_divisor" validate:"min=1"`
	SellMultiplier uint64          `json:"sell_multiplier" validate:"min=1"`
	CutoffDivisor  uint64          `json:"cutoff_divisor" validate:"min=1"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Format is the report format
	Format string `json:"format" validate:"oneof=text json"`

	// NoColor disables ANSI colours in text output
	NoColor bool `json:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	p := advisory.DefaultParams()
	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{
			Path: "materia.json",
		},
		Optimizer: OptimizerConfig{
			Workers: 0,
		},
		Advisory: AdvisoryConfig{
			LowerGrade:     p.LowerGrade,
			UpperGrade:     p.UpperGrade,
			RetainShare:    p.RetainShare,
			UpgradeShare:   p.UpgradeShare,
			SellDivisor:    uint64(p.SellDivisor),
			SellMultiplier: uint64(p.SellMultiplier),
			CutoffDivisor:  uint64(p.CutoffDivisor),
		},
		Output: OutputConfig{
			Format:  "text",
			NoColor: false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".materia-calc.json"
	}
	return filepath.Join(homeDir, ".materia-calc.json")
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("read "+path, err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("decode "+path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Validate checks struct tags and the share ranges
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Config("invalid configuration", formatValidationError(err))
	}

	one := decimal.NewFromInt(1)
	for name, share := range map[string]decimal.Decimal{
		"retain_share":  c.Advisory.RetainShare,
		"upgrade_share": c.Advisory.UpgradeShare,
	} {
		if share.IsNegative() || share.GreaterThan(one) {
			return errors.Config("invalid configuration",
				fmt.Errorf("advisory.%s must be between 0 and 1, got %s", name, share))
		}
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

// AdvisoryParams converts the advisory section for the advisory package
func (c *Config) AdvisoryParams() advisory.Params {
	a := c.Advisory
	return advisory.Params{
		LowerGrade:     a.LowerGrade,
		UpperGrade:     a.UpperGrade,
		RetainShare:    a.RetainShare,
		UpgradeShare:   a.UpgradeShare,
		SellDivisor:    types.Price(a.SellDivisor),
		SellMultiplier: types.Price(a.SellMultiplier),
		CutoffDivisor:  types.Price(a.CutoffDivisor),
	}
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
