// Package config provides configuration management for the survey tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"jtsa/internal/models"
)

// Configuration validation errors.
var (
	ErrMissingInputPath     = errors.New("cleaner.input.path is required")
	ErrInvalidInputFormat   = errors.New("cleaner.input.format must be 'csv' or 'xlsx'")
	ErrMissingOutputPath    = errors.New("cleaner.output.path is required")
	ErrOutputOverwritesRaw  = errors.New("cleaner.output.path must differ from cleaner.input.path")
	ErrInvalidLogLevel      = errors.New("cleaner.logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("cleaner.logging.format must be 'text' or 'json'")
	ErrFunnelStepMissingCol = errors.New("insights.funnel step needs a column")
)

// Config represents the complete tool configuration.
type Config struct {
	Cleaner  CleanerConfig  `yaml:"cleaner"`
	Insights InsightsConfig `yaml:"insights"`
}

// CleanerConfig contains settings of the cleaning run.
type CleanerConfig struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig locates the raw survey export.
type InputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	Sheet  string `yaml:"sheet"`
}

// OutputConfig defines where cleaned artifacts go. Empty optional paths disable the artifact.
type OutputConfig struct {
	Path           string `yaml:"path"`
	CategoriesPath string `yaml:"categories_path"`
	SQLitePath     string `yaml:"sqlite_path"`
	ReportPath     string `yaml:"report_path"`
	BOM            bool   `yaml:"bom"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// InsightsConfig selects the views of the insights report.
type InsightsConfig struct {
	Filters    map[string][]string `yaml:"filters"`
	Input      string              `yaml:"input"`
	Output     string              `yaml:"output"`
	GroupBy    string              `yaml:"group_by"`
	CrossWith  string              `yaml:"cross_with"`
	SegmentBy  string              `yaml:"segment_by"`
	TextColumn string              `yaml:"text_column"`
	Funnel     []FunnelStep        `yaml:"funnel"`
}

// FunnelStep is one funnel step; an empty value means the most frequent one.
type FunnelStep struct {
	Column string `yaml:"column"`
	Value  string `yaml:"value"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Cleaner: CleanerConfig{
			Input: InputConfig{Path: "data_raw/survey.csv"},
			Output: OutputConfig{
				Path: "data_processed/df_clean.csv",
				BOM:  true,
			},
			Logging: LoggingConfig{Level: "info", Format: "text"},
		},
		Insights: InsightsConfig{
			Input:      "data_processed/df_clean.csv",
			TextColumn: models.ColumnImprovementIdeas,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	in := c.Cleaner.Input
	if in.Path == "" {
		return ErrMissingInputPath
	}

	switch strings.ToLower(in.Format) {
	case "", "csv", "xlsx":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidInputFormat, in.Format)
	}

	out := c.Cleaner.Output
	if out.Path == "" {
		return ErrMissingOutputPath
	}

	if filepath.Clean(out.Path) == filepath.Clean(in.Path) {
		return ErrOutputOverwritesRaw
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Cleaner.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Cleaner.Logging.Format != "text" && c.Cleaner.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	for i, step := range c.Insights.Funnel {
		if step.Column == "" {
			return fmt.Errorf("%w: step[%d]", ErrFunnelStepMissingCol, i)
		}
	}

	return nil
}

// ResolvedCategoriesPath returns where the category order file goes: the configured path, or
// categories.json next to the cleaned CSV.
func (o *OutputConfig) ResolvedCategoriesPath() string {
	if o.CategoriesPath != "" {
		return o.CategoriesPath
	}

	return filepath.Join(filepath.Dir(o.Path), "categories.json")
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, SQLite: %t, Report: %t}",
		c.Cleaner.Input.Path,
		c.Cleaner.Output.Path,
		c.Cleaner.Output.SQLitePath != "",
		c.Cleaner.Output.ReportPath != "",
	)
}
