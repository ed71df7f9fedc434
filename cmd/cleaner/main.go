// Package main provides the survey cleaner command-line tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"jtsa/internal/categories"
	"jtsa/internal/config"
	"jtsa/internal/dataset"
	"jtsa/internal/logger"
	"jtsa/internal/mapping"
	"jtsa/internal/normalizer"
	"jtsa/internal/store"
	"jtsa/internal/validator"
	"jtsa/pkg/metadata"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	input := flag.String("input", "", "Raw survey export (overrides cleaner.input.path)")
	format := flag.String("format", "", "Input format: csv or xlsx (default: from extension)")
	sheet := flag.String("sheet", "", "XLSX sheet name (default: first sheet)")
	output := flag.String("output", "", "Cleaned CSV path (overrides cleaner.output.path)")
	sqlitePath := flag.String("sqlite", "", "Also export to this SQLite database")
	reportPath := flag.String("report", "", "Write the cleaning audit to this markdown file")
	level := flag.String("log-level", "", "Log level: debug, info, warn, error")
	writeConfig := flag.String("write-config", "", "Save the effective configuration to this file and exit")
	flag.Parse()

	cfg := config.Default()

	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	overrides := map[*string]string{
		&cfg.Cleaner.Input.Path:        *input,
		&cfg.Cleaner.Input.Format:      *format,
		&cfg.Cleaner.Input.Sheet:       *sheet,
		&cfg.Cleaner.Output.Path:       *output,
		&cfg.Cleaner.Output.SQLitePath: *sqlitePath,
		&cfg.Cleaner.Output.ReportPath: *reportPath,
		&cfg.Cleaner.Logging.Level:     *level,
	}
	for field, value := range overrides {
		if value != "" {
			*field = value
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ invalid configuration: %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := cfg.SaveConfig(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Configuration saved to: %s\n", *writeConfig)

		return
	}

	runID := uuid.NewString()
	log := logger.New(logger.Options{
		Level:  cfg.Cleaner.Logging.Level,
		Format: cfg.Cleaner.Logging.Format,
	}).With("run", runID)

	if err := run(context.Background(), cfg, runID, log); err != nil {
		log.Error("❌ cleaning failed", "error", err)
		os.Exit(1)
	}
}

// run executes one cleaning pass. Nothing is written unless processing succeeds.
func run(ctx context.Context, cfg *config.Config, runID string, log *logger.Logger) error {
	start := time.Now()
	in := cfg.Cleaner.Input
	out := cfg.Cleaner.Output

	log.Info("📂 reading raw export", "path", in.Path)

	raw, err := dataset.ReadFile(in.Path, strings.ToLower(in.Format), in.Sheet)
	if err != nil {
		return fmt.Errorf("read raw export: %w", err)
	}

	tables, err := mapping.DefaultTables()
	if err != nil {
		return fmt.Errorf("load mapping tables: %w", err)
	}

	for _, name := range tables.Names() {
		if tbl, err := tables.Get(name); err == nil {
			log.Debug("mapping table loaded", "table", name, "entries", tbl.Len(), "labels", len(tbl.Labels()))
		}
	}

	processor, err := normalizer.NewProcessor(tables, normalizer.WithLogger(log))
	if err != nil {
		return err
	}

	clean, audit, err := processor.Process(raw)
	if err != nil {
		return fmt.Errorf("process %s: %w", filepath.Base(in.Path), err)
	}

	reg := categories.Default()

	check := validator.NewOutputValidator(normalizer.DefaultPlan().Families, reg).ValidateTable(clean)
	for _, w := range check.Warnings {
		log.Warn("⚠️  " + w)
	}

	if err := check.Err(); err != nil {
		return err
	}

	if err := ensureDir(out.Path); err != nil {
		return err
	}

	if err := dataset.WriteCSVFile(out.Path, clean, dataset.WriteOptions{BOM: out.BOM}); err != nil {
		return fmt.Errorf("write cleaned csv: %w", err)
	}

	log.Info("✅ cleaned survey saved", "path", out.Path, "rows", clean.Len(), "columns", len(clean.Columns()))

	categoriesPath := out.ResolvedCategoriesPath()
	if err := writeCategories(categoriesPath, reg); err != nil {
		return err
	}

	log.Info("✅ category orders saved", "path", categoriesPath, "fields", len(reg.Fields()))

	if out.SQLitePath != "" {
		if err := store.Export(ctx, out.SQLitePath, clean, reg); err != nil {
			return fmt.Errorf("sqlite export: %w", err)
		}

		log.Info("✅ sqlite export saved", "path", out.SQLitePath)
	}

	if out.ReportPath != "" {
		meta := metadata.Metadata{
			GeneratedAt: time.Now().UTC(),
			RunID:       runID,
			Source:      filepath.Base(in.Path),
			Rows:        clean.Len(),
		}

		if err := ensureDir(out.ReportPath); err != nil {
			return err
		}

		if err := os.WriteFile(out.ReportPath, []byte(audit.Report(meta)), 0o644); err != nil {
			return fmt.Errorf("write audit report: %w", err)
		}

		log.Info("✅ audit report saved", "path", out.ReportPath)
	}

	log.Info("🎉 done", "duration", time.Since(start).Round(time.Millisecond))

	return nil
}

func writeCategories(path string, reg *categories.Registry) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create category orders: %w", err)
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := reg.WriteJSON(f); err != nil {
		return fmt.Errorf("write category orders: %w", err)
	}

	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	return nil
}
