// Package main provides the insights command-line tool that reports on a cleaned survey.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"jtsa/internal/categories"
	"jtsa/internal/config"
	"jtsa/internal/dataset"
	"jtsa/internal/insights"
	"jtsa/internal/logger"
	"jtsa/internal/store"
	"jtsa/pkg/metadata"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	input := flag.String("input", "", "Cleaned survey: .csv or SQLite .db (overrides insights.input)")
	categoriesPath := flag.String("categories", "", "Category order JSON (default: categories.json next to a CSV input)")
	output := flag.String("output", "", "Write the report here instead of stdout")
	groupBy := flag.String("group-by", "", "Column to group interest scores and the crosstab by")
	crossWith := flag.String("cross-with", "", "Column crossed with -group-by")
	segmentBy := flag.String("segment-by", "", "Column to segment the funnel by")
	funnel := flag.String("funnel", "", "Funnel steps, e.g. been_to_Japan=No,travel_frequency")
	verbose := flag.Bool("v", false, "Log at debug level")
	filters := filterFlag{}
	flag.Var(filters, "filter", "Keep rows where column=value|value (repeatable)")
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

	ins := &cfg.Insights
	for field, value := range map[*string]string{
		&ins.Input:     *input,
		&ins.Output:    *output,
		&ins.GroupBy:   *groupBy,
		&ins.CrossWith: *crossWith,
		&ins.SegmentBy: *segmentBy,
	} {
		if value != "" {
			*field = value
		}
	}

	if len(filters) > 0 {
		ins.Filters = filters
	}

	steps, err := parseFunnel(*funnel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if steps != nil {
		ins.Funnel = steps
	}

	log := logger.New(logger.Options{
		Level:  cfg.Cleaner.Logging.Level,
		Format: cfg.Cleaner.Logging.Format,
	})
	if *verbose {
		log.SetLevel("debug")
	}

	if err := run(context.Background(), cfg, *categoriesPath, os.Stdout, log); err != nil {
		log.Error("❌ insights failed", "error", err)
		os.Exit(1)
	}
}

// run loads the cleaned survey and writes the signed report to ins.Output, or to stdout.
func run(ctx context.Context, cfg *config.Config, categoriesPath string, stdout io.Writer, log *logger.Logger) error {
	ins := cfg.Insights

	t, reg, err := load(ctx, ins.Input, categoriesPath)
	if err != nil {
		return err
	}

	log.Info("📂 survey loaded", "path", ins.Input, "rows", t.Len())
	log.Debug("report options", "filters", len(ins.Filters), "funnel_steps", len(ins.Funnel), "group_by", ins.GroupBy)

	opts := insights.ReportOptions{
		Filters:    insights.Filters(ins.Filters),
		GroupBy:    ins.GroupBy,
		CrossWith:  ins.CrossWith,
		SegmentBy:  ins.SegmentBy,
		TextColumn: ins.TextColumn,
	}
	for _, s := range ins.Funnel {
		opts.Funnel = append(opts.Funnel, insights.Step{Column: s.Column, Value: s.Value})
	}

	report, err := insights.BuildReport(t, reg, opts)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	signed := report.Signed(metadata.Metadata{
		GeneratedAt: time.Now().UTC(),
		RunID:       uuid.NewString(),
		Source:      filepath.Base(ins.Input),
		Rows:        t.Len(),
	})

	if ins.Output == "" {
		_, err := io.WriteString(stdout, signed)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(ins.Output), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	if err := os.WriteFile(ins.Output, []byte(signed), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	log.Info("✅ report saved", "path", ins.Output)

	return nil
}

// load reads a cleaned CSV with its category file, or a SQLite export holding both.
func load(ctx context.Context, path, categoriesPath string) (*dataset.Table, *categories.Registry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		s, err := store.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer s.Close()

		t, err := s.ReadSurvey(ctx)
		if err != nil {
			return nil, nil, err
		}

		reg, err := s.ReadCategories(ctx)
		if errors.Is(err, store.ErrNoCategories) {
			return t, categories.Default(), nil
		}

		return t, reg, err
	}

	t, err := dataset.ReadFile(path, dataset.FormatCSV, "")
	if err != nil {
		return nil, nil, err
	}

	explicit := categoriesPath != ""
	if !explicit {
		categoriesPath = filepath.Join(filepath.Dir(path), "categories.json")
	}

	f, err := os.Open(categoriesPath)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return t, categories.Default(), nil
	}

	if err != nil {
		return nil, nil, fmt.Errorf("open category orders: %w", err)
	}
	defer f.Close()

	reg, err := categories.ReadJSON(f)
	if err != nil {
		return nil, nil, err
	}

	return t, reg, nil
}
