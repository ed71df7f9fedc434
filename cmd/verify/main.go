// Package main provides the verify command-line tool that checks cleaned outputs and signed reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
	"jtsa/internal/normalizer"
	"jtsa/internal/store"
	"jtsa/internal/validator"
)

func main() {
	input := flag.String("input", "", "Cleaned survey to check: .csv or SQLite .db")
	reports := flag.String("reports", "", "Comma-separated signed markdown reports to check")
	flag.Parse()

	if *input == "" && *reports == "" {
		fmt.Println("Usage: verify [-input df_clean.csv] [-reports audit.md,insights.md]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var paths []string
	if *reports != "" {
		paths = strings.Split(*reports, ",")
	}

	ok, err := verify(context.Background(), *input, paths, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if !ok {
		os.Exit(1)
	}
}

// verify prints one result per checked file and reports whether all of them passed.
func verify(ctx context.Context, input string, reports []string, w io.Writer) (bool, error) {
	ok := true

	if input != "" {
		t, err := loadTable(ctx, input)
		if err != nil {
			return false, err
		}

		v := validator.NewOutputValidator(normalizer.DefaultPlan().Families, categories.Default())
		ok = printResult(w, input, v.ValidateTable(t)) && ok
	}

	for _, path := range reports {
		path = strings.TrimSpace(path)

		content, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("read report: %w", err)
		}

		ok = printResult(w, path, validator.ValidateIntegrity(string(content))) && ok
	}

	return ok, nil
}

func printResult(w io.Writer, name string, res *validator.ValidationResult) bool {
	fmt.Fprintf(w, "🔍 %s\n%s\n", name, res)
	res.PrintErrors(w)
	res.PrintWarnings(w)

	return res.IsValid
}

func loadTable(ctx context.Context, path string) (*dataset.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		s, err := store.Open(path)
		if err != nil {
			return nil, err
		}
		defer s.Close()

		return s.ReadSurvey(ctx)
	default:
		return dataset.ReadFile(path, dataset.FormatCSV, "")
	}
}
