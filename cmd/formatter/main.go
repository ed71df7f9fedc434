// Package main provides the markdown formatter command-line tool for generated reports.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"jtsa/internal/formatter"
	"jtsa/internal/validator"
	"jtsa/pkg/metadata"
)

type summary struct {
	scanned int
	changed int
	errors  int
}

func main() {
	targetPath := flag.String("path", "data_processed", "Path to report file or directory to format")
	write := flag.Bool("write", false, "Write changes to file (default: false, dry-run)")
	force := flag.Bool("force", false, "Re-sign reports whose content no longer matches their signature")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	fmt.Printf("📂 Scanning path: %s\n", *targetPath)

	if *write {
		fmt.Println("✍️  Write mode ENABLED (files will be modified)")
	} else {
		fmt.Println("👀 Dry-run mode (no changes will be written)")
	}

	fmt.Println()

	s, err := walk(*targetPath, *write, *force)
	if err != nil {
		log.Fatalf("❌ Error walking path: %v\n", err)
	}

	fmt.Println("\n----------------------------------------------------------------")
	fmt.Printf("📈 Summary:\n")
	fmt.Printf("  Scanned: %d files\n", s.scanned)
	fmt.Printf("  Changed: %d files\n", s.changed)
	fmt.Printf("  Errors:  %d\n", s.errors)

	if s.errors > 0 || (s.changed > 0 && !*write) {
		if !*write {
			fmt.Println("\n💡 Run with -write to apply changes.")
		}

		os.Exit(1)
	}
}

func walk(root string, write, force bool) (summary, error) {
	var s summary

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			fmt.Printf("❌ Error accessing path %s: %v\n", path, err)

			s.errors++

			return nil
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.ToLower(filepath.Ext(path)) != ".md" {
			return nil
		}

		s.scanned++

		wasChanged, procErr := processFile(path, write, force)

		switch {
		case procErr != nil:
			fmt.Printf("❌ Failed to process %s: %v\n", path, procErr)

			s.errors++
		case wasChanged && write:
			s.changed++

			fmt.Printf("✅ Formatted & Signed: %s\n", path)
		case wasChanged:
			s.changed++

			fmt.Printf("📝 Would format & sign: %s\n", path)
		}

		return nil
	})

	return s, err
}

// processFile aligns the tables of a signed report and re-signs it. Files without a
// metadata block are not reports and are left alone.
func processFile(path string, write, force bool) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	original := string(content)

	if meta, _ := metadata.Extract(original); meta == nil {
		return false, nil
	}

	if res := validator.ValidateIntegrity(original); !res.IsValid && !force {
		return false, res.Err()
	}

	formatted, err := formatter.FormatMarkdown(original)
	if err != nil {
		return false, err
	}

	if formatted == original {
		return false, nil
	}

	if write {
		if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
			return false, err
		}
	}

	return true, nil
}

func printUsage() {
	fmt.Println("Usage: ./bin/formatter [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/formatter -path data_processed")
	fmt.Println("  ./bin/formatter -path data_processed/audit.md -write")
}
