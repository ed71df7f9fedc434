// Package validator checks cleaned survey tables and signed reports.
package validator

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
	"jtsa/internal/models"
	"jtsa/pkg/metadata"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Column  string
	Value   string
	Message string
	Row     int
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalRows        int
	CheckedColumns   int
	UnknownLabels    int
	OutOfRangeScores int
}

// OutputValidator checks the shape and label sets of a cleaned table.
type OutputValidator struct {
	families []models.MultiSelectFamily
	ratings  []string
	reg      *categories.Registry
}

// NewOutputValidator creates a validator for tables produced with the given families. A nil
// registry skips the label checks.
func NewOutputValidator(families []models.MultiSelectFamily, reg *categories.Registry) *OutputValidator {
	return &OutputValidator{
		families: families,
		ratings:  models.RatingColumns,
		reg:      reg,
	}
}

// ValidateTable reports structural problems as errors and unexpected labels as warnings.
// Unexpected labels are typically free-text answers kept as typed.
func (v *OutputValidator) ValidateTable(t *dataset.Table) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
		Stats:    ValidationStats{TotalRows: t.Len()},
	}

	for _, f := range v.families {
		v.checkFamily(t, f, result)
	}

	for _, col := range v.ratings {
		if !t.Has(col) {
			continue
		}

		result.Stats.CheckedColumns++
		bad := 0

		for i := 0; i < t.Len(); i++ {
			c := t.Get(i, col)
			if c.IsNull() {
				continue
			}

			if n, err := strconv.Atoi(c.String()); err != nil || n < 1 || n > 5 {
				bad++
			}
		}

		if bad > 0 {
			result.Stats.OutOfRangeScores += bad
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %d answers are not a 1-5 score", col, bad))
		}
	}

	for _, field := range v.reg.Fields() {
		if !t.Has(field) {
			continue
		}

		result.Stats.CheckedColumns++
		unknown := map[string]bool{}

		for i := 0; i < t.Len(); i++ {
			c := t.Get(i, field)
			if c.IsNull() {
				continue
			}

			if _, ok := v.reg.Position(field, c.String()); !ok {
				unknown[c.String()] = true
			}
		}

		if len(unknown) > 0 {
			labels := make([]string, 0, len(unknown))
			for l := range unknown {
				labels = append(labels, l)
			}

			slices.Sort(labels)
			result.Stats.UnknownLabels += len(labels)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: labels outside the category order: %q", field, labels))
		}
	}

	return result
}

func (v *OutputValidator) checkFamily(t *dataset.Table, f models.MultiSelectFamily, result *ValidationResult) {
	if t.Has(f.Source) {
		result.addError(ValidationError{Column: f.Source, Message: "multi-select source column was not dropped"})
	}

	cols := f.Columns()
	for _, col := range cols {
		if !t.Has(col) {
			result.addError(ValidationError{Column: col, Message: "ranked column is missing"})
			return
		}
	}

	// A null slot between choices is a discarded answer that keeps its rank.
	result.Stats.CheckedColumns += len(cols)
}

func (r *ValidationResult) addError(e ValidationError) {
	r.IsValid = false
	r.Errors = append(r.Errors, e)
}

// ValidateIntegrity checks the integrity of a report using its metadata block.
func ValidateIntegrity(content string) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	valid, err := metadata.Verify(content)
	if !valid {
		result.addError(ValidationError{
			Message: fmt.Sprintf("integrity check failed: %v", err),
		})
	}

	return result
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf(
		"%s | Rows: %d | Columns checked: %d | Errors: %d | Warnings: %d",
		status,
		r.Stats.TotalRows,
		r.Stats.CheckedColumns,
		len(r.Errors),
		len(r.Warnings),
	)
}

// Err returns nil for a valid result, or an error summarizing the first problem.
func (r *ValidationResult) Err() error {
	if r.IsValid || len(r.Errors) == 0 {
		return nil
	}

	first := r.Errors[0]

	return fmt.Errorf("%w: %s (%d problems)", ErrInvalidOutput, first, len(r.Errors))
}

// String renders one error with its location.
func (e ValidationError) String() string {
	switch {
	case e.Row > 0:
		return fmt.Sprintf("row %d [%s]: %s (found %q)", e.Row, e.Column, e.Message, e.Value)
	case e.Column != "":
		return fmt.Sprintf("[%s]: %s", e.Column, e.Message)
	default:
		return e.Message
	}
}

// PrintErrors prints validation errors in readable format.
func (r *ValidationResult) PrintErrors(w io.Writer) {
	if len(r.Errors) == 0 {
		return
	}

	fmt.Fprintln(w, "❌ Validation Errors:")

	for _, err := range r.Errors {
		fmt.Fprintf(w, "  %s\n", err)
	}
}

// PrintWarnings prints validation warnings.
func (r *ValidationResult) PrintWarnings(w io.Writer) {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Fprintln(w, "⚠️  Validation Warnings:")

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  %s\n", warn)
	}
}
