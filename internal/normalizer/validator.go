package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"jtsa/internal/dataset"
	"jtsa/internal/models"
)

// Validation errors.
var (
	ErrNilTable              = errors.New("input table is nil")
	ErrMissingRequiredColumn = errors.New("missing required column")
	ErrRankedColumnPresent   = errors.New("input already holds ranked columns")
)

// MissingRequiredColumnError names every required column absent from the input.
type MissingRequiredColumnError struct {
	Columns []string
}

func (e *MissingRequiredColumnError) Error() string {
	return ErrMissingRequiredColumn.Error() + "s: " + strings.Join(e.Columns, ", ")
}

// Unwrap lets errors.Is match ErrMissingRequiredColumn.
func (e *MissingRequiredColumnError) Unwrap() error {
	return ErrMissingRequiredColumn
}

// Validator checks the structure of a renamed snapshot before any cleaning happens.
type Validator struct {
	required []string
	ranked   []string
}

// NewValidator creates a validator for the given required columns and the ranked columns
// the run will create.
func NewValidator(required []string, families []models.MultiSelectFamily) *Validator {
	v := &Validator{required: required}
	for _, f := range families {
		v.ranked = append(v.ranked, f.Columns()...)
	}

	return v
}

// Validate checks if the table can be cleaned.
func (v *Validator) Validate(t *dataset.Table) error {
	if t == nil {
		return ErrNilTable
	}

	var missing []string

	for _, c := range v.required {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}

	if len(missing) > 0 {
		return &MissingRequiredColumnError{Columns: missing}
	}

	for _, c := range v.ranked {
		if t.Has(c) {
			return fmt.Errorf("%w: %q", ErrRankedColumnPresent, c)
		}
	}

	return nil
}
