// Package insights computes the aggregate views the reporting layer shows over the cleaned
// survey table.
package insights

import (
	"errors"
	"fmt"
	"sort"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
)

// Insight errors.
var (
	ErrNoSteps       = errors.New("funnel needs at least one step")
	ErrInvalidWeight = errors.New("weights must match the ranked width")
)

// Filters selects rows by column value. A column with no selected values does not filter.
type Filters map[string][]string

// Apply returns the rows of t that match every non-empty selection.
func Apply(t *dataset.Table, f Filters) (*dataset.Table, error) {
	type selection struct {
		column string
		values map[string]bool
	}

	var active []selection

	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if len(f[name]) == 0 {
			continue
		}

		if !t.Has(name) {
			return nil, fmt.Errorf("filter: %w: %q", dataset.ErrUnknownColumn, name)
		}

		s := selection{column: name, values: make(map[string]bool, len(f[name]))}
		for _, v := range f[name] {
			s.values[v] = true
		}

		active = append(active, s)
	}

	return t.Filter(func(i int) bool {
		for _, s := range active {
			c := t.Get(i, s.column)
			if c.IsNull() || !s.values[c.Value] {
				return false
			}
		}

		return true
	}), nil
}

// Options lists the distinct non-null values of a column, in registry order for ordinal
// fields and alphabetically otherwise.
func Options(t *dataset.Table, column string, reg *categories.Registry) ([]string, error) {
	cells, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)

	var out []string

	for _, c := range cells {
		if c.IsNull() || seen[c.Value] {
			continue
		}

		seen[c.Value] = true
		out = append(out, c.Value)
	}

	reg.Sort(column, out)

	return out, nil
}
