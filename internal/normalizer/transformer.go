package normalizer

import (
	"fmt"

	"jtsa/internal/dataset"
	"jtsa/internal/mapping"
	"jtsa/internal/multiselect"
)

// boundRule is a ColumnRule with its table looked up.
type boundRule struct {
	ColumnRule
	table *mapping.Table
}

// Transformer runs the cleaning steps of a plan against a validated table.
type Transformer struct {
	plan       Plan
	direct     []boundRule
	normalized []boundRule
	groups     []boundRule
}

// NewTransformer binds every rule of the plan to its table. A rule naming a table that
// the bundle lacks is an error.
func NewTransformer(tables *mapping.Tables, plan Plan) (*Transformer, error) {
	bind := func(rules []ColumnRule) ([]boundRule, error) {
		out := make([]boundRule, 0, len(rules))

		for _, r := range rules {
			tbl, err := tables.Get(r.Table)
			if err != nil {
				return nil, fmt.Errorf("bind rule for %v: %w", r.Columns, err)
			}

			out = append(out, boundRule{ColumnRule: r, table: tbl})
		}

		return out, nil
	}

	t := &Transformer{plan: plan}

	var err error
	if t.direct, err = bind(plan.Direct); err != nil {
		return nil, err
	}

	if t.normalized, err = bind(plan.Normalized); err != nil {
		return nil, err
	}

	if t.groups, err = bind(plan.Groups); err != nil {
		return nil, err
	}

	return t, nil
}

// Transform cleans t in place and records unmatched answers in audit.
func (t *Transformer) Transform(tbl *dataset.Table, audit *Audit) error {
	for _, f := range t.plan.Families {
		res, err := multiselect.Decompose(tbl, f.Source, f.Prefix, f.Width)
		if err != nil {
			return fmt.Errorf("decompose %s: %w", f.Source, err)
		}

		if res.Truncated > 0 {
			audit.Truncations = append(audit.Truncations, Truncation{
				Source:  f.Source,
				Rows:    res.Truncated,
				Dropped: res.Dropped,
			})
		}
	}

	if err := t.apply(tbl, t.direct, audit); err != nil {
		return err
	}

	if t.plan.AgeColumn != "" {
		err := tbl.MapColumn(t.plan.AgeColumn, func(c dataset.Cell) dataset.Cell {
			out := mapping.AgeBucket(c)
			if out.Valid && out.Value == mapping.AgeUnknown {
				audit.recordUnmapped(t.plan.AgeColumn, c.Value)
			}

			return out
		})
		if err != nil {
			return fmt.Errorf("bucket ages: %w", err)
		}
	}

	if err := t.apply(tbl, t.normalized, audit); err != nil {
		return err
	}

	return t.apply(tbl, t.groups, audit)
}

func (t *Transformer) apply(tbl *dataset.Table, rules []boundRule, audit *Audit) error {
	for _, r := range rules {
		resolve := mapping.ResolveOrRaw
		if r.Fallback == FallbackNull {
			resolve = mapping.Resolve
		}

		for _, col := range r.Columns {
			err := tbl.MapColumn(col, func(c dataset.Cell) dataset.Cell {
				if !mapping.Mapped(c, r.table) {
					audit.recordUnmapped(col, c.Value)
				}

				return resolve(c, r.table)
			})
			if err != nil {
				return fmt.Errorf("map %s through %s: %w", col, r.table.Name(), err)
			}
		}
	}

	return nil
}
