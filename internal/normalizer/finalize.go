package normalizer

import (
	"fmt"

	"jtsa/internal/dataset"
)

// Finalize drops the raw multi-select columns once their ranked columns exist.
func Finalize(t *dataset.Table, plan Plan) error {
	for _, f := range plan.Families {
		for _, c := range f.Columns() {
			if !t.Has(c) {
				return fmt.Errorf("finalize: %w: ranked column %q", dataset.ErrUnknownColumn, c)
			}
		}
	}

	if err := t.DropColumns(plan.DroppedColumns()...); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}

	return nil
}
