// Package dataset holds the in-memory survey table shared by every pipeline stage.
package dataset

import (
	"errors"
	"fmt"
)

// Table errors.
var (
	ErrEmptyHeader     = errors.New("table has no header row")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrRowWidth        = errors.New("row width does not match header")
)

// Cell is a nullable string value. The zero value is null.
type Cell struct {
	Value string
	Valid bool
}

// Null is the absent value.
var Null = Cell{}

// String returns a non-null cell holding s.
func String(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool {
	return !c.Valid
}

// String returns the value, or "" for null.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}

	return c.Value
}

// Table is an ordered set of named columns over respondent rows.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// New creates an empty table with the given header.
func New(columns []string) (*Table, error) {
	if len(columns) == 0 {
		return nil, ErrEmptyHeader
	}

	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for _, name := range columns {
		if _, exists := t.index[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}

		t.index[name] = len(t.columns)
		t.columns = append(t.columns, name)
	}

	return t, nil
}

// MustNew is New for static headers; it panics on error.
func MustNew(columns ...string) *Table {
	t, err := New(columns)
	if err != nil {
		panic(err)
	}

	return t
}

// Columns returns a copy of the header in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)

	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Has reports whether the column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]

	return ok
}

// AppendRow adds a row. The row must have one cell per column.
func (t *Table) AppendRow(cells []Cell) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrRowWidth, len(cells), len(t.columns))
	}

	row := make([]Cell, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)

	return nil
}

// AppendStrings adds a row of non-null values; empty strings become null.
func (t *Table) AppendStrings(values ...string) error {
	cells := make([]Cell, len(values))
	for i, v := range values {
		if v != "" {
			cells[i] = String(v)
		}
	}

	return t.AppendRow(cells)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Cell {
	out := make([]Cell, len(t.columns))
	copy(out, t.rows[i])

	return out
}

// Get returns the cell at row i in the named column, or null when the column is unknown.
func (t *Table) Get(i int, name string) Cell {
	idx, ok := t.index[name]
	if !ok {
		return Null
	}

	return t.rows[i][idx]
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]Cell, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}

	out := make([]Cell, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}

	return out, nil
}

// SetColumn replaces the named column's cells.
func (t *Table) SetColumn(name string, cells []Cell) error {
	idx, ok := t.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}

	if len(cells) != len(t.rows) {
		return fmt.Errorf("%w: column %q has %d cells for %d rows", ErrRowWidth, name, len(cells), len(t.rows))
	}

	for i := range t.rows {
		t.rows[i][idx] = cells[i]
	}

	return nil
}

// MapColumn applies fn to every cell of the named column.
func (t *Table) MapColumn(name string, fn func(Cell) Cell) error {
	idx, ok := t.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}

	for i := range t.rows {
		t.rows[i][idx] = fn(t.rows[i][idx])
	}

	return nil
}

// AddColumn appends a new column at the end of the header.
func (t *Table) AddColumn(name string, cells []Cell) error {
	if _, exists := t.index[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}

	if len(cells) != len(t.rows) {
		return fmt.Errorf("%w: column %q has %d cells for %d rows", ErrRowWidth, name, len(cells), len(t.rows))
	}

	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)

	for i := range t.rows {
		t.rows[i] = append(t.rows[i], cells[i])
	}

	return nil
}

// DropColumns removes the named columns. Unknown names are an error and leave the table untouched.
func (t *Table) DropColumns(names ...string) error {
	drop := make(map[int]bool, len(names))

	for _, name := range names {
		idx, ok := t.index[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}

		drop[idx] = true
	}

	keep := make([]int, 0, len(t.columns)-len(drop))
	for i := range t.columns {
		if !drop[i] {
			keep = append(keep, i)
		}
	}

	columns := make([]string, len(keep))
	index := make(map[string]int, len(keep))

	for j, i := range keep {
		columns[j] = t.columns[i]
		index[t.columns[i]] = j
	}

	for r, row := range t.rows {
		next := make([]Cell, len(keep))
		for j, i := range keep {
			next[j] = row[i]
		}

		t.rows[r] = next
	}

	t.columns = columns
	t.index = index

	return nil
}

// RenameColumns renames columns in place. Names absent from the table are ignored.
func (t *Table) RenameColumns(renames map[string]string) error {
	columns := make([]string, len(t.columns))
	copy(columns, t.columns)

	for i, name := range columns {
		if to, ok := renames[name]; ok {
			columns[i] = to
		}
	}

	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, exists := index[name]; exists {
			return fmt.Errorf("%w: %q after rename", ErrDuplicateColumn, name)
		}

		index[name] = i
	}

	t.columns = columns
	t.index = index

	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
		rows:    make([][]Cell, len(t.rows)),
	}

	for name, idx := range t.index {
		out.index[name] = idx
	}

	for i, row := range t.rows {
		out.rows[i] = make([]Cell, len(row))
		copy(out.rows[i], row)
	}

	return out
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := &Table{
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
	}

	for name, idx := range t.index {
		out.index[name] = idx
	}

	for i, row := range t.rows {
		if !keep(i) {
			continue
		}

		cp := make([]Cell, len(row))
		copy(cp, row)
		out.rows = append(out.rows, cp)
	}

	return out
}
