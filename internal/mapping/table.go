// Package mapping holds the canonical mapping tables that translate raw survey answers
// into category labels, and the rules for applying them.
package mapping

import (
	"errors"
	"fmt"
	"sort"

	"jtsa/internal/dataset"
	"jtsa/internal/textnorm"
)

// Mapping errors.
var (
	ErrUnknownTable      = errors.New("unknown mapping table")
	ErrUnknownKeying     = errors.New("keying must be 'raw' or 'normalized'")
	ErrConflictingEntry  = errors.New("conflicting entries for the same key")
	ErrDuplicateTable    = errors.New("duplicate mapping table")
	ErrMissingTableEntry = errors.New("table has no entries")
)

// Keying selects how raw answers are turned into lookup keys.
type Keying string

// Keyings.
const (
	// KeyRaw looks answers up verbatim; used for closed questions whose options are clean tokens.
	KeyRaw Keying = "raw"
	// KeyNormalized looks answers up by textnorm.Key; used for free text and bilingual variants.
	KeyNormalized Keying = "normalized"
)

// Table maps raw answers to labels. An entry may map to null, which discards the answer.
type Table struct {
	name    string
	keying  Keying
	entries map[string]dataset.Cell
}

// NewTable builds a table. A nil target is an explicit discard. For normalized tables the
// keys are normalized here, so entries may be written in their display form.
func NewTable(name string, keying Keying, entries map[string]*string) (*Table, error) {
	if keying != KeyRaw && keying != KeyNormalized {
		return nil, fmt.Errorf("%w: table %s has %q", ErrUnknownKeying, name, keying)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingTableEntry, name)
	}

	t := &Table{
		name:    name,
		keying:  keying,
		entries: make(map[string]dataset.Cell, len(entries)),
	}

	// Sorted so conflict errors are deterministic.
	raw := make([]string, 0, len(entries))
	for k := range entries {
		raw = append(raw, k)
	}

	sort.Strings(raw)

	for _, k := range raw {
		target := dataset.Null
		if v := entries[k]; v != nil {
			target = dataset.String(*v)
		}

		key := t.Key(k)
		if prev, exists := t.entries[key]; exists && prev != target {
			return nil, fmt.Errorf("%w: table %s, key %q", ErrConflictingEntry, name, key)
		}

		t.entries[key] = target
	}

	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Keying returns how the table builds lookup keys.
func (t *Table) Keying() Keying {
	return t.keying
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	return len(t.entries)
}

// Key returns the lookup key for a raw answer.
func (t *Table) Key(raw string) string {
	if t.keying == KeyNormalized {
		return textnorm.Key(raw)
	}

	return raw
}

// Lookup returns the entry for a raw answer. ok is false when the table has no entry;
// a present entry may still be null (explicit discard).
func (t *Table) Lookup(raw string) (dataset.Cell, bool) {
	target, ok := t.entries[t.Key(raw)]

	return target, ok
}

// Labels returns the distinct non-null labels of the table, sorted.
func (t *Table) Labels() []string {
	seen := make(map[string]bool)

	var out []string

	for _, target := range t.entries {
		if target.IsNull() || seen[target.Value] {
			continue
		}

		seen[target.Value] = true
		out = append(out, target.Value)
	}

	sort.Strings(out)

	return out
}

// Resolve maps a raw cell through the table: the label when present, null for an explicit
// discard, and the raw cell unchanged when the table has no entry.
func Resolve(raw dataset.Cell, t *Table) dataset.Cell {
	if raw.IsNull() {
		return dataset.Null
	}

	target, ok := t.Lookup(raw.Value)
	if !ok {
		return raw
	}

	return target
}

// ResolveOrRaw is Resolve with a fallback to the original raw cell whenever the result
// would be null. It never returns the normalized key.
func ResolveOrRaw(raw dataset.Cell, t *Table) dataset.Cell {
	out := Resolve(raw, t)
	if out.IsNull() {
		return raw
	}

	return out
}

// Mapped reports whether the table has an entry for the raw cell.
func Mapped(raw dataset.Cell, t *Table) bool {
	if raw.IsNull() {
		return true
	}

	_, ok := t.Lookup(raw.Value)

	return ok
}
