package normalizer

import (
	"sort"
)

// UnmappedValue is a raw answer that no table entry matched.
type UnmappedValue struct {
	Column string
	Value  string
	Count  int
}

// Truncation records the choices cut from one multi-select family.
type Truncation struct {
	Source  string
	Rows    int
	Dropped int
}

// Audit collects what a run kept as typed or cut, so unseen answers stay visible.
type Audit struct {
	unmapped    map[[2]string]int
	Truncations []Truncation
	Rows        int
}

func newAudit(rows int) *Audit {
	return &Audit{unmapped: make(map[[2]string]int), Rows: rows}
}

func (a *Audit) recordUnmapped(column, value string) {
	a.unmapped[[2]string{column, value}]++
}

// Unmapped returns the unmatched answers by column, most frequent first.
func (a *Audit) Unmapped() []UnmappedValue {
	out := make([]UnmappedValue, 0, len(a.unmapped))
	for k, n := range a.unmapped {
		out = append(out, UnmappedValue{Column: k[0], Value: k[1], Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}

		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Value < out[j].Value
	})

	return out
}

// UnmappedTotal counts unmatched cells across all columns.
func (a *Audit) UnmappedTotal() int {
	total := 0
	for _, n := range a.unmapped {
		total += n
	}

	return total
}

// Dropped counts choices cut by truncation across all families.
func (a *Audit) Dropped() int {
	total := 0
	for _, tr := range a.Truncations {
		total += tr.Dropped
	}

	return total
}
