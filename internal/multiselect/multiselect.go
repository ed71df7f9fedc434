// Package multiselect turns free-text multi-answer cells into fixed-width ranked columns.
package multiselect

import (
	"errors"
	"fmt"
	"strings"

	"jtsa/internal/dataset"
	"jtsa/internal/models"
)

// ErrInvalidWidth is returned when a ranked family is configured with k < 1.
var ErrInvalidWidth = errors.New("ranked width must be at least 1")

// Split returns the comma separated choices of a cell, in the order given.
// Commas inside parentheses do not split, so "Shikoku (Matsuyama, Iya Valley)" stays one choice.
// Unbalanced parentheses are treated best effort: a stray ')' is ordinary text and an
// unclosed '(' keeps the rest of the cell in the current choice.
func Split(c dataset.Cell) []string {
	if c.IsNull() || strings.TrimSpace(c.Value) == "" {
		return nil
	}

	var (
		parts []string
		depth int
		start int
	)

	s := c.Value
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = appendToken(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return appendToken(parts, s[start:])
}

func appendToken(parts []string, token string) []string {
	token = strings.TrimSpace(token)
	if token == "" {
		return parts
	}

	return append(parts, token)
}

// Widen lays choices out over k ranked slots. Slots past the last choice are null and
// choices past k are dropped; dropped reports how many were cut.
func Widen(choices []string, k int) (slots []dataset.Cell, dropped int) {
	slots = make([]dataset.Cell, k)

	for i, choice := range choices {
		if i >= k {
			return slots, len(choices) - k
		}

		slots[i] = dataset.String(choice)
	}

	return slots, 0
}

// Result summarizes one decomposition.
type Result struct {
	Columns []string
	// Truncated counts respondents who gave more than k choices.
	Truncated int
	// Dropped counts the choices discarded across all respondents.
	Dropped int
}

// Decompose splits the source column of every row and appends prefix_1..k to the table.
// The source column is left in place.
func Decompose(t *dataset.Table, source, prefix string, k int) (Result, error) {
	if k < 1 {
		return Result{}, fmt.Errorf("%w: %s has width %d", ErrInvalidWidth, prefix, k)
	}

	cells, err := t.Column(source)
	if err != nil {
		return Result{}, err
	}

	res := Result{Columns: models.RankedColumns(prefix, k)}
	ranked := make([][]dataset.Cell, k)

	for i := range ranked {
		ranked[i] = make([]dataset.Cell, len(cells))
	}

	for row, cell := range cells {
		slots, dropped := Widen(Split(cell), k)
		if dropped > 0 {
			res.Truncated++
			res.Dropped += dropped
		}

		for rank, slot := range slots {
			ranked[rank][row] = slot
		}
	}

	for rank, name := range res.Columns {
		if err := t.AddColumn(name, ranked[rank]); err != nil {
			return Result{}, fmt.Errorf("add ranked column: %w", err)
		}
	}

	return res, nil
}
