// Package categories holds the canonical label order of ordinal survey fields.
package categories

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"jtsa/internal/mapping"
	"jtsa/internal/models"
)

// Registry errors.
var (
	ErrDuplicateField = errors.New("field already has an order")
	ErrDuplicateLabel = errors.New("label listed twice in order")
	ErrEmptyOrder     = errors.New("order has no labels")
)

// Registry maps field names to their ordered labels. Fields without an entry are nominal.
// A nil Registry treats every field as nominal.
type Registry struct {
	orders map[string][]string
	fields []string
}

// Order is one field's label sequence.
type Order struct {
	Field  string   `json:"field"`
	Labels []string `json:"labels"`
}

// New builds a registry from orders. Field order is kept for JSON export.
func New(orders ...Order) (*Registry, error) {
	r := &Registry{orders: make(map[string][]string, len(orders))}

	for _, o := range orders {
		if _, exists := r.orders[o.Field]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, o.Field)
		}

		if len(o.Labels) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyOrder, o.Field)
		}

		seen := make(map[string]bool, len(o.Labels))
		for _, l := range o.Labels {
			if seen[l] {
				return nil, fmt.Errorf("%w: %s %q", ErrDuplicateLabel, o.Field, l)
			}

			seen[l] = true
		}

		r.orders[o.Field] = append([]string(nil), o.Labels...)
		r.fields = append(r.fields, o.Field)
	}

	return r, nil
}

var budgetBands = []string{"Less than 500", "500-1000", "1000-1500", "1500-2500", "More than 2500"}

// Default returns the orders of the cleaned survey table.
func Default() *Registry {
	r, err := New(
		Order{Field: models.ColumnAgeGroup, Labels: mapping.AgeBands},
		Order{Field: models.ColumnHouseholdIncome, Labels: []string{
			"1500 and less", "1500-1999", "2000-2499", "2500-2999", "3000-3999",
			"4000–4999", "5000–5999", "6000–6999", "7000 and more", "Unknown",
		}},
		Order{Field: models.ColumnTravelFrequency, Labels: []string{
			"Several times a year", "Once a year", "Every 2–3 years", "Once every 5 years or more", "Never",
		}},
		Order{Field: models.ColumnJapanVacDuration, Labels: []string{
			"1 week", "2 weeks", "3 weeks", "4 weeks", "More than 4 weeks", "I don’t know yet / Not sure",
		}},
		Order{Field: models.ColumnJapanBudget, Labels: append(append([]string(nil), budgetBands...), "Unknown")},
		Order{Field: models.ColumnAltDestBudget, Labels: budgetBands},
		Order{Field: models.ColumnBeenToJapan, Labels: []string{
			"No, and I’m not interested", "No, but I would like to go", "Yes, once", "Yes, several times",
		}},
	)
	if err != nil {
		panic(err)
	}

	return r
}

// OrderFor returns a copy of the field's labels, or false when the field is nominal.
func (r *Registry) OrderFor(field string) ([]string, bool) {
	if r == nil {
		return nil, false
	}

	labels, ok := r.orders[field]
	if !ok {
		return nil, false
	}

	return append([]string(nil), labels...), true
}

// Fields returns the ordinal fields in registration order.
func (r *Registry) Fields() []string {
	if r == nil {
		return nil
	}

	return append([]string(nil), r.fields...)
}

// Position returns the label's rank within the field's order.
func (r *Registry) Position(field, label string) (int, bool) {
	if r == nil {
		return 0, false
	}

	for i, l := range r.orders[field] {
		if l == label {
			return i, true
		}
	}

	return 0, false
}

// Sort orders values in place: known labels by registry position, then unknown labels
// alphabetically. Nominal fields sort alphabetically.
func (r *Registry) Sort(field string, values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		pi, oki := r.Position(field, values[i])
		pj, okj := r.Position(field, values[j])

		switch {
		case oki && okj:
			return pi < pj
		case oki != okj:
			return oki
		default:
			return values[i] < values[j]
		}
	})
}

// WriteJSON writes the registry as an array of orders.
func (r *Registry) WriteJSON(w io.Writer) error {
	out := make([]Order, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, Order{Field: f, Labels: r.orders[f]})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode category orders: %w", err)
	}

	return nil
}

// ReadJSON loads a registry written by WriteJSON.
func ReadJSON(rd io.Reader) (*Registry, error) {
	var orders []Order
	if err := json.NewDecoder(rd).Decode(&orders); err != nil {
		return nil, fmt.Errorf("failed to decode category orders: %w", err)
	}

	return New(orders...)
}
