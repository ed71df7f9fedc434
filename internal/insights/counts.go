package insights

import (
	"sort"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
	"jtsa/internal/models"
)

// Count is one value's frequency and its share of the non-null answers, in percent.
type Count struct {
	Value   string
	Count   int
	Percent float64
}

// ValueCounts counts the non-null values of a column. Ordinal fields follow the registry;
// nominal fields are sorted by count, most frequent first.
func ValueCounts(t *dataset.Table, column string, reg *categories.Registry) ([]Count, error) {
	cells, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	return countCells(column, cells, reg), nil
}

// RankedCounts counts the values of prefix_1..k together, as if they were one column.
func RankedCounts(t *dataset.Table, prefix string, k int, reg *categories.Registry) ([]Count, error) {
	var cells []dataset.Cell

	for _, col := range models.RankedColumns(prefix, k) {
		c, err := t.Column(col)
		if err != nil {
			return nil, err
		}

		cells = append(cells, c...)
	}

	return countCells(prefix, cells, reg), nil
}

func countCells(field string, cells []dataset.Cell, reg *categories.Registry) []Count {
	counts := make(map[string]int)
	total := 0

	for _, c := range cells {
		if c.IsNull() {
			continue
		}

		counts[c.Value]++
		total++
	}

	out := make([]Count, 0, len(counts))
	for v, n := range counts {
		out = append(out, Count{Value: v, Count: n, Percent: percent(n, total)})
	}

	if _, ordinal := reg.OrderFor(field); ordinal {
		values := make([]string, len(out))
		for i, c := range out {
			values[i] = c.Value
		}

		reg.Sort(field, values)

		rank := make(map[string]int, len(values))
		for i, v := range values {
			rank[v] = i
		}

		sort.Slice(out, func(i, j int) bool { return rank[out[i].Value] < rank[out[j].Value] })

		return out
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Value < out[j].Value
	})

	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(n) / float64(total) * 100
}
