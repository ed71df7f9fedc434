package insights

import (
	"sort"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
)

// CrossCell is the count of one target value within one group. Percent is the share of
// the group's rows.
type CrossCell struct {
	Group   string
	Value   string
	Count   int
	Percent float64
}

// CrossTab counts target values per group, skipping rows where either side is null.
// Groups follow the registry order of groupCol; values within a group are sorted by count.
func CrossTab(t *dataset.Table, groupCol, targetCol string, reg *categories.Registry) ([]CrossCell, error) {
	groups, err := t.Column(groupCol)
	if err != nil {
		return nil, err
	}

	targets, err := t.Column(targetCol)
	if err != nil {
		return nil, err
	}

	counts := make(map[[2]string]int)
	totals := make(map[string]int)

	for i := range groups {
		if groups[i].IsNull() || targets[i].IsNull() {
			continue
		}

		counts[[2]string{groups[i].Value, targets[i].Value}]++
		totals[groups[i].Value]++
	}

	groupOrder := make([]string, 0, len(totals))
	for g := range totals {
		groupOrder = append(groupOrder, g)
	}

	reg.Sort(groupCol, groupOrder)

	rank := make(map[string]int, len(groupOrder))
	for i, g := range groupOrder {
		rank[g] = i
	}

	out := make([]CrossCell, 0, len(counts))
	for k, n := range counts {
		out = append(out, CrossCell{Group: k[0], Value: k[1], Count: n, Percent: percent(n, totals[k[0]])})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return rank[out[i].Group] < rank[out[j].Group]
		}

		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Value < out[j].Value
	})

	return out, nil
}
