package insights

import (
	"fmt"
	"sort"
	"strconv"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
	"jtsa/internal/models"
)

// Score is a label's weighted total across ranked columns.
type Score struct {
	Label string
	Score float64
}

// DefaultWeights gives the first of k choices k points and the last one 1 point.
func DefaultWeights(k int) []float64 {
	out := make([]float64, k)
	for i := range out {
		out[i] = float64(k - i)
	}

	return out
}

// RankedScores sums weights[i] for every label found in prefix_<i+1>. nil weights means
// DefaultWeights. Labels are sorted by score, highest first.
func RankedScores(t *dataset.Table, prefix string, k int, weights []float64) ([]Score, error) {
	if weights == nil {
		weights = DefaultWeights(k)
	}

	if len(weights) != k {
		return nil, fmt.Errorf("%w: %d weights for %d columns", ErrInvalidWeight, len(weights), k)
	}

	totals := make(map[string]float64)

	for i, col := range models.RankedColumns(prefix, k) {
		cells, err := t.Column(col)
		if err != nil {
			return nil, err
		}

		for _, c := range cells {
			if !c.IsNull() {
				totals[c.Value] += weights[i]
			}
		}
	}

	out := make([]Score, 0, len(totals))
	for label, s := range totals {
		out = append(out, Score{Label: label, Score: s})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Label < out[j].Label
	})

	return out, nil
}

// Interest dimensions.
const (
	DimensionOverall            = "overall"
	DimensionCultureFood        = "culture_food"
	DimensionNatureWellness     = "nature_wellness"
	DimensionUrbanEntertainment = "urban_entertainment"
)

// Dimensions groups the rating columns into interest scores, in report order.
var Dimensions = []struct {
	Name    string
	Columns []string
}{
	{DimensionOverall, models.RatingColumns},
	{DimensionCultureFood, []string{models.ColumnRatingCultureHistory, models.ColumnRatingFood}},
	{DimensionNatureWellness, []string{models.ColumnRatingNatureHiking, models.ColumnRatingWellness}},
	{DimensionUrbanEntertainment, []string{
		models.ColumnRatingShoppingTechno, models.ColumnRatingEventsFestivals, models.ColumnRatingThemePark,
	}},
}

// DimensionScore is the mean of the per-respondent scores of one dimension. Respondents
// without a usable rating in the dimension are not counted.
type DimensionScore struct {
	Dimension   string
	Mean        float64
	Respondents int
}

// InterestScores averages the 1-5 ratings per respondent for every dimension, then across
// respondents. Null, zero and non-numeric ratings are ignored.
func InterestScores(t *dataset.Table) ([]DimensionScore, error) {
	rows, err := rowScores(t)
	if err != nil {
		return nil, err
	}

	out := make([]DimensionScore, len(Dimensions))

	for d, dim := range Dimensions {
		var sum float64

		n := 0

		for _, r := range rows {
			if v, ok := r[d]; ok {
				sum += v
				n++
			}
		}

		out[d] = DimensionScore{Dimension: dim.Name, Respondents: n}
		if n > 0 {
			out[d].Mean = sum / float64(n)
		}
	}

	return out, nil
}

// SegmentInterest is the mean overall interest of one group.
type SegmentInterest struct {
	Group       string
	Mean        float64
	Respondents int
}

// InterestBySegment averages the overall interest score per value of groupCol, in registry
// order for ordinal fields.
func InterestBySegment(t *dataset.Table, groupCol string, reg *categories.Registry) ([]SegmentInterest, error) {
	groups, err := t.Column(groupCol)
	if err != nil {
		return nil, err
	}

	rows, err := rowScores(t)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)

	for i, g := range groups {
		v, ok := rows[i][0]
		if g.IsNull() || !ok {
			continue
		}

		sums[g.Value] += v
		counts[g.Value]++
	}

	names := make([]string, 0, len(counts))
	for g := range counts {
		names = append(names, g)
	}

	reg.Sort(groupCol, names)

	out := make([]SegmentInterest, len(names))
	for i, g := range names {
		out[i] = SegmentInterest{Group: g, Mean: sums[g] / float64(counts[g]), Respondents: counts[g]}
	}

	return out, nil
}

// rowScores returns, per row, the mean of each dimension that has at least one rating.
func rowScores(t *dataset.Table) ([]map[int]float64, error) {
	ratings := make(map[string][]dataset.Cell, len(models.RatingColumns))

	for _, col := range models.RatingColumns {
		cells, err := t.Column(col)
		if err != nil {
			return nil, err
		}

		ratings[col] = cells
	}

	out := make([]map[int]float64, t.Len())

	for i := range out {
		out[i] = make(map[int]float64, len(Dimensions))

		for d, dim := range Dimensions {
			var sum float64

			n := 0

			for _, col := range dim.Columns {
				if v, ok := rating(ratings[col][i]); ok {
					sum += v
					n++
				}
			}

			if n > 0 {
				out[i][d] = sum / float64(n)
			}
		}
	}

	return out, nil
}

func rating(c dataset.Cell) (float64, bool) {
	if c.IsNull() {
		return 0, false
	}

	v, err := strconv.ParseFloat(c.Value, 64)
	if err != nil || v == 0 {
		return 0, false
	}

	return v, true
}
