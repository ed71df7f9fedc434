package insights

import (
	"fmt"
	"strconv"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
	"jtsa/internal/formatter"
	"jtsa/internal/models"
)

// ReportOptions selects the optional sections of an insights report.
type ReportOptions struct {
	Filters    Filters
	GroupBy    string
	CrossWith  string
	Funnel     []Step
	SegmentBy  string
	Themes     []Theme
	TextColumn string
}

// overviewColumns are counted in the overview section, in this order.
var overviewColumns = []string{
	models.ColumnNationality,
	models.ColumnCountry,
	models.ColumnAgeGroup,
	models.ColumnHouseholdIncome,
	models.ColumnTravelFrequency,
	models.ColumnBeenToJapan,
	models.ColumnJapanVacDuration,
	models.ColumnJapanBudget,
}

// BuildReport filters t and renders every view the options ask for. Columns missing from
// t are skipped in the overview.
func BuildReport(t *dataset.Table, reg *categories.Registry, opts ReportOptions) (*formatter.Report, error) {
	filtered, err := Apply(t, opts.Filters)
	if err != nil {
		return nil, err
	}

	r := formatter.NewReport("Japan travel survey insights")
	r.Paragraph("%d of %d respondents match the filters.", filtered.Len(), t.Len())

	for _, col := range overviewColumns {
		if !filtered.Has(col) {
			continue
		}

		counts, err := ValueCounts(filtered, col, reg)
		if err != nil {
			return nil, err
		}

		r.Heading(col)
		r.Table([]string{"Value", "Count", "%"}, countRows(counts))
	}

	if err := interestSection(r, filtered, reg, opts.GroupBy); err != nil {
		return nil, err
	}

	if filtered.Has(models.ColumnRegionPrefs + "_1") {
		scores, err := RankedScores(filtered, models.ColumnRegionPrefs, models.RankedWidth, nil)
		if err != nil {
			return nil, err
		}

		rows := make([][]string, len(scores))
		for i, s := range scores {
			rows[i] = []string{s.Label, strconv.FormatFloat(s.Score, 'f', -1, 64)}
		}

		r.Heading("Weighted region wishlist")
		r.Table([]string{"Region", "Score"}, rows)
	}

	for _, prefix := range []string{models.ColumnJapanDifficulties, models.ColumnAltDestDifficulties} {
		if !filtered.Has(prefix + "_1") {
			continue
		}

		counts, err := RankedCounts(filtered, prefix, models.RankedWidth, reg)
		if err != nil {
			return nil, err
		}

		r.Heading(prefix)
		r.Table([]string{"Difficulty", "Mentions", "%"}, countRows(counts))
	}

	if opts.GroupBy != "" && opts.CrossWith != "" {
		cells, err := CrossTab(filtered, opts.GroupBy, opts.CrossWith, reg)
		if err != nil {
			return nil, err
		}

		rows := make([][]string, len(cells))
		for i, c := range cells {
			rows[i] = []string{c.Group, c.Value, strconv.Itoa(c.Count), pct(c.Percent)}
		}

		r.Heading(fmt.Sprintf("%s by %s", opts.CrossWith, opts.GroupBy))
		r.Table([]string{opts.GroupBy, opts.CrossWith, "Count", "% of group"}, rows)
	}

	if len(opts.Funnel) > 0 {
		if err := funnelSection(r, filtered, opts.Funnel, opts.SegmentBy); err != nil {
			return nil, err
		}
	}

	if opts.TextColumn != "" && filtered.Has(opts.TextColumn) {
		texts, err := Texts(filtered, opts.TextColumn)
		if err != nil {
			return nil, err
		}

		themes := opts.Themes
		if themes == nil {
			themes = DefaultThemes
		}

		counts := KeywordThemes(texts, themes)
		rows := make([][]string, len(counts))

		for i, c := range counts {
			rows[i] = []string{c.Theme, strconv.Itoa(c.Count)}
		}

		r.Heading("Improvement ideas by theme")
		r.Paragraph("%d text answers.", len(texts))
		r.Table([]string{"Theme", "Keyword hits"}, rows)
	}

	return r, nil
}

func interestSection(r *formatter.Report, t *dataset.Table, reg *categories.Registry, groupBy string) error {
	for _, c := range models.RatingColumns {
		if !t.Has(c) {
			return nil
		}
	}

	scores, err := InterestScores(t)
	if err != nil {
		return err
	}

	rows := make([][]string, len(scores))
	for i, s := range scores {
		rows[i] = []string{s.Dimension, score(s.Mean), strconv.Itoa(s.Respondents)}
	}

	r.Heading("Interest in Japan (1-5)")
	r.Table([]string{"Dimension", "Average", "Respondents"}, rows)

	if groupBy == "" {
		return nil
	}

	segs, err := InterestBySegment(t, groupBy, reg)
	if err != nil {
		return err
	}

	rows = make([][]string, len(segs))
	for i, s := range segs {
		rows[i] = []string{s.Group, score(s.Mean), strconv.Itoa(s.Respondents)}
	}

	r.Heading("Overall interest by " + groupBy)
	r.Table([]string{groupBy, "Average", "Respondents"}, rows)

	return nil
}

func funnelSection(r *formatter.Report, t *dataset.Table, steps []Step, segmentBy string) error {
	stages, err := Funnel(t, steps)
	if err != nil {
		return err
	}

	rows := make([][]string, len(stages))
	for i, s := range stages {
		rows[i] = []string{s.Step, s.Value, strconv.Itoa(s.Remaining), pct(s.ConversionRate)}
	}

	r.Heading("Funnel")
	r.Table([]string{"Step", "Value", "Remaining", "Conversion %"}, rows)

	if segmentBy == "" {
		return nil
	}

	segs, err := SegmentedFunnel(t, steps, segmentBy)
	if err != nil {
		return err
	}

	rows = make([][]string, len(segs))
	for i, s := range segs {
		rows[i] = []string{s.Segment, strconv.Itoa(s.Start), strconv.Itoa(s.End), pct(s.ConversionRate)}
	}

	r.Heading("Funnel conversion by " + segmentBy)
	r.Table([]string{segmentBy, "Start", "End", "Conversion %"}, rows)

	return nil
}

func countRows(counts []Count) [][]string {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Value, strconv.Itoa(c.Count), pct(c.Percent)}
	}

	return rows
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
