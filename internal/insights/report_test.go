package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
	"jtsa/internal/models"
)

func TestBuildReport(t *testing.T) {
	tbl := surveyTable(t)

	r, err := BuildReport(tbl, categories.Default(), ReportOptions{
		Filters:   Filters{models.ColumnNationality: {"France"}},
		GroupBy:   models.ColumnAgeGroup,
		CrossWith: models.ColumnBeenToJapan,
		Funnel:    []Step{{Column: models.ColumnBeenToJapan}},
		SegmentBy: models.ColumnAgeGroup,
	})
	require.NoError(t, err)

	out := r.String()
	assert.Contains(t, out, "3 of 5 respondents match the filters.")
	assert.Contains(t, out, "## "+models.ColumnAgeGroup)
	assert.Contains(t, out, "## been_to_Japan by age_group")
	assert.Contains(t, out, "## Funnel conversion by age_group")
	assert.NotContains(t, out, "Interest in Japan", "rating columns are absent")
}

func TestBuildReport_Themes(t *testing.T) {
	tbl := dataset.MustNew(models.ColumnImprovementIdeas)
	require.NoError(t, tbl.AppendStrings("Moins cher"))

	r, err := BuildReport(tbl, nil, ReportOptions{TextColumn: models.ColumnImprovementIdeas})
	require.NoError(t, err)
	assert.Contains(t, r.String(), "| price ")
}

func TestBuildReport_BadFilter(t *testing.T) {
	_, err := BuildReport(surveyTable(t), nil, ReportOptions{Filters: Filters{"nope": {"x"}}})
	require.ErrorIs(t, err, dataset.ErrUnknownColumn)
}
