package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
	"jtsa/internal/models"
)

func surveyTable(t *testing.T) *dataset.Table {
	t.Helper()

	tbl := dataset.MustNew(models.ColumnNationality, models.ColumnAgeGroup, models.ColumnBeenToJapan, models.ColumnTravelFrequency)
	rows := [][]string{
		{"France", "25-34", "Yes, once", "Once a year"},
		{"France", "18-24", "No, but I would like to go", "Once a year"},
		{"China", "25-34", "Yes, once", "Never"},
		{"France", "65 and over", "Yes, once", "Once a year"},
		{"", "25-34", "No, and I’m not interested", ""},
	}

	for _, r := range rows {
		require.NoError(t, tbl.AppendStrings(r...))
	}

	return tbl
}

func TestApply(t *testing.T) {
	tbl := surveyTable(t)

	out, err := Apply(tbl, Filters{models.ColumnNationality: {"France"}, models.ColumnAgeGroup: nil})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())

	out, err = Apply(tbl, Filters{models.ColumnNationality: {"France", "China"}, models.ColumnAgeGroup: {"25-34"}})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())

	out, err = Apply(tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, tbl.Len(), out.Len())

	_, err = Apply(tbl, Filters{"nope": {"x"}})
	require.ErrorIs(t, err, dataset.ErrUnknownColumn)
}

func TestOptions_FollowRegistry(t *testing.T) {
	got, err := Options(surveyTable(t), models.ColumnAgeGroup, categories.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"18-24", "25-34", "65 and over"}, got)

	got, err = Options(surveyTable(t), models.ColumnNationality, categories.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"China", "France"}, got)
}

func TestValueCounts(t *testing.T) {
	reg := categories.Default()

	got, err := ValueCounts(surveyTable(t), models.ColumnBeenToJapan, reg)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "No, and I’m not interested", got[0].Value)
	assert.Equal(t, "Yes, once", got[2].Value)
	assert.Equal(t, 3, got[2].Count)
	assert.InDelta(t, 60.0, got[2].Percent, 1e-9)

	got, err = ValueCounts(surveyTable(t), models.ColumnNationality, reg)
	require.NoError(t, err)
	assert.Equal(t, []Count{{"France", 3, 75}, {"China", 1, 25}}, got)
}

func TestCrossTab(t *testing.T) {
	got, err := CrossTab(surveyTable(t), models.ColumnAgeGroup, models.ColumnBeenToJapan, categories.Default())
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, CrossCell{Group: "18-24", Value: "No, but I would like to go", Count: 1, Percent: 100}, got[0])
	assert.Equal(t, "25-34", got[1].Group)
	assert.Equal(t, "Yes, once", got[1].Value)
	assert.InDelta(t, 200.0/3, got[1].Percent, 1e-9)
	assert.Equal(t, "65 and over", got[3].Group)
}

func TestFunnel(t *testing.T) {
	stages, err := Funnel(surveyTable(t), []Step{
		{Column: models.ColumnNationality},
		{Column: models.ColumnBeenToJapan, Value: "Yes, once"},
		{Column: models.ColumnAgeGroup, Value: "25-34"},
	})
	require.NoError(t, err)

	require.Len(t, stages, 3)
	assert.Equal(t, Stage{Step: models.ColumnNationality, Value: "France", Remaining: 3, ConversionRate: 60}, stages[0])
	assert.Equal(t, 2, stages[1].Remaining)
	assert.Equal(t, 1, stages[2].Remaining)
	assert.InDelta(t, 20.0, stages[2].ConversionRate, 1e-9)
}

func TestFunnel_StopsWhenEmpty(t *testing.T) {
	stages, err := Funnel(surveyTable(t), []Step{
		{Column: models.ColumnNationality, Value: "Japan"},
		{Column: models.ColumnAgeGroup},
	})
	require.NoError(t, err)
	require.Len(t, stages, 1)
	assert.Zero(t, stages[0].Remaining)
}

func TestFunnel_Errors(t *testing.T) {
	_, err := Funnel(surveyTable(t), nil)
	require.ErrorIs(t, err, ErrNoSteps)

	_, err = Funnel(surveyTable(t), []Step{{Column: "nope"}})
	require.ErrorIs(t, err, dataset.ErrUnknownColumn)
}

func TestSegmentedFunnel(t *testing.T) {
	got, err := SegmentedFunnel(surveyTable(t), []Step{{Column: models.ColumnBeenToJapan, Value: "Yes, once"}}, models.ColumnNationality)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, SegmentResult{Segment: "China", Start: 1, End: 1, ConversionRate: 100}, got[0])
	assert.Equal(t, "France", got[1].Segment)
	assert.Equal(t, 3, got[1].Start)
	assert.Equal(t, 2, got[1].End)
	assert.InDelta(t, 200.0/3, got[1].ConversionRate, 1e-9)
}

func TestRankedScores(t *testing.T) {
	tbl := dataset.MustNew(models.RankedColumns("pref", 3)...)
	require.NoError(t, tbl.AppendStrings("Kanto", "Kansai", "Hokkaido"))
	require.NoError(t, tbl.AppendStrings("Kansai", "Kanto", ""))
	require.NoError(t, tbl.AppendStrings("Okinawa", "", ""))

	got, err := RankedScores(tbl, "pref", 3, nil)
	require.NoError(t, err)
	assert.Equal(t, []Score{{"Kansai", 5}, {"Kanto", 5}, {"Okinawa", 3}, {"Hokkaido", 1}}, got)

	flat, err := RankedScores(tbl, "pref", 3, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, Score{"Kansai", 2}, flat[0])

	_, err = RankedScores(tbl, "pref", 3, []float64{1})
	require.ErrorIs(t, err, ErrInvalidWeight)

	_, err = RankedScores(tbl, "pref", 4, nil)
	require.ErrorIs(t, err, dataset.ErrUnknownColumn)
}

func TestRankedCounts(t *testing.T) {
	tbl := dataset.MustNew(append(models.RankedColumns("d", 2), models.ColumnAgeGroup)...)
	require.NoError(t, tbl.AppendStrings("Language", "Expensive", "25-34"))
	require.NoError(t, tbl.AppendStrings("Expensive", "", "25-34"))

	got, err := RankedCounts(tbl, "d", 2, categories.Default())
	require.NoError(t, err)
	assert.Equal(t, "Expensive", got[0].Value)
	assert.Equal(t, 2, got[0].Count)
}

func ratingTable(t *testing.T, rows ...[]string) *dataset.Table {
	t.Helper()

	tbl := dataset.MustNew(append([]string{models.ColumnAgeGroup}, models.RatingColumns...)...)
	for _, r := range rows {
		require.NoError(t, tbl.AppendStrings(r...))
	}

	return tbl
}

func TestInterestScores(t *testing.T) {
	// culture, food, nature, shopping, events, wellness, theme park
	tbl := ratingTable(t,
		[]string{"25-34", "5", "5", "3", "1", "1", "3", "1"},
		[]string{"18-24", "4", "", "0", "", "", "", "2"},
		[]string{"18-24", "", "", "", "", "", "", ""},
	)

	got, err := InterestScores(tbl)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, DimensionOverall, got[0].Dimension)
	assert.Equal(t, 2, got[0].Respondents)
	assert.InDelta(t, (19.0/7+3.0)/2, got[0].Mean, 1e-9)

	assert.Equal(t, DimensionCultureFood, got[1].Dimension)
	assert.InDelta(t, 4.5, got[1].Mean, 1e-9)

	assert.Equal(t, DimensionNatureWellness, got[2].Dimension)
	assert.Equal(t, 1, got[2].Respondents)
	assert.InDelta(t, 3.0, got[2].Mean, 1e-9)

	assert.InDelta(t, 1.5, got[3].Mean, 1e-9)
}

func TestInterestBySegment(t *testing.T) {
	tbl := ratingTable(t,
		[]string{"25-34", "5", "5", "5", "5", "5", "5", "5"},
		[]string{"18-24", "1", "1", "1", "1", "1", "1", "1"},
		[]string{"18-24", "3", "3", "3", "3", "3", "3", "3"},
	)

	got, err := InterestBySegment(tbl, models.ColumnAgeGroup, categories.Default())
	require.NoError(t, err)
	assert.Equal(t, []SegmentInterest{
		{Group: "18-24", Mean: 2, Respondents: 2},
		{Group: "25-34", Mean: 5, Respondents: 1},
	}, got)
}

func TestKeywordThemes(t *testing.T) {
	texts := []string{
		"Des vols MOINS CHERS et plus d'anglais",
		"Rien, c'est parfait",
		"Less crowded, more English signs, cheaper train passes",
	}

	got := KeywordThemes(texts, DefaultThemes)
	require.Len(t, got, len(DefaultThemes))

	counts := make(map[string]int)
	for _, c := range got {
		counts[c.Theme] = c.Count
	}

	assert.Equal(t, 1, counts["price"])
	assert.Equal(t, 2, counts["language"])
	assert.Equal(t, 1, counts["crowd"])
	assert.Equal(t, 2, counts["transport"])
	assert.Equal(t, 1, counts["Do NOT Change"])
	assert.Equal(t, 0, counts["information"])
	assert.Equal(t, "information", got[len(got)-1].Theme)
}

func TestTexts(t *testing.T) {
	tbl := dataset.MustNew("idea")
	require.NoError(t, tbl.AppendStrings("a"))
	require.NoError(t, tbl.AppendStrings(""))

	got, err := Texts(tbl, "idea")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}
