package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jtsa/internal/categories"
	"jtsa/internal/config"
	"jtsa/internal/dataset"
	"jtsa/internal/logger"
	"jtsa/internal/models"
	"jtsa/internal/store"
	"jtsa/pkg/metadata"
)

func cleanedTable(t *testing.T) *dataset.Table {
	t.Helper()

	tbl := dataset.MustNew(models.ColumnCountry, models.ColumnAgeGroup, models.ColumnBeenToJapan)
	require.NoError(t, tbl.AppendStrings("France", "25-34", "No"))
	require.NoError(t, tbl.AppendStrings("Germany", "65+", "Yes"))
	require.NoError(t, tbl.AppendStrings("France", "18-24", "Yes"))

	return tbl
}

func TestRun_CSVToStdout(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "df_clean.csv")
	require.NoError(t, dataset.WriteCSVFile(input, cleanedTable(t), dataset.WriteOptions{BOM: true}))

	cfg := config.Default()
	cfg.Insights.Input = input
	cfg.Insights.Filters = map[string][]string{models.ColumnCountry: {"France"}}
	cfg.Insights.Funnel = []config.FunnelStep{{Column: models.ColumnBeenToJapan, Value: "Yes"}}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, "", &out, logger.Discard()))

	report := out.String()
	assert.Contains(t, report, "2 of 3 respondents match the filters.")

	ok, err := metadata.Verify(report)
	require.NoError(t, err)
	assert.True(t, ok)

	meta, _ := metadata.Extract(report)
	assert.Equal(t, "df_clean.csv", meta.Source)
	assert.Equal(t, 3, meta.Rows)
}

func TestRun_SQLiteToFile(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "survey.db")
	require.NoError(t, store.Export(context.Background(), db, cleanedTable(t), categories.Default()))

	cfg := config.Default()
	cfg.Insights.Input = db
	cfg.Insights.Output = filepath.Join(dir, "reports", "insights.md")

	require.NoError(t, run(context.Background(), cfg, "", &bytes.Buffer{}, logger.Discard()))

	data, err := os.ReadFile(cfg.Insights.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3 of 3 respondents match the filters.")
}

func TestLoad_ExplicitCategoriesMissing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "df_clean.csv")
	require.NoError(t, dataset.WriteCSVFile(input, cleanedTable(t), dataset.WriteOptions{}))

	_, _, err := load(context.Background(), input, filepath.Join(dir, "nope.json"))
	assert.Error(t, err)

	_, reg, err := load(context.Background(), input, "")
	require.NoError(t, err)
	assert.Equal(t, categories.Default().Fields(), reg.Fields())
}
