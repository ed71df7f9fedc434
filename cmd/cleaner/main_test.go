package main

import (
	"bytes"
	"context"
	"encoding/csv"
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

func writeRaw(t *testing.T, path string, header []string, row map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(header))

	record := make([]string, len(header))
	for i, h := range header {
		record[i] = row[h]
	}

	require.NoError(t, w.Write(record))
	w.Flush()
	require.NoError(t, w.Error())
}

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Cleaner.Input.Path = filepath.Join(dir, "raw.csv")
	cfg.Cleaner.Output.Path = filepath.Join(dir, "out", "df_clean.csv")
	cfg.Cleaner.Output.SQLitePath = filepath.Join(dir, "out", "survey.db")
	cfg.Cleaner.Output.ReportPath = filepath.Join(dir, "out", "audit.md")

	return cfg
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	header := append([]string{"Horodateur"}, models.RequiredColumns...)
	writeRaw(t, cfg.Cleaner.Input.Path, header, map[string]string{
		models.ColumnNationality:       "Française",
		models.ColumnCountry:           "Klingon Empire",
		models.ColumnAgeGroup:          "35 - 44 ans",
		models.ColumnRegionPrefs:       "Je n’ai pas encore d’idée précise, j’ai besoin d’y réfléchir ou de me renseigner., Hokkaido",
		models.ColumnJapanDifficulties: "没兴趣, La barrière de la langue",
	})

	var logs bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, "run-1", logger.New(logger.Options{Writer: &logs, Level: "debug"})))
	assert.Contains(t, logs.String(), "table=region_preference")

	clean, err := dataset.ReadFile(cfg.Cleaner.Output.Path, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, clean.Len())
	assert.Equal(t, "Klingon Empire", clean.Get(0, models.ColumnCountry).String())
	assert.False(t, clean.Has(models.ColumnRegionPrefs))

	// Discarded choices leave a null slot and later choices keep their rank.
	assert.Equal(t, "Unknown", clean.Get(0, models.ColumnRegionPrefs+"_1").String())
	assert.True(t, clean.Get(0, models.ColumnRegionPrefs+"_2").IsNull())
	assert.Equal(t, "Hokkaido", clean.Get(0, models.ColumnRegionPrefs+"_3").String())
	assert.True(t, clean.Get(0, models.ColumnJapanDifficulties+"_1").IsNull())
	assert.Equal(t, "Language", clean.Get(0, models.ColumnJapanDifficulties+"_2").String())

	f, err := os.Open(cfg.Cleaner.Output.ResolvedCategoriesPath())
	require.NoError(t, err)

	defer f.Close()

	reg, err := categories.ReadJSON(f)
	require.NoError(t, err)
	assert.Equal(t, categories.Default().Fields(), reg.Fields())

	s, err := store.Open(cfg.Cleaner.Output.SQLitePath)
	require.NoError(t, err)

	defer s.Close()

	n, err := s.CountRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	report, err := os.ReadFile(cfg.Cleaner.Output.ReportPath)
	require.NoError(t, err)

	ok, err := metadata.Verify(string(report))
	require.NoError(t, err)
	assert.True(t, ok)

	meta, _ := metadata.Extract(string(report))
	assert.Equal(t, "run-1", meta.RunID)
	assert.Equal(t, "raw.csv", meta.Source)
	assert.Equal(t, 1, meta.Rows)
}

func TestRun_FailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	writeRaw(t, cfg.Cleaner.Input.Path, []string{"Horodateur", models.ColumnCountry}, map[string]string{
		models.ColumnCountry: "France",
	})

	err := run(context.Background(), cfg, "run-2", logger.Discard())
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(statErr))
}
