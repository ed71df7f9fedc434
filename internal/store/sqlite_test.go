package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
	"jtsa/internal/models"
)

func cleanedTable(t *testing.T) *dataset.Table {
	t.Helper()

	tbl := dataset.MustNew(models.ColumnNationality, models.ColumnHouseholdIncome, models.ColumnRatingFood, `odd "name"`)
	require.NoError(t, tbl.AppendStrings("France", "7000 and more", "5", "x"))
	require.NoError(t, tbl.AppendStrings("China", "", "", ""))
	require.NoError(t, tbl.AppendStrings("中国人", "Unknown", "n/a", "y"))

	return tbl
}

func TestExport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "survey.sqlite")
	tbl := cleanedTable(t)

	require.NoError(t, Export(ctx, path, tbl, categories.Default()))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	back, err := s.ReadSurvey(ctx)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns(), back.Columns())

	for i := 0; i < tbl.Len(); i++ {
		assert.Equal(t, tbl.Row(i), back.Row(i), "row %d", i)
	}

	reg, err := s.ReadCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, categories.Default().Fields(), reg.Fields())

	ages, ok := reg.OrderFor(models.ColumnAgeGroup)
	require.True(t, ok)
	want, _ := categories.Default().OrderFor(models.ColumnAgeGroup)
	assert.Equal(t, want, ages)
}

func TestWriteSurvey_RatingsAreIntegers(t *testing.T) {
	ctx := context.Background()

	s, err := Open(filepath.Join(t.TempDir(), "s.sqlite"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.WriteSurvey(ctx, cleanedTable(t)))

	var typ string
	err = s.conn.QueryRowContext(ctx,
		`SELECT typeof(`+quote(models.ColumnRatingFood)+`) FROM `+quote(SurveyTable)+` WHERE rowid = 1`).Scan(&typ)
	require.NoError(t, err)
	assert.Equal(t, "integer", typ)
}

func TestExport_ReplacesExistingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "s.sqlite")

	require.NoError(t, Export(ctx, path, cleanedTable(t), categories.Default()))

	empty := dataset.MustNew(models.ColumnNationality)
	require.NoError(t, Export(ctx, path, empty, categories.Default()))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.CountRows(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReadCategories_Empty(t *testing.T) {
	ctx := context.Background()

	s, err := Open(filepath.Join(t.TempDir(), "s.sqlite"))
	require.NoError(t, err)
	defer s.Close()

	empty, err := categories.New()
	require.NoError(t, err)
	require.NoError(t, s.WriteCategories(ctx, empty))

	_, err = s.ReadCategories(ctx)
	require.ErrorIs(t, err, ErrNoCategories)
}
