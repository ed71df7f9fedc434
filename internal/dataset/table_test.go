package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsDuplicateAndEmptyHeaders(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrEmptyHeader)

	_, err = New([]string{"a", "b", "a"})
	require.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestCell_NullSemantics(t *testing.T) {
	assert.True(t, Null.IsNull())
	assert.Equal(t, "", Null.String())
	assert.False(t, String("").IsNull())
	assert.Equal(t, "x", String("x").String())
}

func TestTable_ColumnOperations(t *testing.T) {
	tbl := MustNew("a", "b", "c")
	require.NoError(t, tbl.AppendStrings("1", "2", "3"))
	require.NoError(t, tbl.AppendStrings("4", "", "6"))

	require.NoError(t, tbl.AddColumn("d", []Cell{String("x"), Null}))
	assert.Equal(t, []string{"a", "b", "c", "d"}, tbl.Columns())

	require.NoError(t, tbl.DropColumns("b"))
	assert.Equal(t, []string{"a", "c", "d"}, tbl.Columns())
	assert.Equal(t, String("6"), tbl.Get(1, "c"))
	assert.Equal(t, Null, tbl.Get(1, "d"))

	require.NoError(t, tbl.MapColumn("a", func(c Cell) Cell { return String(c.Value + "!") }))

	col, err := tbl.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []Cell{String("1!"), String("4!")}, col)

	require.ErrorIs(t, tbl.DropColumns("missing"), ErrUnknownColumn)
	require.ErrorIs(t, tbl.AddColumn("a", []Cell{Null, Null}), ErrDuplicateColumn)
	require.ErrorIs(t, tbl.SetColumn("a", []Cell{Null}), ErrRowWidth)
	require.ErrorIs(t, tbl.AppendRow([]Cell{Null}), ErrRowWidth)
}

func TestTable_RenameColumns(t *testing.T) {
	tbl := MustNew("old", "keep")

	require.NoError(t, tbl.RenameColumns(map[string]string{"old": "new", "absent": "x"}))
	assert.Equal(t, []string{"new", "keep"}, tbl.Columns())
	assert.True(t, tbl.Has("new"))
	assert.False(t, tbl.Has("old"))

	require.ErrorIs(t, tbl.RenameColumns(map[string]string{"new": "keep"}), ErrDuplicateColumn)
	assert.Equal(t, []string{"new", "keep"}, tbl.Columns())
}

func TestTable_CloneIsIndependent(t *testing.T) {
	tbl := MustNew("a")
	require.NoError(t, tbl.AppendStrings("1"))

	cp := tbl.Clone()
	require.NoError(t, cp.SetColumn("a", []Cell{String("2")}))
	require.NoError(t, cp.AddColumn("b", []Cell{Null}))

	assert.Equal(t, String("1"), tbl.Get(0, "a"))
	assert.False(t, tbl.Has("b"))
}

func TestTable_Filter(t *testing.T) {
	tbl := MustNew("a")
	for _, v := range []string{"x", "y", "x"} {
		require.NoError(t, tbl.AppendStrings(v))
	}

	out := tbl.Filter(func(i int) bool { return tbl.Get(i, "a").Value == "x" })
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 3, tbl.Len())
}
