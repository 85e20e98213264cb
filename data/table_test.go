package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNilSource(t *testing.T) {
	tbl, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumColumns())
	assert.Equal(t, 0, tbl.Len())
}

func TestNewFromTableCopies(t *testing.T) {
	src := NewTable()
	require.NoError(t, src.AddColumn("a", []int{1, 2}, Metadata{"unit": "m"}))
	require.NoError(t, src.AddColumn("b", []string{"x", "y"}, nil))

	tbl, err := New(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Names())

	md, err := tbl.Metadata("a")
	require.NoError(t, err)
	assert.Equal(t, "m", md["unit"])

	// Mutating the copy must not touch the source.
	require.NoError(t, tbl.RemoveColumn("b"))
	require.NoError(t, tbl.SetMetadata("a", "unit", "ft"))
	assert.Equal(t, []string{"a", "b"}, src.Names())
	srcMD, err := src.Metadata("a")
	require.NoError(t, err)
	assert.Equal(t, "m", srcMD["unit"])
}

func TestNewNilTablePointerFails(t *testing.T) {
	_, err := New((*Table)(nil))
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestNewFromMapSortsNames(t *testing.T) {
	tbl, err := New(map[string][]int{
		"b": {3, 4},
		"a": {1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
}

func TestNewFromPairsPreservesOrder(t *testing.T) {
	tbl, err := New([]Pair{
		{Name: "b", Data: []int{3, 4}},
		{Name: "a", Data: []int{1, 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, tbl.Names())
}

func TestNewFromPairsDuplicateFails(t *testing.T) {
	_, err := New([]Pair{
		{Name: "a", Data: []int{1}},
		{Name: "a", Data: []int{2}},
	})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestNewFromMatrix(t *testing.T) {
	tbl, err := New([][]string{
		{"1", "2"},
		{"3", "4"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, tbl.Names())
	assert.Equal(t, 2, tbl.Len())

	col0, err := tbl.Column("0")
	require.NoError(t, err)
	assert.Equal(t, "1", col0[0].Formatted)
	assert.Equal(t, "3", col0[1].Formatted)

	col1, err := tbl.Column("1")
	require.NoError(t, err)
	assert.Equal(t, "2", col1[0].Formatted)
	assert.Equal(t, "4", col1[1].Formatted)
}

func TestNewFromRaggedMatrixFails(t *testing.T) {
	_, err := New([][]int{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrRagged)
}

func TestNewInvalidSources(t *testing.T) {
	cases := []struct {
		name   string
		source interface{}
	}{
		{"flat slice", []int{1, 2, 3}},
		{"flat string slice", []string{"a"}},
		{"scalar int", 5},
		{"scalar string", "hello"},
		{"scalar float", 1.5},
		{"non-string map keys", map[int][]int{1: {2}}},
		{"struct", struct{ X int }{1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.source)
			assert.ErrorIs(t, err, ErrInvalidSource)
		})
	}
}

func TestNewEmptySources(t *testing.T) {
	for _, source := range []interface{}{
		map[string][]int{},
		[]Pair{},
		[][]int{},
	} {
		tbl, err := New(source)
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.NumColumns())
		assert.Equal(t, 0, tbl.Len())
	}
}

func TestAddColumn(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{1, 2, 3}, nil))
	assert.Equal(t, 3, tbl.Len())

	col, err := tbl.Column("a")
	require.NoError(t, err)
	require.Len(t, col, 3)
	assert.Equal(t, int64(2), col[1].Raw)
	assert.Equal(t, TypeInt, col[1].Type)
}

func TestAddColumnEmptyNameFails(t *testing.T) {
	tbl := NewTable()
	assert.ErrorIs(t, tbl.AddColumn("", []int{1}, nil), ErrInvalidName)

	require.NoError(t, tbl.AddColumn("a", []int{1}, nil))
	assert.ErrorIs(t, tbl.AddColumn("", []int{1}, nil), ErrInvalidName)
}

func TestAddColumnLengthMismatchFails(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{1, 2, 3}, nil))
	err := tbl.AddColumn("b", []int{1, 2}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	// Failed adds leave the table unchanged.
	assert.Equal(t, []string{"a"}, tbl.Names())
	assert.Equal(t, 3, tbl.Len())
}

func TestAddColumnNestedDataFails(t *testing.T) {
	tbl := NewTable()
	err := tbl.AddColumn("a", [][]int{{1}, {2}}, nil)
	assert.ErrorIs(t, err, ErrNotOneDimensional)

	err = tbl.AddColumn("a", []interface{}{[]int{1}, []int{2}}, nil)
	assert.ErrorIs(t, err, ErrNotOneDimensional)

	err = tbl.AddColumn("a", 7, nil)
	assert.ErrorIs(t, err, ErrNotOneDimensional)
}

func TestAddColumnDuplicateFails(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{1}, nil))
	assert.ErrorIs(t, tbl.AddColumn("a", []int{2}, nil), ErrDuplicateName)
}

func TestSetColumnReplacesInPlace(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{1, 2}, Metadata{"unit": "m"}))
	require.NoError(t, tbl.AddColumn("b", []int{3, 4}, nil))

	require.NoError(t, tbl.SetColumn("a", []string{"x", "y"}))
	assert.Equal(t, []string{"a", "b"}, tbl.Names())

	col, err := tbl.Column("a")
	require.NoError(t, err)
	assert.Equal(t, "x", col[0].Formatted)

	md, err := tbl.Metadata("a")
	require.NoError(t, err)
	assert.Equal(t, "m", md["unit"])

	assert.ErrorIs(t, tbl.SetColumn("a", []int{1, 2, 3}), ErrLengthMismatch)
}

func TestRemoveColumn(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{1}, nil))
	require.NoError(t, tbl.AddColumn("b", []int{2}, nil))

	require.NoError(t, tbl.RemoveColumn("a"))
	assert.Equal(t, []string{"b"}, tbl.Names())

	assert.ErrorIs(t, tbl.RemoveColumn("a"), ErrColumnNotFound)
}

func TestSelect(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{1, 2}, Metadata{"k": "v"}))
	require.NoError(t, tbl.AddColumn("b", []int{3, 4}, nil))
	require.NoError(t, tbl.AddColumn("c", []int{5, 6}, nil))

	sel, err := tbl.Select("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, sel.Names())
	assert.Equal(t, 2, sel.Len())

	md, err := sel.Metadata("a")
	require.NoError(t, err)
	assert.Equal(t, "v", md["k"])

	// Mutating the selection must not change the source.
	require.NoError(t, sel.RemoveColumn("a"))
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Names())

	_, err = tbl.Select("nope")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestRowSelection(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{10, 20, 30}, nil))
	require.NoError(t, tbl.AddColumn("b", []string{"x", "y", "z"}, nil))

	row, err := tbl.Row(1)
	require.NoError(t, err)
	assert.Equal(t, 1, row.Len())
	assert.Equal(t, []string{"a", "b"}, row.Names())
	cell, err := row.Cell(0, "b")
	require.NoError(t, err)
	assert.Equal(t, "y", cell.Formatted)

	_, err = tbl.Row(3)
	assert.ErrorIs(t, err, ErrRowRange)
	_, err = tbl.Row(-1)
	assert.ErrorIs(t, err, ErrRowRange)
}

func TestSlice(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{10, 20, 30, 40}, nil))

	sub, err := tbl.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Len())
	cell, err := sub.Cell(0, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(20), cell.Raw)

	empty, err := tbl.Slice(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = tbl.Slice(3, 1)
	assert.ErrorIs(t, err, ErrRowRange)
	_, err = tbl.Slice(0, 5)
	assert.ErrorIs(t, err, ErrRowRange)
}

func TestTake(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{10, 20, 30}, nil))

	sub, err := tbl.Take([]int{2, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Len())

	col, err := sub.Column("a")
	require.NoError(t, err)
	assert.Equal(t, int64(30), col[0].Raw)
	assert.Equal(t, int64(10), col[1].Raw)
	assert.Equal(t, int64(30), col[2].Raw)

	_, err = tbl.Take([]int{0, 3})
	assert.ErrorIs(t, err, ErrRowRange)
}

func TestMetadataSurvivesSelection(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{1, 2}, nil))
	require.NoError(t, tbl.SetMetadata("a", "label", "Series A"))

	row, err := tbl.Row(0)
	require.NoError(t, err)
	md, err := row.Metadata("a")
	require.NoError(t, err)
	assert.Equal(t, "Series A", md["label"])

	_, err = tbl.Metadata("nope")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestColumnReturnsCopy(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{1, 2}, nil))

	col, err := tbl.Column("a")
	require.NoError(t, err)
	col[0] = NewValue("mutated", TypeString)

	again, err := tbl.Column("a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), again[0].Raw)
}

func TestColumnType(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("ints", []int{1, 2}, nil))
	require.NoError(t, tbl.AddColumn("mixed", []interface{}{1, 2.5}, nil))
	require.NoError(t, tbl.AddColumn("strs", []interface{}{1, "x"}, nil))

	ct, err := tbl.ColumnType("ints")
	require.NoError(t, err)
	assert.Equal(t, TypeInt, ct)

	ct, err = tbl.ColumnType("mixed")
	require.NoError(t, err)
	assert.Equal(t, TypeFloat, ct)

	ct, err = tbl.ColumnType("strs")
	require.NoError(t, err)
	assert.Equal(t, TypeString, ct)
}
