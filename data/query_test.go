package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peopleTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("name", []string{"alice", "bob", "carol"}, nil))
	require.NoError(t, tbl.AddColumn("age", []int{30, 25, 41}, nil))
	require.NoError(t, tbl.AddColumn("city", []string{"Oslo", "Lund", "Oslo"}, nil))
	return tbl
}

func names(t *testing.T, tbl *Table) []string {
	t.Helper()
	col, err := tbl.Column("name")
	require.NoError(t, err)
	out := make([]string, len(col))
	for i, v := range col {
		out[i] = v.Formatted
	}
	return out
}

func TestWhereNumericComparison(t *testing.T) {
	tbl := peopleTable(t)

	out, err := tbl.Where("age > 26")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, names(t, out))

	out, err = tbl.Where("age <= 30")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names(t, out))
}

func TestWhereEquality(t *testing.T) {
	tbl := peopleTable(t)

	out, err := tbl.Where("city = oslo")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, names(t, out))

	out, err = tbl.Where("city != Oslo")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, names(t, out))
}

func TestWhereLogicOps(t *testing.T) {
	tbl := peopleTable(t)

	out, err := tbl.Where("city = Oslo AND age > 35")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, names(t, out))

	out, err = tbl.Where("age < 26 OR age > 40")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, names(t, out))
}

func TestWhereContainsAndBareTerm(t *testing.T) {
	tbl := peopleTable(t)

	out, err := tbl.Where("name ~ ar")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, names(t, out))

	// A bare term searches all columns.
	out, err = tbl.Where("lund")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, names(t, out))
}

func TestWhereUnknownColumn(t *testing.T) {
	tbl := peopleTable(t)
	_, err := tbl.Where("height > 3")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestWhereEmptyExpressionMatchesAll(t *testing.T) {
	tbl := peopleTable(t)
	out, err := tbl.Where("   ")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())

	// The result is independent of the source.
	require.NoError(t, out.RemoveColumn("city"))
	assert.Equal(t, []string{"name", "age", "city"}, tbl.Names())
}

func TestWherePreservesMetadata(t *testing.T) {
	tbl := peopleTable(t)
	require.NoError(t, tbl.SetMetadata("age", "unit", "years"))

	out, err := tbl.Where("age > 26")
	require.NoError(t, err)
	md, err := out.Metadata("age")
	require.NoError(t, err)
	assert.Equal(t, "years", md["unit"])
}

func TestParseQueryQuotedValue(t *testing.T) {
	q, err := ParseQuery(`name = "alice"`, []string{"name"})
	require.NoError(t, err)
	require.Len(t, q.Expressions, 1)
	assert.Equal(t, "alice", q.Expressions[0].Value)
	assert.Equal(t, OpEqual, q.Expressions[0].Operator)
}
