package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabkit/data"
)

func TestTransform(t *testing.T) {
	tbl := data.NewTable()
	require.NoError(t, tbl.AddColumn("name", []string{"alice", "bob", "carol"}, nil))
	require.NoError(t, tbl.AddColumn("age", []int{30, 25, 41}, nil))

	src := `
func Transform(t *data.Table) (*data.Table, error) {
	return t.Where("age > 26")
}
`
	out, err := NewRunner().Transform(tbl, src)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, []string{"name", "age"}, out.Names())
}

func TestTransformCapturesOutput(t *testing.T) {
	tbl := data.NewTable()
	require.NoError(t, tbl.AddColumn("a", []int{1}, nil))

	src := `package main

import (
	"fmt"

	"tabkit/data"
)

func Transform(t *data.Table) (*data.Table, error) {
	fmt.Println("rows:", t.Len())
	return t.Clone(), nil
}
`
	r := NewRunner()
	out, err := r.Transform(tbl, src)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
	assert.Contains(t, r.Output(), "rows: 1")
}

func TestTransformMissingFunction(t *testing.T) {
	tbl := data.NewTable()
	src := `
func NotTransform(t *data.Table) (*data.Table, error) { return t, nil }
`
	_, err := NewRunner().Transform(tbl, src)
	assert.Error(t, err)
}

func TestTransformEmptySource(t *testing.T) {
	_, err := NewRunner().Transform(data.NewTable(), "")
	assert.Error(t, err)
}
