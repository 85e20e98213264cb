// Copyright 2026 The tabkit authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
)

// Table is an ordered collection of named, equal-length, one-dimensional
// columns with per-column metadata.
//
// A Table is not safe for concurrent mutation; callers that share a Table
// across goroutines must provide their own synchronization. Selection
// operations (Select, Row, Slice, Take, Where) return new Tables and never
// modify the receiver.
type Table struct {
	names   []string
	columns map[string][]Value
	meta    map[string]Metadata
}

// Pair associates a column name with its data, for order-preserving
// construction.
type Pair struct {
	Name string
	Data interface{}
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		columns: make(map[string][]Value),
		meta:    make(map[string]Metadata),
	}
}

// New creates a table from one of the supported source shapes:
//
//   - nil: an empty table.
//   - *Table: a deep copy, preserving column order and metadata.
//   - []Pair: columns in the given order; duplicate names fail.
//   - map[string]T: columns sorted by name in lexicographic order.
//   - [][]T (a two-dimensional matrix of equal-length rows): one column per
//     matrix column, named "0", "1", ... in column order.
//   - arrow.Record or arrow.Table: columns extracted in schema order.
//
// A one-dimensional slice or a scalar is not a valid source and fails with
// ErrInvalidSource, as does any unrecognized type.
func New(source interface{}) (*Table, error) {
	if source == nil {
		return NewTable(), nil
	}

	switch src := source.(type) {
	case *Table:
		if src == nil {
			return nil, fmt.Errorf("%w: nil *Table", ErrInvalidSource)
		}
		return src.Clone(), nil
	case []Pair:
		return NewFromPairs(src)
	case arrow.Record:
		return FromRecord(src)
	case arrow.Table:
		return FromArrowTable(src)
	}

	rv := reflect.ValueOf(source)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map keys must be strings, got %s", ErrInvalidSource, rv.Type().Key())
		}
		return newFromMapValue(rv)
	case reflect.Slice, reflect.Array:
		elemKind := rv.Type().Elem().Kind()
		if elemKind == reflect.Slice || elemKind == reflect.Array {
			return newFromMatrixValue(rv)
		}
		if elemKind == reflect.Interface {
			// []interface{} counts as a matrix only when every element is
			// itself a sequence.
			if rows, ok := interfaceMatrix(rv); ok {
				return NewFromMatrix(rows)
			}
		}
		return nil, fmt.Errorf("%w: one-dimensional %T", ErrInvalidSource, source)
	default:
		return nil, fmt.Errorf("%w: scalar %T", ErrInvalidSource, source)
	}
}

// NewFromPairs creates a table from (name, column) pairs, preserving the
// given order. Duplicate names fail with ErrDuplicateName.
func NewFromPairs(pairs []Pair) (*Table, error) {
	t := NewTable()
	for _, p := range pairs {
		if err := t.AddColumn(p.Name, p.Data, nil); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NewFromMap creates a table from an unordered mapping, with column names
// sorted in lexicographic ascending order.
func NewFromMap(columns map[string]interface{}) (*Table, error) {
	return newFromMapValue(reflect.ValueOf(columns))
}

func newFromMapValue(rv reflect.Value) (*Table, error) {
	names := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		names = append(names, k.String())
	}
	sort.Strings(names)

	t := NewTable()
	for _, name := range names {
		key := reflect.ValueOf(name).Convert(rv.Type().Key())
		col := rv.MapIndex(key).Interface()
		if err := t.AddColumn(name, col, nil); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NewFromMatrix creates a table from a two-dimensional matrix given as
// equal-length rows. Columns are split along the second axis and assigned
// sequential names "0", "1", ... in column order.
func NewFromMatrix(rows [][]interface{}) (*Table, error) {
	if len(rows) == 0 {
		return NewTable(), nil
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row 0 has %d values, row %d has %d", ErrRagged, width, i, len(row))
		}
	}

	t := NewTable()
	for j := 0; j < width; j++ {
		col := make([]interface{}, len(rows))
		for i := range rows {
			col[i] = rows[i][j]
		}
		if err := t.AddColumn(strconv.Itoa(j), col, nil); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func newFromMatrixValue(rv reflect.Value) (*Table, error) {
	rows := make([][]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		inner := rv.Index(i)
		row := make([]interface{}, inner.Len())
		for j := 0; j < inner.Len(); j++ {
			row[j] = inner.Index(j).Interface()
		}
		rows[i] = row
	}
	return NewFromMatrix(rows)
}

// interfaceMatrix reports whether every element of a []interface{} is itself
// a sequence, and if so returns the matrix rows.
func interfaceMatrix(rv reflect.Value) ([][]interface{}, bool) {
	if rv.Len() == 0 {
		return nil, false
	}
	rows := make([][]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i).Elem()
		if !el.IsValid() || (el.Kind() != reflect.Slice && el.Kind() != reflect.Array) {
			return nil, false
		}
		row := make([]interface{}, el.Len())
		for j := 0; j < el.Len(); j++ {
			row[j] = el.Index(j).Interface()
		}
		rows[i] = row
	}
	return rows, true
}

// columnValues converts column data of any supported shape into cell values.
func columnValues(data interface{}) ([]Value, error) {
	if vals, ok := data.([]Value); ok {
		out := make([]Value, len(vals))
		copy(out, vals)
		return out, nil
	}
	if data == nil {
		return nil, fmt.Errorf("%w: nil column data", ErrNotOneDimensional)
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: scalar %T", ErrNotOneDimensional, data)
	}

	out := make([]Value, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		v, err := inferValue(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// AddColumn appends a column to the table, preserving prior column order.
// The name must be non-empty and unused; the data must be a one-dimensional
// sequence whose length matches the table's row count (when the table
// already has columns). The operation is all-or-nothing: on error the table
// is unchanged. A nil metadata attaches an empty mapping.
func (t *Table) AddColumn(name string, data interface{}, md Metadata) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if _, exists := t.columns[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	values, err := columnValues(data)
	if err != nil {
		return err
	}
	if len(t.names) > 0 && len(values) != t.Len() {
		return fmt.Errorf("%w: expected %d values, received %d", ErrLengthMismatch, t.Len(), len(values))
	}

	t.names = append(t.names, name)
	t.columns[name] = values
	if md == nil {
		md = Metadata{}
	}
	t.meta[name] = md.clone()
	return nil
}

// SetColumn adds the column when absent, or replaces an existing column's
// data in place (keeping its position and metadata).
func (t *Table) SetColumn(name string, data interface{}) error {
	if _, exists := t.columns[name]; !exists {
		return t.AddColumn(name, data, nil)
	}

	values, err := columnValues(data)
	if err != nil {
		return err
	}
	if len(values) != t.Len() {
		return fmt.Errorf("%w: expected %d values, received %d", ErrLengthMismatch, t.Len(), len(values))
	}
	t.columns[name] = values
	return nil
}

// RemoveColumn removes the named column and its metadata.
func (t *Table) RemoveColumn(name string) error {
	if _, exists := t.columns[name]; !exists {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	for i, n := range t.names {
		if n == name {
			t.names = append(t.names[:i], t.names[i+1:]...)
			break
		}
	}
	delete(t.columns, name)
	delete(t.meta, name)
	return nil
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	if len(t.names) == 0 {
		return 0
	}
	return len(t.columns[t.names[0]])
}

// NumColumns returns the number of columns in the table.
func (t *Table) NumColumns() int {
	return len(t.names)
}

// Names returns the column names in column order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]Value, error) {
	col, exists := t.columns[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	out := make([]Value, len(col))
	copy(out, col)
	return out, nil
}

// Cell returns the value at the given row of the named column.
func (t *Table) Cell(row int, name string) (Value, error) {
	col, exists := t.columns[name]
	if !exists {
		return Value{}, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	if row < 0 || row >= len(col) {
		return Value{}, fmt.Errorf("%w: %d (rows: %d)", ErrRowRange, row, len(col))
	}
	return col[row], nil
}

// RowValues returns the values of one row across all columns, in column
// order.
func (t *Table) RowValues(row int) ([]Value, error) {
	if row < 0 || row >= t.Len() {
		return nil, fmt.Errorf("%w: %d (rows: %d)", ErrRowRange, row, t.Len())
	}
	out := make([]Value, len(t.names))
	for i, name := range t.names {
		out[i] = t.columns[name][row]
	}
	return out, nil
}

// Metadata returns the metadata mapping attached to the named column.
// The mapping is shared: callers may read and write it directly.
func (t *Table) Metadata(name string) (Metadata, error) {
	if _, exists := t.columns[name]; !exists {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return t.meta[name], nil
}

// SetMetadata sets a metadata key on the named column.
func (t *Table) SetMetadata(name, key string, value interface{}) error {
	if _, exists := t.columns[name]; !exists {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	t.meta[name][key] = value
	return nil
}

// ColumnType returns the dominant data type of the named column.
func (t *Table) ColumnType(name string) (DataType, error) {
	col, exists := t.columns[name]
	if !exists {
		return TypeNull, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return columnType(col), nil
}

// Clone returns a deep copy of the table, preserving column order and
// metadata.
func (t *Table) Clone() *Table {
	out := NewTable()
	out.names = make([]string, len(t.names))
	copy(out.names, t.names)
	for name, col := range t.columns {
		values := make([]Value, len(col))
		copy(values, col)
		out.columns[name] = values
	}
	for name, md := range t.meta {
		out.meta[name] = md.clone()
	}
	return out
}

// Select returns a new table containing only the named columns, in the
// given order, with the same rows and copied metadata.
func (t *Table) Select(names ...string) (*Table, error) {
	out := NewTable()
	for _, name := range names {
		col, exists := t.columns[name]
		if !exists {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		if err := out.AddColumn(name, col, t.meta[name]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Row returns a new table containing exactly the given row across all
// columns.
func (t *Table) Row(i int) (*Table, error) {
	if i < 0 || i >= t.Len() {
		return nil, fmt.Errorf("%w: %d (rows: %d)", ErrRowRange, i, t.Len())
	}
	return t.Slice(i, i+1)
}

// Slice returns a new table containing the half-open row range [begin, end).
func (t *Table) Slice(begin, end int) (*Table, error) {
	if begin < 0 || end < begin || end > t.Len() {
		return nil, fmt.Errorf("%w: [%d:%d] (rows: %d)", ErrRowRange, begin, end, t.Len())
	}
	out := NewTable()
	for _, name := range t.names {
		if err := out.AddColumn(name, t.columns[name][begin:end], t.meta[name]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Take returns a new table containing the given rows in the given order.
// Indices may repeat and appear in any order; any out-of-range index fails
// the whole operation.
func (t *Table) Take(indices []int) (*Table, error) {
	rows := t.Len()
	for _, i := range indices {
		if i < 0 || i >= rows {
			return nil, fmt.Errorf("%w: %d (rows: %d)", ErrRowRange, i, rows)
		}
	}
	out := NewTable()
	for _, name := range t.names {
		col := t.columns[name]
		values := make([]Value, len(indices))
		for j, i := range indices {
			values[j] = col[i]
		}
		if err := out.AddColumn(name, values, t.meta[name]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// uniqueName returns name, suffixed with "-1", "-2", ... when it is already
// taken in the table.
func (t *Table) uniqueName(name string) string {
	if _, exists := t.columns[name]; !exists {
		return name
	}
	for suffix := 1; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", name, suffix)
		if _, exists := t.columns[candidate]; !exists {
			return candidate
		}
	}
}
