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
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// FromRecord creates a table from an Arrow record batch, extracting columns
// in schema order. Duplicate field names are suffixed "-1", "-2", ... to
// keep column names unique.
func FromRecord(rec arrow.Record) (*Table, error) {
	t := NewTable()
	schema := rec.Schema()
	for i := 0; i < int(rec.NumCols()); i++ {
		values := valuesFromArrow(rec.Column(i))
		name := t.uniqueName(schema.Field(i).Name)
		if err := t.AddColumn(name, values, nil); err != nil {
			return nil, fmt.Errorf("failed to convert arrow column %q: %w", schema.Field(i).Name, err)
		}
	}
	return t, nil
}

// FromArrowTable creates a table from a (possibly chunked) Arrow table.
func FromArrowTable(tbl arrow.Table) (*Table, error) {
	schema := tbl.Schema()
	columns := make([][]Value, schema.NumFields())

	tr := array.NewTableReader(tbl, tbl.NumRows())
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		for i := 0; i < int(rec.NumCols()); i++ {
			columns[i] = append(columns[i], valuesFromArrow(rec.Column(i))...)
		}
	}
	if tr.Err() != nil {
		return nil, fmt.Errorf("error reading arrow table: %w", tr.Err())
	}

	t := NewTable()
	for i := 0; i < schema.NumFields(); i++ {
		if columns[i] == nil {
			columns[i] = []Value{}
		}
		name := t.uniqueName(schema.Field(i).Name)
		if err := t.AddColumn(name, columns[i], nil); err != nil {
			return nil, fmt.Errorf("failed to convert arrow column %q: %w", schema.Field(i).Name, err)
		}
	}
	return t, nil
}

// valuesFromArrow converts an Arrow array into cell values.
func valuesFromArrow(col arrow.Array) []Value {
	out := make([]Value, col.Len())
	for pos := 0; pos < col.Len(); pos++ {
		out[pos] = arrowValue(col, pos)
	}
	return out
}

// arrowValue converts the Arrow column value at a specific position.
func arrowValue(col arrow.Array, pos int) Value {
	if col.IsNull(pos) {
		return NewNullValue(TypeNull)
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		s := col.(*array.String)
		return NewValue(s.Value(pos), TypeString)

	case arrow.LARGE_STRING:
		s := col.(*array.LargeString)
		return NewValue(s.Value(pos), TypeString)

	case arrow.BINARY:
		b := col.(*array.Binary)
		return NewValue(string(b.Value(pos)), TypeString)

	case arrow.BOOL:
		b := col.(*array.Boolean)
		return NewValue(b.Value(pos), TypeBool)

	case arrow.INT8:
		return NewValue(int64(col.(*array.Int8).Value(pos)), TypeInt)

	case arrow.INT16:
		return NewValue(int64(col.(*array.Int16).Value(pos)), TypeInt)

	case arrow.INT32:
		return NewValue(int64(col.(*array.Int32).Value(pos)), TypeInt)

	case arrow.INT64:
		return NewValue(col.(*array.Int64).Value(pos), TypeInt)

	case arrow.UINT8:
		return NewValue(int64(col.(*array.Uint8).Value(pos)), TypeInt)

	case arrow.UINT16:
		return NewValue(int64(col.(*array.Uint16).Value(pos)), TypeInt)

	case arrow.UINT32:
		return NewValue(int64(col.(*array.Uint32).Value(pos)), TypeInt)

	case arrow.UINT64:
		return NewValue(int64(col.(*array.Uint64).Value(pos)), TypeInt)

	case arrow.FLOAT16:
		return NewValue(float64(col.(*array.Float16).Value(pos).Float32()), TypeFloat)

	case arrow.FLOAT32:
		return NewValue(float64(col.(*array.Float32).Value(pos)), TypeFloat)

	case arrow.FLOAT64:
		return NewValue(col.(*array.Float64).Value(pos), TypeFloat)

	case arrow.DATE32:
		return NewValue(col.(*array.Date32).Value(pos).ToTime(), TypeTime)

	case arrow.DATE64:
		return NewValue(col.(*array.Date64).Value(pos).ToTime(), TypeTime)

	case arrow.TIMESTAMP:
		ts := col.(*array.Timestamp)
		unit := col.DataType().(*arrow.TimestampType).Unit
		return NewValue(ts.Value(pos).ToTime(unit), TypeTime)

	case arrow.DECIMAL128:
		d128 := col.(*array.Decimal128)
		return NewValue(d128.Value(pos).BigInt().String(), TypeString)

	default:
		as := array.NewSlice(col, int64(pos), int64(pos+1))
		defer as.Release()
		return NewValue(fmt.Sprintf("%v", as), TypeString)
	}
}

// Matrix converts the table to a rectangular two-dimensional Arrow record
// whose field order is the table's column order.
//
// The record's data type is chosen from the column types: an all-numeric
// table exports as float64, an all-integer table as int64, an all-boolean
// table as bool; any other mix is rendered to strings. The caller owns the
// returned record and must Release it.
func (t *Table) Matrix() (arrow.Record, error) {
	uniform := TypeNull
	for _, name := range t.names {
		ct := columnType(t.columns[name])
		if ct == TypeNull {
			continue
		}
		switch {
		case uniform == TypeNull:
			uniform = ct
		case uniform == ct:
		case (uniform == TypeInt && ct == TypeFloat) || (uniform == TypeFloat && ct == TypeInt):
			uniform = TypeFloat
		default:
			uniform = TypeString
		}
		if uniform == TypeString {
			break
		}
	}
	if uniform == TypeNull || uniform == TypeTime {
		uniform = TypeString
	}

	fields := make([]arrow.Field, len(t.names))
	for i, name := range t.names {
		fields[i] = arrow.Field{Name: name, Type: arrowType(uniform), Nullable: true}
	}
	return t.buildRecord(fields, func(col string) DataType { return uniform })
}

// ToRecord converts the table to an Arrow record, giving each column its
// natural Arrow type instead of the uniform matrix type. The caller owns
// the returned record and must Release it.
func (t *Table) ToRecord() (arrow.Record, error) {
	fields := make([]arrow.Field, len(t.names))
	types := make(map[string]DataType, len(t.names))
	for i, name := range t.names {
		ct := columnType(t.columns[name])
		if ct == TypeNull {
			ct = TypeString
		}
		types[name] = ct
		fields[i] = arrow.Field{Name: name, Type: arrowType(ct), Nullable: true}
	}
	return t.buildRecord(fields, func(col string) DataType { return types[col] })
}

// arrowType maps a column data type to its Arrow representation.
func arrowType(dt DataType) arrow.DataType {
	switch dt {
	case TypeInt:
		return arrow.PrimitiveTypes.Int64
	case TypeFloat:
		return arrow.PrimitiveTypes.Float64
	case TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case TypeTime:
		return arrow.FixedWidthTypes.Timestamp_ns
	default:
		return arrow.BinaryTypes.String
	}
}

func (t *Table) buildRecord(fields []arrow.Field, fieldType func(col string) DataType) (arrow.Record, error) {
	mem := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(mem, arrow.NewSchema(fields, nil))
	defer builder.Release()

	for i, name := range t.names {
		if err := appendColumn(builder.Field(i), t.columns[name], fieldType(name)); err != nil {
			return nil, fmt.Errorf("failed to build arrow column %q: %w", name, err)
		}
	}
	return builder.NewRecord(), nil
}

func appendColumn(b array.Builder, values []Value, target DataType) error {
	for _, v := range values {
		if v.IsNull {
			b.AppendNull()
			continue
		}
		switch target {
		case TypeInt:
			raw, ok := v.Raw.(int64)
			if !ok {
				return fmt.Errorf("cannot store %s value as int64", v.Type)
			}
			b.(*array.Int64Builder).Append(raw)
		case TypeFloat:
			f, ok := asFloat(v)
			if !ok {
				return fmt.Errorf("cannot store %s value as float64", v.Type)
			}
			b.(*array.Float64Builder).Append(f)
		case TypeBool:
			raw, ok := v.Raw.(bool)
			if !ok {
				return fmt.Errorf("cannot store %s value as bool", v.Type)
			}
			b.(*array.BooleanBuilder).Append(raw)
		case TypeTime:
			raw, ok := v.Raw.(time.Time)
			if !ok {
				return fmt.Errorf("cannot store %s value as timestamp", v.Type)
			}
			b.(*array.TimestampBuilder).Append(arrow.Timestamp(raw.UnixNano()))
		default:
			b.(*array.StringBuilder).Append(v.Formatted)
		}
	}
	return nil
}
