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

// Package data provides an ordered, heterogeneous collection of labelled
// data series: the Table, plus its construction, selection, and export
// operations.
package data

import (
	"fmt"
	"reflect"
	"time"
)

// DataType represents the type of data in a cell or column.
type DataType int

const (
	// TypeNull represents a missing value.
	TypeNull DataType = iota
	// TypeString represents string data.
	TypeString
	// TypeInt represents integer data (any size).
	TypeInt
	// TypeFloat represents floating-point data (any precision).
	TypeFloat
	// TypeBool represents boolean data.
	TypeBool
	// TypeTime represents date or timestamp data.
	TypeTime
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeNull:
		return "Null"
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeTime:
		return "Time"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// Value is a typed container for cell values.
// It holds the raw value, type information, and a pre-formatted string.
type Value struct {
	// Raw holds the underlying value.
	// The type depends on the Type field.
	Raw interface{}

	// Type indicates the data type of this value.
	Type DataType

	// IsNull indicates whether this value is null/nil.
	IsNull bool

	// Formatted is a pre-formatted string representation.
	Formatted string
}

// NewValue creates a new Value from a raw value and type.
func NewValue(raw interface{}, dataType DataType) Value {
	if raw == nil {
		return NewNullValue(dataType)
	}
	return Value{
		Raw:       raw,
		Type:      dataType,
		Formatted: formatRaw(raw, dataType),
	}
}

// NewNullValue creates a null value of the specified type.
func NewNullValue(dataType DataType) Value {
	return Value{
		Raw:    nil,
		Type:   dataType,
		IsNull: true,
	}
}

// formatRaw converts a raw value to a formatted string.
func formatRaw(raw interface{}, dataType DataType) string {
	if raw == nil {
		return ""
	}
	if dataType == TypeTime {
		if t, ok := raw.(time.Time); ok {
			return t.Format(time.RFC3339)
		}
	}
	return fmt.Sprintf("%v", raw)
}

// inferValue converts an arbitrary scalar into a Value.
// Slices, arrays, and maps are rejected: a column cell must be scalar.
func inferValue(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return NewNullValue(TypeNull), nil
	case Value:
		return v, nil
	case string:
		return NewValue(v, TypeString), nil
	case bool:
		return NewValue(v, TypeBool), nil
	case int:
		return NewValue(int64(v), TypeInt), nil
	case int8:
		return NewValue(int64(v), TypeInt), nil
	case int16:
		return NewValue(int64(v), TypeInt), nil
	case int32:
		return NewValue(int64(v), TypeInt), nil
	case int64:
		return NewValue(v, TypeInt), nil
	case uint:
		return NewValue(int64(v), TypeInt), nil
	case uint8:
		return NewValue(int64(v), TypeInt), nil
	case uint16:
		return NewValue(int64(v), TypeInt), nil
	case uint32:
		return NewValue(int64(v), TypeInt), nil
	case uint64:
		return NewValue(int64(v), TypeInt), nil
	case float32:
		return NewValue(float64(v), TypeFloat), nil
	case float64:
		return NewValue(v, TypeFloat), nil
	case time.Time:
		return NewValue(v, TypeTime), nil
	}

	switch reflect.ValueOf(raw).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return Value{}, fmt.Errorf("%w: nested %T value", ErrNotOneDimensional, raw)
	}
	return NewValue(fmt.Sprintf("%v", raw), TypeString), nil
}

// columnType determines the dominant type of a column, ignoring nulls.
// Columns mixing integers and floats widen to float; any other mix is string.
func columnType(values []Value) DataType {
	result := TypeNull
	for _, v := range values {
		if v.IsNull {
			continue
		}
		switch {
		case result == TypeNull:
			result = v.Type
		case result == v.Type:
		case (result == TypeInt && v.Type == TypeFloat) || (result == TypeFloat && v.Type == TypeInt):
			result = TypeFloat
		default:
			return TypeString
		}
	}
	return result
}

// asFloat reports the value as a float64 where its type permits.
func asFloat(v Value) (float64, bool) {
	if v.IsNull {
		return 0, false
	}
	switch raw := v.Raw.(type) {
	case int64:
		return float64(raw), true
	case float64:
		return raw, true
	}
	return 0, false
}

// Metadata holds per-column metadata as an arbitrary string-keyed mapping.
type Metadata map[string]interface{}

// clone returns a copy of the metadata mapping.
func (m Metadata) clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
