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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// ReadJSON loads a JSON array of objects into a table. A single object is
// treated as a one-row array. Column names are the union of the object
// keys, sorted lexicographically; keys missing from an object produce null
// cells. Nested objects and arrays are kept as their JSON text.
func ReadJSON(r io.Reader) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON data: %w", err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(content, &records); err != nil {
		var single map[string]interface{}
		if err := json.Unmarshal(content, &single); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		records = []map[string]interface{}{single}
	}
	if len(records) == 0 {
		return NewTable(), nil
	}

	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)

	t := NewTable()
	for _, name := range names {
		values := make([]Value, len(records))
		for i, rec := range records {
			raw, ok := rec[name]
			if !ok {
				values[i] = NewNullValue(TypeNull)
				continue
			}
			values[i] = jsonValue(raw)
		}
		if err := t.AddColumn(name, values, nil); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ReadJSONFile loads a JSON file into a table.
func ReadJSONFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func jsonValue(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return NewNullValue(TypeNull)
	case string:
		return NewValue(v, TypeString)
	case bool:
		return NewValue(v, TypeBool)
	case float64:
		return NewValue(v, TypeFloat)
	default:
		// Nested structure: keep the JSON text.
		b, err := json.Marshal(raw)
		if err != nil {
			return NewValue(fmt.Sprintf("%v", raw), TypeString)
		}
		return NewValue(string(b), TypeString)
	}
}

// WriteJSON writes the table as a JSON array of objects, one object per
// row, with the raw cell values preserved.
func WriteJSON(w io.Writer, t *Table) error {
	records := make([]map[string]interface{}, 0, t.Len())
	names := t.Names()
	for i := 0; i < t.Len(); i++ {
		row, err := t.RowValues(i)
		if err != nil {
			return err
		}
		record := make(map[string]interface{}, len(names))
		for j, name := range names {
			if row[j].IsNull {
				record[name] = nil
			} else {
				record[name] = row[j].Raw
			}
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteJSONFile writes the table to a JSON file.
func WriteJSONFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer f.Close()
	return WriteJSON(f, t)
}
