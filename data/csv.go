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
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVConfig controls CSV ingestion.
type CSVConfig struct {
	// Delimiter is the field separator. Zero means detect it from the
	// first line.
	Delimiter rune

	// Convert attempts numeric coercion per column: a column becomes
	// float64 only when every value parses, otherwise it silently stays
	// string.
	Convert bool

	// TrimSpace removes leading and trailing whitespace from each cell.
	TrimSpace bool
}

// DefaultCSVConfig returns the default CSV configuration.
func DefaultCSVConfig() CSVConfig {
	return CSVConfig{TrimSpace: true}
}

// ReadCSVFile loads a CSV file into a table.
func ReadCSVFile(path string, cfg CSVConfig) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, cfg)
}

// ReadCSV loads delimited text into a table. The first row provides the
// column names; every cell is read as a string unless cfg.Convert is set.
func ReadCSV(r io.Reader, cfg CSVConfig) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return NewTable(), nil
	}

	sep := cfg.Delimiter
	if sep == 0 {
		sep = detectSeparator(content)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = sep
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV data: %w", err)
	}
	if len(rows) == 0 {
		return NewTable(), nil
	}

	header := rows[0]
	records := rows[1:]

	t := NewTable()
	for j, name := range header {
		if cfg.TrimSpace {
			name = strings.TrimSpace(name)
		}
		values := make([]Value, len(records))
		for i, row := range records {
			cell := row[j]
			if cfg.TrimSpace {
				cell = strings.TrimSpace(cell)
			}
			values[i] = NewValue(cell, TypeString)
		}
		if err := t.AddColumn(t.uniqueName(name), values, nil); err != nil {
			return nil, err
		}
	}

	if cfg.Convert {
		for _, name := range t.names {
			convertNumeric(t.columns[name])
		}
	}
	return t, nil
}

// detectSeparator picks the most frequent candidate separator on the first
// line, defaulting to comma.
func detectSeparator(content []byte) rune {
	firstLine := content
	if idx := bytes.IndexByte(content, '\n'); idx >= 0 {
		firstLine = content[:idx]
	}
	line := string(firstLine)

	separators := map[rune]int{
		',':  strings.Count(line, ","),
		';':  strings.Count(line, ";"),
		'\t': strings.Count(line, "\t"),
		'|':  strings.Count(line, "|"),
	}

	maxCount := 0
	detected := ','
	for sep, count := range separators {
		if count > maxCount {
			maxCount = count
			detected = sep
		}
	}
	return detected
}

// convertNumeric coerces a string column to float64 in place. If any value
// fails to parse the column is left untouched.
func convertNumeric(values []Value) {
	converted := make([]Value, len(values))
	for i, v := range values {
		if v.IsNull {
			converted[i] = v
			continue
		}
		f, err := strconv.ParseFloat(v.Formatted, 64)
		if err != nil {
			return
		}
		converted[i] = NewValue(f, TypeFloat)
	}
	copy(values, converted)
}

// WriteCSV writes the table as delimited text, one header row followed by
// one row per table row.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(t.Names()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		row, err := t.RowValues(i)
		if err != nil {
			return err
		}
		fields := make([]string, len(row))
		for j, v := range row {
			fields[j] = v.Formatted
		}
		if err := writer.Write(fields); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// WriteCSVFile writes the table to a CSV file.
func WriteCSVFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, t)
}
