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
	"strconv"
	"strings"
)

// CompOp is a comparison operator in a query expression.
type CompOp int

const (
	OpEqual CompOp = iota
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpContains
)

// LogicOp joins expressions in a query.
type LogicOp int

const (
	LogicAND LogicOp = iota
	LogicOR
)

// Expression is a single comparison against one column, or against all
// columns when ColumnName is empty (bare-term contains search).
type Expression struct {
	ColumnName string
	Operator   CompOp
	Value      string
}

// Query is a parsed filter: expressions joined by AND/OR operators.
type Query struct {
	Expressions []Expression
	LogicOps    []LogicOp
}

// ParseQuery parses a filter expression such as
//
//	age > 25 AND name ~ al
//
// against the given column names. Comparison operators are =, !=, >, <,
// >=, <=, and ~ (contains); expressions chain with AND/OR. A bare term
// with no operator matches rows where any column contains it. Column names
// are matched case-insensitively; an unknown column fails with
// ErrColumnNotFound.
func ParseQuery(queryStr string, columns []string) (*Query, error) {
	if strings.TrimSpace(queryStr) == "" {
		return nil, nil
	}

	known := make(map[string]bool, len(columns))
	for _, name := range columns {
		known[strings.ToLower(name)] = true
	}

	query := &Query{}
	for _, part := range splitByLogicOps(queryStr) {
		if part.isOperator {
			if strings.EqualFold(part.text, "AND") {
				query.LogicOps = append(query.LogicOps, LogicAND)
			} else {
				query.LogicOps = append(query.LogicOps, LogicOR)
			}
			continue
		}
		expr, err := parseExpression(part.text, known)
		if err != nil {
			return nil, err
		}
		query.Expressions = append(query.Expressions, expr)
	}

	if len(query.Expressions) == 0 {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidQuery)
	}
	if len(query.LogicOps) != len(query.Expressions)-1 {
		return nil, fmt.Errorf("%w: mismatched expressions and operators", ErrInvalidQuery)
	}
	return query, nil
}

type queryPart struct {
	text       string
	isOperator bool
}

// splitByLogicOps splits a query by AND/OR while preserving the operators.
func splitByLogicOps(query string) []queryPart {
	parts := make([]queryPart, 0)
	current := ""
	i := 0

	flush := func() {
		if strings.TrimSpace(current) != "" {
			parts = append(parts, queryPart{text: strings.TrimSpace(current)})
			current = ""
		}
	}

	for i < len(query) {
		if i+3 <= len(query) && strings.EqualFold(query[i:i+3], "AND") {
			if (i == 0 || isWhitespace(query[i-1])) && (i+3 >= len(query) || isWhitespace(query[i+3])) {
				flush()
				parts = append(parts, queryPart{text: "AND", isOperator: true})
				i += 3
				continue
			}
		}
		if i+2 <= len(query) && strings.EqualFold(query[i:i+2], "OR") {
			if (i == 0 || isWhitespace(query[i-1])) && (i+2 >= len(query) || isWhitespace(query[i+2])) {
				flush()
				parts = append(parts, queryPart{text: "OR", isOperator: true})
				i += 2
				continue
			}
		}
		current += string(query[i])
		i++
	}
	flush()
	return parts
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseExpression parses a single expression like "column = value".
func parseExpression(exprStr string, known map[string]bool) (Expression, error) {
	exprStr = strings.TrimSpace(exprStr)

	// Longer operators first, so >= matches before =.
	operators := []struct {
		op     CompOp
		symbol string
	}{
		{OpGreaterEqual, ">="},
		{OpLessEqual, "<="},
		{OpNotEqual, "!="},
		{OpEqual, "="},
		{OpGreater, ">"},
		{OpLess, "<"},
		{OpContains, "~"},
	}

	for _, opInfo := range operators {
		idx := strings.Index(exprStr, opInfo.symbol)
		if idx <= 0 {
			continue
		}
		columnName := strings.TrimSpace(exprStr[:idx])
		value := strings.TrimSpace(exprStr[idx+len(opInfo.symbol):])
		value = strings.Trim(value, "\"'")

		if !known[strings.ToLower(columnName)] {
			return Expression{}, fmt.Errorf("%w: %q in query", ErrColumnNotFound, columnName)
		}
		return Expression{ColumnName: columnName, Operator: opInfo.op, Value: value}, nil
	}

	// No operator: contains search across all columns.
	return Expression{Operator: OpContains, Value: exprStr}, nil
}

// Where returns a new table containing the rows matching the filter
// expression, preserving column order and metadata.
func (t *Table) Where(expr string) (*Table, error) {
	query, err := ParseQuery(expr, t.names)
	if err != nil {
		return nil, err
	}
	if query == nil {
		return t.Clone(), nil
	}

	indices := make([]int, 0)
	for i := 0; i < t.Len(); i++ {
		row, err := t.RowValues(i)
		if err != nil {
			return nil, err
		}
		if query.Matches(row, t.names) {
			indices = append(indices, i)
		}
	}
	return t.Take(indices)
}

// Matches evaluates the query against one row of values.
func (q *Query) Matches(row []Value, columns []string) bool {
	if q == nil || len(q.Expressions) == 0 {
		return true
	}

	result := evaluateExpression(q.Expressions[0], row, columns)
	for i := 0; i < len(q.LogicOps); i++ {
		next := evaluateExpression(q.Expressions[i+1], row, columns)
		switch q.LogicOps[i] {
		case LogicAND:
			result = result && next
		case LogicOR:
			result = result || next
		}
	}
	return result
}

func evaluateExpression(expr Expression, row []Value, columns []string) bool {
	if expr.ColumnName == "" && expr.Operator == OpContains {
		term := strings.ToLower(expr.Value)
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell.Formatted), term) {
				return true
			}
		}
		return false
	}

	colIdx := -1
	for i, name := range columns {
		if strings.EqualFold(name, expr.ColumnName) {
			colIdx = i
			break
		}
	}
	if colIdx < 0 || colIdx >= len(row) {
		return false
	}
	cell := row[colIdx]

	switch expr.Operator {
	case OpEqual:
		return strings.EqualFold(cell.Formatted, expr.Value)
	case OpNotEqual:
		return !strings.EqualFold(cell.Formatted, expr.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(cell.Formatted), strings.ToLower(expr.Value))
	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return compareOrdered(cell, expr.Value, expr.Operator)
	}
	return false
}

// compareOrdered compares numerically when both sides are numbers, falling
// back to case-insensitive lexicographic comparison.
func compareOrdered(cell Value, compareValue string, op CompOp) bool {
	lhs, lok := asFloat(cell)
	if !lok {
		lhs, lok = parseFloat(cell.Formatted)
	}
	rhs, rok := parseFloat(compareValue)

	if lok && rok {
		switch op {
		case OpGreater:
			return lhs > rhs
		case OpLess:
			return lhs < rhs
		case OpGreaterEqual:
			return lhs >= rhs
		case OpLessEqual:
			return lhs <= rhs
		}
		return false
	}

	cmp := strings.Compare(strings.ToLower(cell.Formatted), strings.ToLower(compareValue))
	switch op {
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLessEqual:
		return cmp <= 0
	}
	return false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}
