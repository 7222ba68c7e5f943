// Copyright 2025 Magnus Pierre
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

package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// CompOp is a comparison operator in a filter expression.
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

// Expression represents a single comparison against one column.
type Expression struct {
	ColumnName string
	Operator   CompOp
	Value      string
}

// LogicOp represents AND/OR operations between expressions.
type LogicOp int

const (
	LogicAND LogicOp = iota
	LogicOR
)

// Query represents a complete filter with multiple expressions.
type Query struct {
	Expressions []Expression
	LogicOps    []LogicOp
}

// ParseQuery parses a filter string like
//
//	Kota = Jakarta AND Penjualan > 5000000
//
// into a Query. A bare term with no operator becomes a contains search
// across all columns. Returns (nil, nil) for a blank string.
func (t *Table) ParseQuery(queryStr string) (*Query, error) {
	if strings.TrimSpace(queryStr) == "" {
		return nil, nil
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
		expr, err := t.parseExpression(part.text)
		if err != nil {
			return nil, err
		}
		query.Expressions = append(query.Expressions, expr)
	}

	if len(query.LogicOps) != len(query.Expressions)-1 {
		return nil, fmt.Errorf("%w: mismatched expressions and operators", ErrInvalidFilter)
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
		}
		current = ""
	}

	for i < len(query) {
		if word, n := logicWordAt(query, i); n > 0 {
			flush()
			parts = append(parts, queryPart{text: word, isOperator: true})
			i += n
			continue
		}
		current += string(query[i])
		i++
	}
	flush()
	return parts
}

// logicWordAt reports a whole-word AND/OR starting at position i.
func logicWordAt(query string, i int) (string, int) {
	for _, word := range []string{"AND", "OR"} {
		n := len(word)
		if i+n > len(query) || !strings.EqualFold(query[i:i+n], word) {
			continue
		}
		before := i == 0 || isWhitespace(query[i-1])
		after := i+n >= len(query) || isWhitespace(query[i+n])
		if before && after {
			return word, n
		}
	}
	return "", 0
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseExpression parses a single expression like "column = value".
func (t *Table) parseExpression(exprStr string) (Expression, error) {
	exprStr = strings.TrimSpace(exprStr)

	// Longest symbols first so >= matches before =.
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

		if _, err := t.ColumnIndex(columnName); err != nil {
			return Expression{}, fmt.Errorf("%w: unknown column %q", ErrInvalidFilter, columnName)
		}
		return Expression{ColumnName: columnName, Operator: opInfo.op, Value: value}, nil
	}

	// No operator: contains search across all columns.
	return Expression{Operator: OpContains, Value: exprStr}, nil
}

// FilterRows evaluates a query against every row and returns the indices
// of matching rows. A nil query matches every row.
func (t *Table) FilterRows(query *Query) []int {
	matched := make([]int, 0, t.RowCount())
	for r := 0; r < t.RowCount(); r++ {
		if t.evaluateRow(query, r) {
			matched = append(matched, r)
		}
	}
	return matched
}

func (t *Table) evaluateRow(query *Query, row int) bool {
	if query == nil || len(query.Expressions) == 0 {
		return true
	}

	result := t.evaluateExpression(query.Expressions[0], row)
	for i := 0; i < len(query.LogicOps); i++ {
		next := t.evaluateExpression(query.Expressions[i+1], row)
		switch query.LogicOps[i] {
		case LogicAND:
			result = result && next
		case LogicOR:
			result = result || next
		}
	}
	return result
}

func (t *Table) evaluateExpression(expr Expression, row int) bool {
	// No column name: search all columns.
	if expr.ColumnName == "" && expr.Operator == OpContains {
		term := strings.ToLower(expr.Value)
		for c := range t.cols {
			if strings.Contains(strings.ToLower(t.cols[c].Values[row].Formatted), term) {
				return true
			}
		}
		return false
	}

	col, err := t.ColumnIndex(expr.ColumnName)
	if err != nil {
		return false
	}
	cell := t.cols[col].Values[row]
	if cell.IsNull {
		return false
	}

	switch expr.Operator {
	case OpEqual:
		return strings.EqualFold(cell.Formatted, expr.Value)
	case OpNotEqual:
		return !strings.EqualFold(cell.Formatted, expr.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(cell.Formatted), strings.ToLower(expr.Value))
	default:
		return compareOrdered(cell, expr.Value, expr.Operator)
	}
}

// compareOrdered compares numerically when both sides are numbers,
// lexicographically otherwise.
func compareOrdered(cell Value, compareValue string, op CompOp) bool {
	target, err := strconv.ParseFloat(strings.TrimSpace(compareValue), 64)
	if f, ok := cell.Float(); ok && err == nil {
		return orderedResult(op, compare(f, target))
	}
	cmp := strings.Compare(strings.ToLower(cell.Formatted), strings.ToLower(compareValue))
	return orderedResult(op, cmp)
}

func compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func orderedResult(op CompOp, cmp int) bool {
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
