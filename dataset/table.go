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

import "strings"

// Column holds a named, typed sequence of values.
type Column struct {
	Name   string
	Type   DataType
	Values []Value
}

// Table is an immutable, column-major tabular dataset.
// Every column holds the same number of values; short source rows are
// padded with nulls so the column set is identical across all rows.
// A Table is safe for concurrent reads.
type Table struct {
	cols  []Column
	index map[string]int // lower-cased column name -> position
}

// New builds a Table from a header row and raw records, then applies
// per-column type inference. Raw cell values may be strings, numbers or
// booleans as delivered by the spreadsheet API; nil and empty-string
// cells become nulls.
func New(header []string, records [][]interface{}) *Table {
	t := &Table{
		cols:  make([]Column, len(header)),
		index: make(map[string]int, len(header)),
	}

	for c, name := range header {
		values := make([]Value, len(records))
		for r, rec := range records {
			var raw interface{}
			if c < len(rec) {
				raw = rec[c]
			}
			values[r] = rawValue(raw)
		}
		t.cols[c] = inferColumn(name, values)
		t.index[strings.ToLower(name)] = c
	}
	return t
}

// rawValue wraps an untyped spreadsheet cell into an uncoerced Value.
func rawValue(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return NewNullValue(TypeString)
	case string:
		if v == "" {
			return NewNullValue(TypeString)
		}
		return NewValue(v, TypeString)
	case bool:
		return NewValue(v, TypeBool)
	case float64:
		return NewValue(v, TypeFloat)
	case int64:
		return NewValue(v, TypeInt)
	case int:
		return NewValue(int64(v), TypeInt)
	default:
		return NewValue(v, TypeString)
	}
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.cols)
}

// Empty reports whether the table holds no rows.
func (t *Table) Empty() bool {
	return t.RowCount() == 0
}

// ColumnName returns the name of the column at the given index.
// Returns ErrInvalidColumn if col is out of range.
func (t *Table) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(t.cols) {
		return "", ErrInvalidColumn
	}
	return t.cols[col].Name, nil
}

// ColumnType returns the data type of the column at the given index.
// Returns ErrInvalidColumn if col is out of range.
func (t *Table) ColumnType(col int) (DataType, error) {
	if col < 0 || col >= len(t.cols) {
		return TypeString, ErrInvalidColumn
	}
	return t.cols[col].Type, nil
}

// ColumnNames returns all column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column (case-insensitive).
// Returns ErrColumnNotFound if no such column exists.
func (t *Table) ColumnIndex(name string) (int, error) {
	if i, ok := t.index[strings.ToLower(name)]; ok {
		return i, nil
	}
	return -1, ErrColumnNotFound
}

// Cell returns the value at the specified row and column.
// Returns ErrInvalidRow or ErrInvalidColumn when out of range.
func (t *Table) Cell(row, col int) (Value, error) {
	if col < 0 || col >= len(t.cols) {
		return Value{}, ErrInvalidColumn
	}
	if row < 0 || row >= len(t.cols[col].Values) {
		return Value{}, ErrInvalidRow
	}
	return t.cols[col].Values[row], nil
}

// Row returns all values for the specified row.
// Returns ErrInvalidRow if row is out of range.
func (t *Table) Row(row int) ([]Value, error) {
	if row < 0 || row >= t.RowCount() {
		return nil, ErrInvalidRow
	}
	values := make([]Value, len(t.cols))
	for c := range t.cols {
		values[c] = t.cols[c].Values[row]
	}
	return values, nil
}

// ColumnValues returns the values of the column at the given index.
func (t *Table) ColumnValues(col int) ([]Value, error) {
	if col < 0 || col >= len(t.cols) {
		return nil, ErrInvalidColumn
	}
	return t.cols[col].Values, nil
}

// NumericColumns returns the names of all Int and Float columns in order.
func (t *Table) NumericColumns() []string {
	names := make([]string, 0, len(t.cols))
	for _, c := range t.cols {
		if c.Type == TypeInt || c.Type == TypeFloat {
			names = append(names, c.Name)
		}
	}
	return names
}

// TextColumns returns the names of all String columns in order.
func (t *Table) TextColumns() []string {
	names := make([]string, 0, len(t.cols))
	for _, c := range t.cols {
		if c.Type == TypeString {
			names = append(names, c.Name)
		}
	}
	return names
}
