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
	"strconv"
	"strings"
	"time"
)

// ColumnClass is the outcome of the per-column classifier.
type ColumnClass int

const (
	// ClassText means the column stays as delivered.
	ClassText ColumnClass = iota
	// ClassNumeric means every non-null value is numeric.
	ClassNumeric
	// ClassDate means the column name is date-like and every non-null
	// value parses as a date.
	ClassDate
)

// String returns the string representation of a ColumnClass.
func (c ColumnClass) String() string {
	switch c {
	case ClassText:
		return "Text"
	case ClassNumeric:
		return "Numeric"
	case ClassDate:
		return "Date"
	default:
		return "Unknown"
	}
}

// dateLayouts are the accepted input formats, tried in order. Day-first
// forms win for ambiguous dates; month-first is the fallback for values
// like 12/25/2024 that cannot be day-first. Unpadded layouts accept
// padded input too.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2-1-2006",
	"2/1/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2/1/2006 15:04:05",
	time.RFC3339,
}

// Classify determines the class of a column from its name and values.
// Classification is all-or-nothing: a single non-conforming value keeps
// the column as ClassText. Null values never veto a class. A column with
// only null values is ClassText.
func Classify(name string, values []Value) ColumnClass {
	if dateLikeName(name) && uniform(values, func(v Value) bool {
		_, ok := parseDate(v)
		return ok
	}) {
		return ClassDate
	}
	if uniform(values, func(v Value) bool {
		_, ok := parseNumber(v)
		return ok
	}) {
		return ClassNumeric
	}
	return ClassText
}

// inferColumn applies Classify to raw values and coerces them into a
// typed Column. Coercion failures cannot occur after classification, so
// the result is deterministic.
func inferColumn(name string, values []Value) Column {
	switch Classify(name, values) {
	case ClassDate:
		return coerceDates(name, values)
	case ClassNumeric:
		return coerceNumbers(name, values)
	}
	return Column{Name: name, Type: columnBaseType(values), Values: values}
}

// uniform reports whether all non-null values satisfy ok, with at least
// one non-null value present.
func uniform(values []Value, ok func(Value) bool) bool {
	seen := false
	for _, v := range values {
		if v.IsNull {
			continue
		}
		if !ok(v) {
			return false
		}
		seen = true
	}
	return seen
}

// dateLikeName reports whether a column name suggests date content.
// "tanggal" is the Indonesian word for date.
func dateLikeName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "date") || strings.Contains(lower, "tanggal")
}

// parseNumber extracts a numeric value from a cell.
func parseNumber(v Value) (float64, bool) {
	switch raw := v.Raw.(type) {
	case float64:
		return raw, true
	case int64:
		return float64(raw), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// parseDate extracts a date from a string cell.
func parseDate(v Value) (time.Time, bool) {
	s, ok := v.Raw.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// coerceNumbers converts a classified numeric column into TypeInt when
// every value is integral, TypeFloat otherwise.
func coerceNumbers(name string, values []Value) Column {
	integral := true
	parsed := make([]float64, len(values))
	for i, v := range values {
		if v.IsNull {
			continue
		}
		f, _ := parseNumber(v)
		parsed[i] = f
		if f != float64(int64(f)) {
			integral = false
		}
	}

	out := make([]Value, len(values))
	if integral {
		for i, v := range values {
			if v.IsNull {
				out[i] = NewNullValue(TypeInt)
				continue
			}
			out[i] = NewValue(int64(parsed[i]), TypeInt)
		}
		return Column{Name: name, Type: TypeInt, Values: out}
	}
	for i, v := range values {
		if v.IsNull {
			out[i] = NewNullValue(TypeFloat)
			continue
		}
		out[i] = NewValue(parsed[i], TypeFloat)
	}
	return Column{Name: name, Type: TypeFloat, Values: out}
}

// coerceDates converts a classified date column into TypeDate.
func coerceDates(name string, values []Value) Column {
	out := make([]Value, len(values))
	for i, v := range values {
		if v.IsNull {
			out[i] = NewNullValue(TypeDate)
			continue
		}
		d, _ := parseDate(v)
		out[i] = NewValue(d, TypeDate)
	}
	return Column{Name: name, Type: TypeDate, Values: out}
}

// columnBaseType picks the display type for an uncoerced column:
// TypeBool when every non-null value is boolean, TypeString otherwise.
func columnBaseType(values []Value) DataType {
	if uniform(values, func(v Value) bool {
		_, ok := v.Raw.(bool)
		return ok
	}) {
		return TypeBool
	}
	return TypeString
}
