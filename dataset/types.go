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

// Package dataset provides the in-memory tabular model for spreadsheet data.
package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// DataType represents the type of data in a column.
type DataType int

const (
	// TypeString represents string data.
	TypeString DataType = iota
	// TypeInt represents integer data.
	TypeInt
	// TypeFloat represents floating-point data.
	TypeFloat
	// TypeBool represents boolean data.
	TypeBool
	// TypeDate represents date data (without time).
	TypeDate
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeDate:
		return "Date"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// DateLayout is the canonical format used when rendering date values.
const DateLayout = "2006-01-02"

// Value is a typed container for cell values.
// It holds the raw value, type information, and a pre-formatted string for display.
type Value struct {
	// Raw holds the underlying value.
	// The type depends on the DataType field: string for TypeString,
	// int64 for TypeInt, float64 for TypeFloat, bool for TypeBool,
	// time.Time for TypeDate.
	Raw interface{}

	// Type indicates the data type of this value.
	Type DataType

	// IsNull indicates whether this value is null/nil.
	IsNull bool

	// Formatted is a pre-formatted string representation for display.
	// This improves UI performance by avoiding repeated formatting.
	Formatted string
}

// NewValue creates a new Value from a raw value and type.
func NewValue(raw interface{}, dataType DataType) Value {
	if raw == nil {
		return Value{
			Raw:       nil,
			Type:      dataType,
			IsNull:    true,
			Formatted: "",
		}
	}

	return Value{
		Raw:       raw,
		Type:      dataType,
		IsNull:    false,
		Formatted: formatRaw(raw, dataType),
	}
}

// NewNullValue creates a null value of the specified type.
func NewNullValue(dataType DataType) Value {
	return Value{
		Raw:       nil,
		Type:      dataType,
		IsNull:    true,
		Formatted: "",
	}
}

// Float returns the value as a float64 when the value is numeric.
func (v Value) Float() (float64, bool) {
	if v.IsNull {
		return 0, false
	}
	switch raw := v.Raw.(type) {
	case int64:
		return float64(raw), true
	case float64:
		return raw, true
	default:
		return 0, false
	}
}

// formatRaw converts a raw value to its canonical string representation.
func formatRaw(raw interface{}, dataType DataType) string {
	switch dataType {
	case TypeInt:
		if i, ok := raw.(int64); ok {
			return strconv.FormatInt(i, 10)
		}
	case TypeFloat:
		if f, ok := raw.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case TypeBool:
		if b, ok := raw.(bool); ok {
			return strconv.FormatBool(b)
		}
	case TypeDate:
		if t, ok := raw.(time.Time); ok {
			return t.Format(DateLayout)
		}
	}
	return fmt.Sprintf("%v", raw)
}
