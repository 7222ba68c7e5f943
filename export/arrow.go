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

package export

import (
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"gsdash/dataset"
)

// ToArrow converts a dataset into an Arrow table. The caller must
// Release the result.
func ToArrow(t *dataset.Table) (arrow.Table, error) {
	pool := memory.NewGoAllocator()

	fields := make([]arrow.Field, t.ColumnCount())
	columns := make([]arrow.Column, t.ColumnCount())

	for c := 0; c < t.ColumnCount(); c++ {
		name, _ := t.ColumnName(c)
		dt, _ := t.ColumnType(c)
		values, _ := t.ColumnValues(c)

		field := arrow.Field{Name: name, Type: arrowType(dt), Nullable: true}
		fields[c] = field

		builder := array.NewBuilder(pool, field.Type)
		for _, v := range values {
			if err := appendValue(builder, v); err != nil {
				builder.Release()
				return nil, err
			}
		}
		arr := builder.NewArray()
		builder.Release()

		chunked := arrow.NewChunked(field.Type, []arrow.Array{arr})
		arr.Release()
		columns[c] = *arrow.NewColumn(field, chunked)
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewTable(schema, columns, int64(t.RowCount())), nil
}

// arrowType maps a dataset type to its Arrow equivalent.
func arrowType(dt dataset.DataType) arrow.DataType {
	switch dt {
	case dataset.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case dataset.TypeFloat:
		return arrow.PrimitiveTypes.Float64
	case dataset.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case dataset.TypeDate:
		return arrow.FixedWidthTypes.Date32
	default:
		return arrow.BinaryTypes.String
	}
}

// appendValue appends a typed dataset value to an Arrow builder.
func appendValue(builder array.Builder, v dataset.Value) error {
	if v.IsNull {
		builder.AppendNull()
		return nil
	}

	switch b := builder.(type) {
	case *array.StringBuilder:
		b.Append(v.Formatted)
	case *array.Int64Builder:
		raw, ok := v.Raw.(int64)
		if !ok {
			return fmt.Errorf("expected int64 cell, got %T", v.Raw)
		}
		b.Append(raw)
	case *array.Float64Builder:
		raw, ok := v.Raw.(float64)
		if !ok {
			return fmt.Errorf("expected float64 cell, got %T", v.Raw)
		}
		b.Append(raw)
	case *array.BooleanBuilder:
		raw, ok := v.Raw.(bool)
		if !ok {
			return fmt.Errorf("expected bool cell, got %T", v.Raw)
		}
		b.Append(raw)
	case *array.Date32Builder:
		raw, ok := v.Raw.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time cell, got %T", v.Raw)
		}
		b.Append(arrow.Date32FromTime(raw))
	default:
		builder.AppendNull()
	}
	return nil
}

// WriteParquetFile writes the dataset to a Snappy-compressed Parquet file.
func WriteParquetFile(t *dataset.Table, filePath string) error {
	table, err := ToArrow(t)
	if err != nil {
		return err
	}
	defer table.Release()

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), file, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	defer writer.Close()

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	return nil
}
