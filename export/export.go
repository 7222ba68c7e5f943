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

// Package export writes datasets to interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"gsdash/dataset"
)

// Format represents the supported export formats.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatParquet
	FormatXLSX
)

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	case FormatParquet:
		return ".parquet"
	case FormatXLSX:
		return ".xlsx"
	default:
		return ""
	}
}

// ToFile writes the dataset to filePath in the given format.
func ToFile(t *dataset.Table, format Format, filePath string) error {
	switch format {
	case FormatCSV:
		return writeFile(t, filePath, WriteCSV)
	case FormatJSON:
		return writeFile(t, filePath, WriteJSON)
	case FormatParquet:
		return WriteParquetFile(t, filePath)
	case FormatXLSX:
		return WriteXLSXFile(t, filePath)
	default:
		return fmt.Errorf("unsupported export format %d", format)
	}
}

func writeFile(t *dataset.Table, filePath string, write func(io.Writer, *dataset.Table) error) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()
	return write(file, t)
}

// WriteCSV writes the dataset as delimited text: a header row of column
// names followed by one row per record, using each cell's canonical
// formatting. The output re-parses to row/column equality with the
// dataset, modulo type widening to string.
func WriteCSV(w io.Writer, t *dataset.Table) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for r := 0; r < t.RowCount(); r++ {
		values, err := t.Row(r)
		if err != nil {
			return err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = v.Formatted
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the dataset as an indented JSON array of records,
// preserving value types.
func WriteJSON(w io.Writer, t *dataset.Table) error {
	names := t.ColumnNames()
	records := make([]map[string]interface{}, 0, t.RowCount())

	for r := 0; r < t.RowCount(); r++ {
		values, err := t.Row(r)
		if err != nil {
			return err
		}
		record := make(map[string]interface{}, len(values))
		for i, v := range values {
			record[names[i]] = typedValue(v)
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

// typedValue returns the JSON representation for a cell (preserves types).
func typedValue(v dataset.Value) interface{} {
	if v.IsNull {
		return nil
	}
	if d, ok := v.Raw.(time.Time); ok {
		return d.Format(dataset.DateLayout)
	}
	return v.Raw
}

// WriteXLSXFile writes the dataset to an Excel workbook with a single
// sheet named Data.
func WriteXLSXFile(t *dataset.Table, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Data"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for c, name := range t.ColumnNames() {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for r := 0; r < t.RowCount(); r++ {
		values, err := t.Row(r)
		if err != nil {
			return err
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, xlsxValue(v)); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save xlsx: %w", err)
	}
	return nil
}

// xlsxValue picks the cell representation for the Excel writer. Dates
// are written as their canonical strings to avoid serial-number styling.
func xlsxValue(v dataset.Value) interface{} {
	if v.IsNull {
		return ""
	}
	if _, ok := v.Raw.(time.Time); ok {
		return v.Formatted
	}
	return v.Raw
}
