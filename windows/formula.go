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

package windows

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"gsdash/dataset"
)

// EvalFormula evaluates a Go expression over the loaded dataset with the
// yaegi interpreter and returns the printed result. The expression sees
// the dataset through a small built-in package:
//
//	Col("Penjualan")   numeric column as []float64
//	Text("Produk")     column as []string
//	Rows()             row count
//	Sum, Mean, Min, Max over []float64
//
// Example: Sum(Col("Penjualan")) / float64(Rows())
func EvalFormula(t *dataset.Table, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", fmt.Errorf("empty expression")
	}

	var out bytes.Buffer
	i := interp.New(interp.Options{Stdout: &out, Stderr: &out})

	if err := i.Use(stdlib.Symbols); err != nil {
		return "", fmt.Errorf("loading stdlib: %w", err)
	}
	if err := i.Use(datasetSymbols(t)); err != nil {
		return "", fmt.Errorf("loading dataset symbols: %w", err)
	}

	wrapped := fmt.Sprintf(`package main

import (
	"fmt"
	. "gsdash/data"
)

func main() {
	fmt.Println(%s)
}
`, expr)

	if _, err := i.Eval(wrapped); err != nil {
		return "", err
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

// datasetSymbols exposes the dataset to interpreted code as package
// gsdash/data.
func datasetSymbols(t *dataset.Table) interp.Exports {
	colFn := func(name string) []float64 {
		idx, err := t.ColumnIndex(name)
		if err != nil {
			return nil
		}
		values, _ := t.ColumnValues(idx)
		data := make([]float64, 0, len(values))
		for _, v := range values {
			if f, ok := v.Float(); ok {
				data = append(data, f)
			}
		}
		return data
	}

	textFn := func(name string) []string {
		idx, err := t.ColumnIndex(name)
		if err != nil {
			return nil
		}
		values, _ := t.ColumnValues(idx)
		data := make([]string, len(values))
		for i, v := range values {
			data[i] = v.Formatted
		}
		return data
	}

	rowsFn := func() int { return t.RowCount() }

	sumFn := func(data []float64) float64 {
		s := 0.0
		for _, f := range data {
			s += f
		}
		return s
	}

	meanFn := func(data []float64) float64 {
		if len(data) == 0 {
			return math.NaN()
		}
		return sumFn(data) / float64(len(data))
	}

	minFn := func(data []float64) float64 {
		m := math.Inf(1)
		for _, f := range data {
			m = math.Min(m, f)
		}
		return m
	}

	maxFn := func(data []float64) float64 {
		m := math.Inf(-1)
		for _, f := range data {
			m = math.Max(m, f)
		}
		return m
	}

	return interp.Exports{
		"gsdash/data/data": {
			"Col":  reflect.ValueOf(colFn),
			"Text": reflect.ValueOf(textFn),
			"Rows": reflect.ValueOf(rowsFn),
			"Sum":  reflect.ValueOf(sumFn),
			"Mean": reflect.ValueOf(meanFn),
			"Min":  reflect.ValueOf(minFn),
			"Max":  reflect.ValueOf(maxFn),
		},
	}
}
