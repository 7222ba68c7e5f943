package dataset

import (
	"math"
	"sort"
)

// ColumnStats holds descriptive statistics for one numeric column,
// mirroring the usual describe output.
type ColumnStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Describe computes descriptive statistics for every numeric column.
// Null cells are excluded from every statistic. Std is the sample
// standard deviation; quantiles use linear interpolation.
func Describe(t *Table) []ColumnStats {
	stats := make([]ColumnStats, 0)
	for i := 0; i < t.ColumnCount(); i++ {
		dt, _ := t.ColumnType(i)
		if dt != TypeInt && dt != TypeFloat {
			continue
		}
		name, _ := t.ColumnName(i)
		values, _ := t.ColumnValues(i)

		data := make([]float64, 0, len(values))
		for _, v := range values {
			if f, ok := v.Float(); ok {
				data = append(data, f)
			}
		}
		if len(data) == 0 {
			continue
		}

		sorted := append([]float64(nil), data...)
		sort.Float64s(sorted)

		stats = append(stats, ColumnStats{
			Column: name,
			Count:  len(data),
			Mean:   mean(data),
			Std:    sampleStd(data),
			Min:    sorted[0],
			Q25:    quantile(sorted, 0.25),
			Median: quantile(sorted, 0.5),
			Q75:    quantile(sorted, 0.75),
			Max:    sorted[len(sorted)-1],
		})
	}
	return stats
}

func mean(data []float64) float64 {
	sum := 0.0
	for _, f := range data {
		sum += f
	}
	return sum / float64(len(data))
}

func sampleStd(data []float64) float64 {
	if len(data) < 2 {
		return math.NaN()
	}
	m := mean(data)
	sum := 0.0
	for _, f := range data {
		d := f - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(data)-1))
}

// quantile computes the q-quantile of sorted data by linear interpolation.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// MissingCount reports the number of null cells in one column.
type MissingCount struct {
	Column string
	Nulls  int
}

// MissingCounts returns per-column null counts, in column order.
func MissingCounts(t *Table) []MissingCount {
	counts := make([]MissingCount, t.ColumnCount())
	for i := range counts {
		name, _ := t.ColumnName(i)
		values, _ := t.ColumnValues(i)
		n := 0
		for _, v := range values {
			if v.IsNull {
				n++
			}
		}
		counts[i] = MissingCount{Column: name, Nulls: n}
	}
	return counts
}

// ColumnTypeInfo pairs a column name with its inferred type name.
type ColumnTypeInfo struct {
	Column string
	Type   string
}

// TypeReport returns the inferred type of every column, in column order.
func TypeReport(t *Table) []ColumnTypeInfo {
	report := make([]ColumnTypeInfo, t.ColumnCount())
	for i := range report {
		name, _ := t.ColumnName(i)
		dt, _ := t.ColumnType(i)
		report[i] = ColumnTypeInfo{Column: name, Type: dt.String()}
	}
	return report
}

// Delta compares the latest row against the previous one for a numeric column.
type Delta struct {
	Column   string
	Latest   float64
	Previous float64
	Delta    float64
}

// LatestDeltas computes latest-vs-previous comparisons for every numeric
// column. Returns nil when the table holds fewer than two rows.
func LatestDeltas(t *Table) []Delta {
	rows := t.RowCount()
	if rows < 2 {
		return nil
	}
	deltas := make([]Delta, 0)
	for i := 0; i < t.ColumnCount(); i++ {
		dt, _ := t.ColumnType(i)
		if dt != TypeInt && dt != TypeFloat {
			continue
		}
		name, _ := t.ColumnName(i)
		values, _ := t.ColumnValues(i)
		latest, ok1 := values[rows-1].Float()
		prev, ok2 := values[rows-2].Float()
		if !ok1 || !ok2 {
			continue
		}
		deltas = append(deltas, Delta{
			Column:   name,
			Latest:   latest,
			Previous: prev,
			Delta:    latest - prev,
		})
	}
	return deltas
}

// GroupRow is one category with its aggregated sum.
type GroupRow struct {
	Category string
	Sum      float64
}

// GroupSum groups rows by a text column and sums a numeric column,
// returning categories in ascending order. Null cells in either column
// are skipped. Returns ErrNotNumeric when valCol is not numeric.
func GroupSum(t *Table, catCol, valCol string) ([]GroupRow, error) {
	ci, err := t.ColumnIndex(catCol)
	if err != nil {
		return nil, err
	}
	vi, err := t.ColumnIndex(valCol)
	if err != nil {
		return nil, err
	}
	vt, _ := t.ColumnType(vi)
	if vt != TypeInt && vt != TypeFloat {
		return nil, ErrNotNumeric
	}

	cats, _ := t.ColumnValues(ci)
	vals, _ := t.ColumnValues(vi)

	sums := make(map[string]float64)
	for r := range cats {
		if cats[r].IsNull {
			continue
		}
		f, ok := vals[r].Float()
		if !ok {
			continue
		}
		sums[cats[r].Formatted] += f
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]GroupRow, len(keys))
	for i, k := range keys {
		groups[i] = GroupRow{Category: k, Sum: sums[k]}
	}
	return groups, nil
}
