package domain

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Frame is an ordered collection of named columns holding one or more rows.
// Cell values are whatever the decode layer produced (float64, int, bool,
// string). A Frame is never mutated in place; every transformation returns a
// new Frame.
type Frame struct {
	cols []string
	idx  map[string]int
	rows [][]any
}

func NewFrame(cols []string, rows [][]any) (*Frame, error) {
	for _, row := range rows {
		if len(row) != len(cols) {
			return nil, ErrFrameShape
		}
	}
	return newFrame(cols, rows), nil
}

func newFrame(cols []string, rows [][]any) *Frame {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	return &Frame{cols: cols, idx: idx, rows: rows}
}

// FrameFromRecords builds a Frame from decoded JSON objects. The column set is
// the union of all record keys, in sorted order; keys absent from a record
// yield nil cells.
func FrameFromRecords(records []map[string]any) *Frame {
	seen := make(map[string]bool)
	var cols []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = rec[c]
		}
		rows[i] = row
	}
	return newFrame(cols, rows)
}

func (f *Frame) Columns() []string {
	out := make([]string, len(f.cols))
	copy(out, f.cols)
	return out
}

func (f *Frame) NumRows() int { return len(f.rows) }

func (f *Frame) HasColumn(name string) bool {
	_, ok := f.idx[name]
	return ok
}

// Value returns the cell at row i, column name. The second result is false
// when the column does not exist or the cell is nil.
func (f *Frame) Value(i int, name string) (any, bool) {
	j, ok := f.idx[name]
	if !ok || i < 0 || i >= len(f.rows) {
		return nil, false
	}
	v := f.rows[i][j]
	return v, v != nil
}

// Float returns the cell at row i, column name coerced to float64.
func (f *Frame) Float(i int, name string) (float64, bool) {
	v, ok := f.Value(i, name)
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// Record returns row i as a name-to-value map.
func (f *Frame) Record(i int) map[string]any {
	rec := make(map[string]any, len(f.cols))
	for j, c := range f.cols {
		rec[c] = f.rows[i][j]
	}
	return rec
}

// Records returns all rows as name-to-value maps, in row order.
func (f *Frame) Records() []map[string]any {
	out := make([]map[string]any, len(f.rows))
	for i := range f.rows {
		out[i] = f.Record(i)
	}
	return out
}

// Reindex reconciles the Frame to exactly the given column set: columns absent
// from the input are inserted zero-filled, input columns not in the list are
// dropped, and the result's column order is the list's order.
func (f *Frame) Reindex(cols []string) *Frame {
	rows := make([][]any, len(f.rows))
	for i, src := range f.rows {
		row := make([]any, len(cols))
		for j, c := range cols {
			if k, ok := f.idx[c]; ok {
				row[j] = src[k]
			} else {
				row[j] = float64(0)
			}
		}
		rows[i] = row
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return newFrame(out, rows)
}

// WithColumn returns a copy of the Frame with the named column appended, or
// replaced in place when a column of that name already exists. values must
// have one entry per row.
func (f *Frame) WithColumn(name string, values []any) (*Frame, error) {
	if len(values) != len(f.rows) {
		return nil, ErrFrameShape
	}
	if j, ok := f.idx[name]; ok {
		rows := make([][]any, len(f.rows))
		for i, src := range f.rows {
			row := make([]any, len(src))
			copy(row, src)
			row[j] = values[i]
			rows[i] = row
		}
		return newFrame(f.Columns(), rows), nil
	}
	cols := append(f.Columns(), name)
	rows := make([][]any, len(f.rows))
	for i, src := range f.rows {
		row := make([]any, len(src), len(src)+1)
		copy(row, src)
		rows[i] = append(row, values[i])
	}
	return newFrame(cols, rows), nil
}

// DropColumn returns a copy of the Frame without the named column. Dropping a
// column that does not exist is a no-op.
func (f *Frame) DropColumn(name string) *Frame {
	j, ok := f.idx[name]
	if !ok {
		return f
	}
	cols := make([]string, 0, len(f.cols)-1)
	cols = append(cols, f.cols[:j]...)
	cols = append(cols, f.cols[j+1:]...)
	rows := make([][]any, len(f.rows))
	for i, src := range f.rows {
		row := make([]any, 0, len(src)-1)
		row = append(row, src[:j]...)
		row = append(row, src[j+1:]...)
		rows[i] = row
	}
	return newFrame(cols, rows)
}

// Head returns a copy limited to the first n rows.
func (f *Frame) Head(n int) *Frame {
	if n < 0 || n >= len(f.rows) {
		return f
	}
	return newFrame(f.Columns(), f.rows[:n])
}

// ToFloat coerces a decoded cell value to float64. Booleans map to 0/1;
// numeric strings are parsed.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
