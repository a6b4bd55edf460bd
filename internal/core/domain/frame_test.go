package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrame_ShapeMismatch(t *testing.T) {
	_, err := NewFrame([]string{"A", "B"}, [][]any{{1.0}})
	assert.ErrorIs(t, err, ErrFrameShape)
}

func TestFrameFromRecords_UnionSortedColumns(t *testing.T) {
	f := FrameFromRecords([]map[string]any{
		{"B": 1.0, "A": 2.0},
		{"C": 3.0},
	})
	assert.Equal(t, []string{"A", "B", "C"}, f.Columns())
	assert.Equal(t, 2, f.NumRows())

	v, ok := f.Value(0, "B")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	// key absent from the second record yields a nil cell
	_, ok = f.Value(1, "A")
	assert.False(t, ok)
}

func TestReindex_FillsDropsAndReorders(t *testing.T) {
	f, err := NewFrame([]string{"B", "D"}, [][]any{{7.0, 99.0}})
	require.NoError(t, err)

	aligned := f.Reindex([]string{"A", "B", "C"})

	assert.Equal(t, []string{"A", "B", "C"}, aligned.Columns())

	a, ok := aligned.Float(0, "A")
	require.True(t, ok)
	assert.Equal(t, 0.0, a)

	b, ok := aligned.Float(0, "B")
	require.True(t, ok)
	assert.Equal(t, 7.0, b)

	c, ok := aligned.Float(0, "C")
	require.True(t, ok)
	assert.Equal(t, 0.0, c)

	assert.False(t, aligned.HasColumn("D"))

	// the source frame is untouched
	assert.Equal(t, []string{"B", "D"}, f.Columns())
}

func TestWithColumn_AppendAndReplace(t *testing.T) {
	f, err := NewFrame([]string{"A"}, [][]any{{1.0}, {2.0}})
	require.NoError(t, err)

	g, err := f.WithColumn("B", []any{10.0, 20.0})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, g.Columns())

	h, err := g.WithColumn("B", []any{30.0, 40.0})
	require.NoError(t, err)
	v, _ := h.Float(1, "B")
	assert.Equal(t, 40.0, v)

	_, err = f.WithColumn("B", []any{1.0})
	assert.ErrorIs(t, err, ErrFrameShape)
}

func TestDropColumn(t *testing.T) {
	f, err := NewFrame([]string{"row_id", "A"}, [][]any{{1.0, 2.0}})
	require.NoError(t, err)

	g := f.DropColumn("row_id")
	assert.Equal(t, []string{"A"}, g.Columns())

	// dropping an unknown column is a no-op
	assert.Equal(t, g, g.DropColumn("missing"))
}

func TestHead(t *testing.T) {
	f, err := NewFrame([]string{"A"}, [][]any{{1.0}, {2.0}, {3.0}})
	require.NoError(t, err)

	assert.Equal(t, 2, f.Head(2).NumRows())
	assert.Equal(t, 3, f.Head(10).NumRows())
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{3.5, 3.5, true},
		{int(2), 2, true},
		{int64(4), 4, true},
		{true, 1, true},
		{false, 0, true},
		{"0.25", 0.25, true},
		{"abc", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := ToFloat(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %v", tc.in)
		}
	}
}
