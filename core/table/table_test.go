package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cells(values ...string) []Cell {
	out := make([]Cell, len(values))
	for i, v := range values {
		out[i] = Cell{Value: v}
	}
	return out
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name   string
		cells  []Cell
		dtype  DType
		values []any
	}{
		{"integers", cells("1", "2", "-3"), Int64, []any{int64(1), int64(2), int64(-3)}},
		{"integers with gaps", cells("1", "", "3"), Float64, []any{1.0, nil, 3.0}},
		{"floats", cells("1.5", "2", "1e2"), Float64, []any{1.5, 2.0, 100.0}},
		{"all missing", cells("", "NaN"), Float64, []any{nil, nil}},
		{"booleans", cells("TRUE", "false"), Bool, []any{true, false}},
		{"booleans with gaps", cells("TRUE", ""), Object, []any{"TRUE", nil}},
		{"text", cells("A-1", "2"), Object, []any{"A-1", "2"}},
		{"stored as text", []Cell{{Value: "10", Text: true}, {Value: "11"}}, Object, []any{"10", "11"}},
		{"infinity is text", cells("inf", "1"), Object, []any{"inf", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dtype, values := Infer(tt.cells)
			assert.Equal(t, tt.dtype, dtype)
			assert.Equal(t, tt.values, values)
		})
	}
}

func TestFromCells(t *testing.T) {
	header := cells("Account", "", "Account", " Net billed ")
	rows := [][]Cell{
		cells("A", "x", "B", "1.5"),
		cells("C"),
	}

	tbl, err := FromCells(header, rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"Account", "Unnamed: 1", "Account.1", "Net billed"}, tbl.Names())
	r, c := tbl.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 4, c)

	net, ok := tbl.Column("Net billed")
	require.True(t, ok)
	assert.Equal(t, Float64, net.Type)
	assert.Equal(t, []any{1.5, nil}, net.Values)
}

func TestFromCells_WideRows(t *testing.T) {
	tbl, err := FromCells(cells("a"), [][]Cell{cells("1", "2")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Unnamed: 1"}, tbl.Names())
}

func TestNew_Ragged(t *testing.T) {
	_, err := New(
		Column{Name: "a", Type: Int64, Values: []any{int64(1)}},
		Column{Name: "b", Type: Int64, Values: []any{int64(1), int64(2)}},
	)
	assert.ErrorIs(t, err, ErrRaggedColumns)
}

func TestTableOperations(t *testing.T) {
	tbl := MustNew(
		Column{Name: "a", Type: Int64, Values: []any{int64(1), int64(2), int64(3)}},
		Column{Name: "b", Type: Object, Values: []any{"x", "y", "z"}},
	)

	t.Run("Drop", func(t *testing.T) {
		out := tbl.Drop(0)
		assert.Equal(t, []string{"b"}, out.Names())
		assert.Equal(t, []string{"a", "b"}, tbl.Names())
	})

	t.Run("Select", func(t *testing.T) {
		out, err := tbl.Select("b", "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, out.Names())

		_, err = tbl.Select("missing")
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})

	t.Run("Rename", func(t *testing.T) {
		out := tbl.Rename(func(s string) string { return s + "!" })
		assert.Equal(t, []string{"a!", "b!"}, out.Names())
	})

	t.Run("Permute", func(t *testing.T) {
		out := tbl.Permute([]int{2, 0, 1})
		assert.Equal(t, []any{int64(3), "z"}, out.Row(0))
		assert.Equal(t, []any{int64(1), "x"}, out.Row(1))
		assert.Equal(t, []any{int64(1), "x"}, tbl.Row(0))
	})

	t.Run("Replace", func(t *testing.T) {
		out, err := tbl.Replace(0, Column{Name: "a", Type: Float64, Values: []any{1.0, 2.0, 3.0}})
		require.NoError(t, err)
		assert.Equal(t, Float64, out.At(0).Type)
		assert.Equal(t, Int64, tbl.At(0).Type)

		_, err = tbl.Replace(0, Column{Name: "a", Type: Float64, Values: []any{1.0}})
		assert.ErrorIs(t, err, ErrRaggedColumns)
	})
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		col     Column
		target  DType
		values  []any
		wantErr bool
	}{
		{
			name:   "int to float",
			col:    Column{Name: "n", Type: Int64, Values: []any{int64(1), int64(2)}},
			target: Float64,
			values: []any{1.0, 2.0},
		},
		{
			name:   "float to object keeps missing",
			col:    Column{Name: "n", Type: Float64, Values: []any{1.5, nil}},
			target: Object,
			values: []any{"1.5", nil},
		},
		{
			name:   "object to float",
			col:    Column{Name: "n", Type: Object, Values: []any{"1.25", "3"}},
			target: Float64,
			values: []any{1.25, 3.0},
		},
		{
			name:    "object to float fails on text",
			col:     Column{Name: "n", Type: Object, Values: []any{"abc"}},
			target:  Float64,
			wantErr: true,
		},
		{
			name:    "float with missing to int fails",
			col:     Column{Name: "n", Type: Float64, Values: []any{1.0, nil}},
			target:  Int64,
			wantErr: true,
		},
		{
			name:   "whole floats to int",
			col:    Column{Name: "n", Type: Float64, Values: []any{1.0, 2.0}},
			target: Int64,
			values: []any{int64(1), int64(2)},
		},
		{
			name:   "bool to float",
			col:    Column{Name: "n", Type: Bool, Values: []any{true, false}},
			target: Float64,
			values: []any{1.0, 0.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Coerce(tt.col, tt.target)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCoercion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, out.Type)
			assert.Equal(t, tt.values, out.Values)
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Compare(int64(1), 1.5))
	assert.Equal(t, 0, Compare(2.0, int64(2)))
	assert.Equal(t, 1, Compare("b", "a"))
	assert.Equal(t, -1, Compare("10", "9"))
	assert.Equal(t, -1, Compare(false, true))

	assert.Equal(t, 1, CompareMissingLast(nil, "a"))
	assert.Equal(t, -1, CompareMissingLast(int64(5), nil))
	assert.Equal(t, 0, CompareMissingLast(nil, nil))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "NaN", FormatValue(nil))
	assert.Equal(t, "10.5", FormatValue(10.5))
	assert.Equal(t, "abc", FormatValue("abc"))
}
