package table

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")
	// ErrRaggedColumns is returned when columns do not share the same length.
	ErrRaggedColumns = errors.New("columns have different lengths")
)

// DType is the declared type of a column.
type DType string

const (
	Object  DType = "object"
	Int64   DType = "int64"
	Float64 DType = "float64"
	Bool    DType = "bool"
)

// Numeric reports whether values of the type take part in tolerant comparison.
func (d DType) Numeric() bool {
	return d == Int64 || d == Float64
}

// Column is a named, typed sequence of values.
type Column struct {
	Name   string
	Type   DType
	Values []any
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	return len(c.Values)
}

// clone copies the column so the copy can be mutated freely.
func (c Column) clone() Column {
	values := make([]any, len(c.Values))
	copy(values, c.Values)
	return Column{Name: c.Name, Type: c.Type, Values: values}
}

// Table is an ordered set of columns of equal length.
type Table struct {
	columns []Column
	rows    int
}

// New builds a table from columns, checking that all of them have the same length.
func New(columns ...Column) (*Table, error) {
	t := &Table{columns: make([]Column, 0, len(columns))}
	for i, c := range columns {
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("%w: %q has %d values, expected %d", ErrRaggedColumns, c.Name, c.Len(), t.rows)
		}
		t.columns = append(t.columns, c.clone())
	}
	return t, nil
}

// MustNew is New for statically known tables. It panics on ragged input.
func MustNew(columns ...Column) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return t.rows
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.columns)
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	return t.rows, len(t.columns)
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns a copy of the column headers and values.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.clone()
	}
	return out
}

// Index returns the position of the first column with the given name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Column returns the first column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	i := t.Index(name)
	if i < 0 {
		return Column{}, false
	}
	return t.columns[i], true
}

// At returns the column at position i.
func (t *Table) At(i int) Column {
	return t.columns[i]
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}
	return row
}

// Drop returns a table without the columns at the given positions.
func (t *Table) Drop(positions ...int) *Table {
	skip := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		skip[p] = struct{}{}
	}
	out := &Table{rows: t.rows}
	for i, c := range t.columns {
		if _, ok := skip[i]; ok {
			continue
		}
		out.columns = append(out.columns, c.clone())
	}
	return out
}

// Select returns a table holding the named columns in the requested order.
func (t *Table) Select(names ...string) (*Table, error) {
	out := &Table{rows: t.rows}
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		out.columns = append(out.columns, c.clone())
	}
	return out, nil
}

// Rename returns a table with columns renamed through the given function.
func (t *Table) Rename(fn func(name string) string) *Table {
	out := &Table{rows: t.rows, columns: make([]Column, len(t.columns))}
	for i, c := range t.columns {
		cp := c.clone()
		cp.Name = fn(c.Name)
		out.columns[i] = cp
	}
	return out
}

// Replace returns a table where the column at position i is swapped for c.
func (t *Table) Replace(i int, c Column) (*Table, error) {
	if c.Len() != t.rows {
		return nil, fmt.Errorf("%w: %q has %d values, expected %d", ErrRaggedColumns, c.Name, c.Len(), t.rows)
	}
	out := &Table{rows: t.rows, columns: make([]Column, len(t.columns))}
	for j, col := range t.columns {
		if j == i {
			out.columns[j] = c.clone()
			continue
		}
		out.columns[j] = col.clone()
	}
	return out, nil
}

// Permute returns a table whose row i is row order[i] of the receiver.
func (t *Table) Permute(order []int) *Table {
	out := &Table{rows: len(order), columns: make([]Column, len(t.columns))}
	for j, c := range t.columns {
		values := make([]any, len(order))
		for i, src := range order {
			values[i] = c.Values[src]
		}
		out.columns[j] = Column{Name: c.Name, Type: c.Type, Values: values}
	}
	return out
}
