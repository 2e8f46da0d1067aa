package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cell is a raw value read from a spreadsheet or delimited file.
type Cell struct {
	// Value is the cell content as text.
	Value string
	// Text marks cells the source stored as text. They are never read as numbers.
	Text bool
}

// naValues are cell contents read as missing values.
var naValues = map[string]struct{}{
	"": {}, "nan": {}, "NaN": {}, "NA": {}, "N/A": {}, "#N/A": {}, "NULL": {}, "null": {}, "None": {},
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool {
	_, ok := naValues[strings.TrimSpace(c.Value)]
	return ok
}

// FromCells builds a table from a header row and data rows.
// Blank headers become "Unnamed: <i>", repeated headers get ".1", ".2" suffixes,
// and short rows are padded with missing values.
func FromCells(header []Cell, rows [][]Cell) (*Table, error) {
	width := len(header)
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	names := headerNames(header, width)
	columns := make([]Column, width)
	for j := 0; j < width; j++ {
		cells := make([]Cell, len(rows))
		for i, r := range rows {
			if j < len(r) {
				cells[i] = r[j]
			}
		}
		dtype, values := Infer(cells)
		columns[j] = Column{Name: names[j], Type: dtype, Values: values}
	}
	return New(columns...)
}

func headerNames(header []Cell, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for j := 0; j < width; j++ {
		name := ""
		if j < len(header) {
			name = strings.TrimSpace(header[j].Value)
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", j)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		}
		seen[name] = 0
		names[j] = name
	}
	return names
}

// Infer decides the type of a column from its raw cells and converts them.
func Infer(cells []Cell) (DType, []any) {
	var (
		missing  int
		allInt   = true
		allFloat = true
		allBool  = true
	)
	for _, c := range cells {
		if c.IsMissing() {
			missing++
			continue
		}
		v := strings.TrimSpace(c.Value)
		if c.Text {
			allInt, allFloat = false, false
		}
		if allInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat && !isFloat(v) {
			allFloat = false
		}
		if allBool && !isBool(v) {
			allBool = false
		}
	}

	var dtype DType
	switch {
	case missing == len(cells):
		dtype = Float64
	case allInt && missing == 0:
		dtype = Int64
	case allInt || allFloat:
		dtype = Float64
	case allBool && missing == 0:
		dtype = Bool
	default:
		dtype = Object
	}

	values := make([]any, len(cells))
	for i, c := range cells {
		if c.IsMissing() {
			continue
		}
		v := strings.TrimSpace(c.Value)
		switch dtype {
		case Int64:
			values[i], _ = strconv.ParseInt(v, 10, 64)
		case Float64:
			values[i], _ = strconv.ParseFloat(v, 64)
		case Bool:
			values[i] = strings.EqualFold(v, "true")
		default:
			values[i] = c.Value
		}
	}
	return dtype, values
}

func isFloat(v string) bool {
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isBool(v string) bool {
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "false")
}
