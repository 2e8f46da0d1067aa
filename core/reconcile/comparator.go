package reconcile

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"report-reconciler/core/outcome"
	"report-reconciler/core/table"

	"github.com/shopspring/decimal"
)

var (
	// ErrAggregateUnavailable is returned when the aggregate columns cannot be summed.
	ErrAggregateUnavailable = errors.New("aggregate columns unavailable")
	// ErrShapeMismatch is returned when the tables cannot be compared cell by cell.
	ErrShapeMismatch = errors.New("numeric and text columns do not line up")
)

// Compare runs the aggregate check and, when totals agree, the cell check.
// Both tables must already be aligned by Sort.
func Compare(manual, automated *table.Table, opts Options) *Comparison {
	c := &Comparison{AggregateKey: opts.AggregateKey, AggregateMeasure: opts.AggregateMeasure}

	aggregates, err := CompareAggregates(manual, automated, opts.AggregateKey, opts.AggregateMeasure)
	if err != nil {
		c.Outcome, c.Detail = outcome.AggregateUnavailable, err.Error()
		return c
	}
	if len(aggregates) > 0 {
		c.Outcome, c.Aggregates = outcome.AggregateMismatch, aggregates
		return c
	}

	diffs, err := CompareCells(manual, automated, opts.Tolerance)
	if err != nil {
		c.Outcome, c.Detail = outcome.ShapeMismatch, err.Error()
		return c
	}
	c.Diffs = diffs
	if len(diffs) > 0 {
		c.Outcome = outcome.ValuesDiffer
	} else {
		c.Outcome = outcome.Identical
	}
	return c
}

// CompareAggregates sums the measure per key in both tables and returns the keys
// whose totals differ, sorted by key. Keys are compared as text and sums are exact.
func CompareAggregates(manual, automated *table.Table, key, measure string) ([]AggregateDiff, error) {
	m, err := groupSums(manual, key, measure)
	if err != nil {
		return nil, fmt.Errorf("manual: %w", err)
	}
	a, err := groupSums(automated, key, measure)
	if err != nil {
		return nil, fmt.Errorf("automated: %w", err)
	}

	keys := make([]string, 0, len(m)+len(a))
	for k := range m {
		keys = append(keys, k)
	}
	for k := range a {
		if _, ok := m[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var diffs []AggregateDiff
	for _, k := range keys {
		ms, inManual := m[k]
		as, inAutomated := a[k]
		if inManual && inAutomated && ms.Equal(as) {
			continue
		}
		diffs = append(diffs, AggregateDiff{
			Key:       k,
			Manual:    decimal.NullDecimal{Decimal: ms, Valid: inManual},
			Automated: decimal.NullDecimal{Decimal: as, Valid: inAutomated},
		})
	}
	return diffs, nil
}

func groupSums(t *table.Table, key, measure string) (map[string]decimal.Decimal, error) {
	sub, err := t.Select(key, measure)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAggregateUnavailable, err)
	}
	k, v := sub.At(0), sub.At(1)
	if !v.Type.Numeric() {
		return nil, fmt.Errorf("%w: column %q is %s, not numeric", ErrAggregateUnavailable, measure, v.Type)
	}

	sums := make(map[string]decimal.Decimal)
	for i := range k.Values {
		group := table.FormatValue(k.Values[i])
		sum := sums[group]
		switch x := v.Values[i].(type) {
		case int64:
			sum = sum.Add(decimal.NewFromInt(x))
		case float64:
			sum = sum.Add(decimal.NewFromFloat(x))
		}
		sums[group] = sum
	}
	return sums, nil
}

// CompareCells compares aligned tables cell by cell. Numeric columns are equal
// within the absolute tolerance, measured on the shortest decimal form of each
// value. Other columns must match exactly and two missing values are equal.
// Columns pair by name and diffs come out row by row in manual column order.
func CompareCells(manual, automated *table.Table, tolerance float64) ([]DiffRecord, error) {
	if manual.NumRows() != automated.NumRows() {
		return nil, fmt.Errorf("%w: %d rows against %d", ErrShapeMismatch, manual.NumRows(), automated.NumRows())
	}
	mNum, mText := splitByKind(manual)
	aNum, aText := splitByKind(automated)
	if d := symmetricDifference(mNum, aNum); len(d) > 0 {
		return nil, fmt.Errorf("%w: numeric columns differ on %s", ErrShapeMismatch, strings.Join(d, ", "))
	}
	if d := symmetricDifference(mText, aText); len(d) > 0 {
		return nil, fmt.Errorf("%w: text columns differ on %s", ErrShapeMismatch, strings.Join(d, ", "))
	}

	type pair struct {
		manual, automated table.Column
		numeric           bool
	}
	pairs := make([]pair, 0, manual.NumCols())
	for _, mc := range manual.Columns() {
		ac, _ := automated.Column(mc.Name)
		pairs = append(pairs, pair{manual: mc, automated: ac, numeric: mc.Type.Numeric()})
	}

	tol := decimal.NewFromFloat(tolerance)
	var diffs []DiffRecord
	for row := 0; row < manual.NumRows(); row++ {
		for _, p := range pairs {
			mv, av := p.manual.Values[row], p.automated.Values[row]
			var equal bool
			if p.numeric {
				equal = numericEqual(mv, av, tol)
			} else {
				equal = mv == av
			}
			if !equal {
				diffs = append(diffs, DiffRecord{Row: row, Column: p.manual.Name, Manual: mv, Automated: av})
			}
		}
	}
	return diffs, nil
}

func splitByKind(t *table.Table) (numeric, text []string) {
	for _, c := range t.Columns() {
		if c.Type.Numeric() {
			numeric = append(numeric, c.Name)
		} else {
			text = append(text, c.Name)
		}
	}
	return numeric, text
}

// numericEqual compares two cells in decimal so a gap of exactly the tolerance
// is equal whatever the magnitude of the values.
func numericEqual(a, b any, tolerance decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	da, okA := toDecimal(a)
	db, okB := toDecimal(b)
	if !okA || !okB {
		return false
	}
	return da.Sub(db).Abs().LessThanOrEqual(tolerance)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case int64:
		return decimal.NewFromInt(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(x), true
	}
	return decimal.Decimal{}, false
}
