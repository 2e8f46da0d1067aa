package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"report-reconciler/core/table"
)

// SortKeyError reports sort keys a table does not have.
type SortKeyError struct {
	Missing []string
}

func (e *SortKeyError) Error() string {
	return fmt.Sprintf("sort keys not found: %s", strings.Join(e.Missing, ", "))
}

// MissingKeys returns the sort keys absent from the table, in key order.
func MissingKeys(t *table.Table, keys []string) []string {
	var missing []string
	for _, k := range keys {
		if !t.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// Sort returns the table with rows in ascending order over the key tuple.
// The sort is stable and missing values sort last. Sorting a sorted table is a no-op.
func Sort(t *table.Table, keys []string) (*table.Table, error) {
	if missing := MissingKeys(t, keys); len(missing) > 0 {
		return nil, &SortKeyError{Missing: missing}
	}

	columns := make([]table.Column, len(keys))
	for i, k := range keys {
		columns[i], _ = t.Column(k)
	}

	order := make([]int, t.NumRows())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return compareRows(columns, order[a], order[b]) < 0
	})
	return t.Permute(order), nil
}

// DuplicateKeys counts rows of a sorted table that share their key tuple with the previous row.
func DuplicateKeys(sorted *table.Table, keys []string) int {
	columns := make([]table.Column, 0, len(keys))
	for _, k := range keys {
		if c, ok := sorted.Column(k); ok {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		return 0
	}

	dups := 0
	for i := 1; i < sorted.NumRows(); i++ {
		if compareRows(columns, i-1, i) == 0 {
			dups++
		}
	}
	return dups
}

func compareRows(columns []table.Column, a, b int) int {
	for _, c := range columns {
		if cmp := table.CompareMissingLast(c.Values[a], c.Values[b]); cmp != 0 {
			return cmp
		}
	}
	return 0
}
