package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"report-reconciler/core/reconcile"
	"report-reconciler/core/table"
	"report-reconciler/core/workbook"
)

// Sheet names of the output workbook.
const (
	SheetManual      = "manual"
	SheetAutomated   = "automated"
	SheetDifferences = "differences"
	SheetAggregate   = "aggregate"
)

// ErrNotAligned is returned when a workbook is requested for a run that never aligned its tables.
var ErrNotAligned = errors.New("tables were not aligned")

// WorkbookOptions controls the content of the output workbook.
type WorkbookOptions struct {
	// Differences adds a sheet listing the differences when there are any.
	Differences bool
}

// Sheets lays out the output workbook of an aligned run. Differing cells are
// highlighted in both data sheets; for aggregate mismatches the key and measure
// cells of every affected row are highlighted instead.
func Sheets(res *reconcile.Result, opts WorkbookOptions) ([]workbook.Sheet, error) {
	if res == nil || !res.Aligned {
		return nil, ErrNotAligned
	}

	manual := workbook.FromTable(SheetManual, res.Manual)
	automated := workbook.FromTable(SheetAutomated, res.Automated)
	sheets := []workbook.Sheet{manual, automated}

	c := res.Comparison
	if c == nil {
		return sheets, nil
	}

	for _, d := range c.Diffs {
		manual.Highlight(d.Row, d.Column)
		automated.Highlight(d.Row, d.Column)
	}
	if len(c.Aggregates) > 0 {
		keys := make(map[string]struct{}, len(c.Aggregates))
		for _, a := range c.Aggregates {
			keys[a.Key] = struct{}{}
		}
		highlightGroups(&manual, res.Manual, c, keys)
		highlightGroups(&automated, res.Automated, c, keys)
	}
	sheets[0], sheets[1] = manual, automated

	if !opts.Differences {
		return sheets, nil
	}
	switch {
	case len(c.Aggregates) > 0:
		s := workbook.Sheet{Name: SheetAggregate, Header: []string{c.AggregateKey, "manual", "automated"}}
		for _, a := range c.Aggregates {
			s.Rows = append(s.Rows, []any{a.Key, totalValue(a.Manual.Valid, a.Manual.Decimal.InexactFloat64()), totalValue(a.Automated.Valid, a.Automated.Decimal.InexactFloat64())})
		}
		sheets = append(sheets, s)
	case len(c.Diffs) > 0:
		s := workbook.Sheet{Name: SheetDifferences, Header: []string{"original_row_number", "column", "manual", "automated"}}
		for _, d := range c.Diffs {
			s.Rows = append(s.Rows, []any{int64(d.Row), d.Column, d.Manual, d.Automated})
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

// WriteWorkbook saves the output workbook of an aligned run to path.
func WriteWorkbook(path string, res *reconcile.Result, opts WorkbookOptions) error {
	sheets, err := Sheets(res, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	return workbook.Save(path, sheets...)
}

func highlightGroups(s *workbook.Sheet, t *table.Table, c *reconcile.Comparison, keys map[string]struct{}) {
	col, ok := t.Column(c.AggregateKey)
	if !ok {
		return
	}
	for i, v := range col.Values {
		if _, hit := keys[table.FormatValue(v)]; hit {
			s.Highlight(i, c.AggregateKey)
			s.Highlight(i, c.AggregateMeasure)
		}
	}
}

func totalValue(valid bool, v float64) any {
	if !valid {
		return nil
	}
	return v
}
