package report

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"report-reconciler/core/outcome"
	"report-reconciler/core/output"
	"report-reconciler/core/reconcile"
	"report-reconciler/core/table"

	"github.com/shopspring/decimal"
)

// Narrate writes what every stage of a run found, in pipeline order.
func (j *Journal) Narrate(res *reconcile.Result) error {
	j.narrateCondition(res.Condition)

	v := res.Validation
	if v == nil {
		return j.err
	}
	if !j.narrateValidation(v) {
		return j.err
	}

	if len(res.MissingKeys) > 0 {
		j.message(outcome.SortKeyMissing)
		for _, side := range []string{"manual", "automated"} {
			if missing, ok := res.MissingKeys[side]; ok {
				j.linef("Missing in %s: %s", side, strings.Join(missing, ", "))
			}
		}
		return j.err
	}

	if len(res.DuplicateKeys) > 0 {
		j.linef("WARNING: rows share sort keys (manual: %d, automated: %d).",
			res.DuplicateKeys["manual"], res.DuplicateKeys["automated"])
		if res.Outcome == outcome.DuplicateSortKeys {
			j.message(outcome.DuplicateSortKeys)
			return j.err
		}
		j.line("Rows sharing a key are paired by position.")
	}

	if res.Comparison != nil {
		j.narrateComparison(res.Comparison)
	}
	return j.err
}

func (j *Journal) narrateCondition(c reconcile.ConditionResult) {
	if len(c.DroppedManual) > 0 {
		j.linef("Removed columns from the manual dataframe: %s", strings.Join(c.DroppedManual, ", "))
	}
	if len(c.DroppedAutomated) > 0 {
		j.linef("Removed columns from the automated dataframe: %s", strings.Join(c.DroppedAutomated, ", "))
	}
}

// narrateValidation reports whether the run went past validation.
func (j *Journal) narrateValidation(v *reconcile.ValidationResult) bool {
	if v.ManualShape == v.AutomatedShape {
		j.line("The dataframes have the same number of rows and columns.")
	} else {
		j.line("The dataframes do not have the same number of rows and columns.")
		j.linef("The manual dataframe has %d rows and %d columns.", v.ManualShape.Rows, v.ManualShape.Cols)
		j.linef("The automated dataframe has %d rows and %d columns.", v.AutomatedShape.Rows, v.AutomatedShape.Cols)
	}
	if slices.Contains(v.Tolerated, outcome.RowCountTolerated) {
		j.line("Ignoring the number of rows in the comparison.")
	}

	for _, m := range v.TypeMismatches {
		j.linef("The column '%s' in manual has type %s, while in automated has type %s (%s).", m.Column, m.Manual, m.Automated, m.Resolution)
	}

	if v.Outcome.Fatal() {
		j.line("ERROR: Dataframes failed basic validation")
		j.message(v.Outcome)
		switch {
		case len(v.ColumnDiff) > 0:
			j.linef("The dataframes have different columns: [%s]", strings.Join(v.ColumnDiff, ", "))
			j.table(columnDiffTable(v.ColumnDiff))
		case len(v.TypeMismatches) > 0:
			j.table(typeMismatchTable(v.TypeMismatches))
		}
		return false
	}

	if v.Outcome == outcome.TypeMismatchTolerated {
		j.line("Ignoring the data types in the comparison.")
	}
	j.message(v.Outcome)
	return true
}

func (j *Journal) narrateComparison(c *reconcile.Comparison) {
	switch c.Outcome {
	case outcome.AggregateUnavailable:
		j.message(c.Outcome)
		j.line(c.Detail)
		return
	case outcome.AggregateMismatch:
		j.message(c.Outcome)
		j.line("Differences:")
		j.table(aggregateTable(c))
		return
	}

	j.linef("The dataframes have the same total sum of '%s' for each '%s'.", c.AggregateMeasure, c.AggregateKey)
	j.message(c.Outcome)
	switch c.Outcome {
	case outcome.ShapeMismatch:
		j.line(c.Detail)
	case outcome.ValuesDiffer:
		j.line("Differences:")
		j.table(diffTable(c.Diffs))
	}
}

func columnDiffTable(columns []string) output.Data {
	data := output.Data{Headers: []string{"Column"}}
	for _, c := range columns {
		data.Rows = append(data.Rows, []string{c})
	}
	return data
}

func typeMismatchTable(mismatches []reconcile.TypeMismatch) output.Data {
	data := output.Data{Headers: []string{"Column", "Manual type", "Automated type", "Resolution"}}
	for _, m := range mismatches {
		data.Rows = append(data.Rows, []string{m.Column, string(m.Manual), string(m.Automated), m.Resolution})
	}
	return data
}

func aggregateTable(c *reconcile.Comparison) output.Data {
	data := output.Data{Headers: []string{c.AggregateKey, "Manual", "Automated"}}
	for _, a := range c.Aggregates {
		data.Rows = append(data.Rows, []string{a.Key, formatTotal(a.Manual), formatTotal(a.Automated)})
	}
	return data
}

func diffTable(diffs []reconcile.DiffRecord) output.Data {
	data := output.Data{Headers: []string{"Row", "Column", "Manual", "Automated"}}
	for _, d := range diffs {
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(d.Row), d.Column, table.FormatValue(d.Manual), table.FormatValue(d.Automated),
		})
	}
	return data
}

func formatTotal(d decimal.NullDecimal) string {
	if !d.Valid {
		return table.Missing
	}
	return d.Decimal.String()
}

// Summary is the short description of a run printed when it ends.
type Summary struct {
	RunID          string   `json:"run_id" yaml:"run_id"`
	Vendor         string   `json:"vendor" yaml:"vendor"`
	Filename       string   `json:"filename" yaml:"filename"`
	Outcome        string   `json:"outcome" yaml:"outcome"`
	Code           int      `json:"code" yaml:"code"`
	Severity       string   `json:"severity" yaml:"severity"`
	Message        string   `json:"message" yaml:"message"`
	Tolerated      []string `json:"tolerated,omitempty" yaml:"tolerated,omitempty"`
	TypeMismatches int      `json:"type_mismatches" yaml:"type_mismatches"`
	Aggregates     int      `json:"aggregate_differences" yaml:"aggregate_differences"`
	Differences    int      `json:"differences" yaml:"differences"`
	Log            string   `json:"log" yaml:"log"`
	Workbook       string   `json:"workbook,omitempty" yaml:"workbook,omitempty"`
}

// Summarize condenses a run into a Summary. A nil result describes a run that failed to load.
func Summarize(run Run, res *reconcile.Result, messages outcome.Messages) Summary {
	s := Summary{RunID: run.ID, Vendor: run.Vendor, Filename: run.Filename}
	o := outcome.InputUnavailable
	if res != nil {
		o = res.Outcome
		if v := res.Validation; v != nil {
			s.TypeMismatches = len(v.TypeMismatches)
			for _, t := range v.Tolerated {
				s.Tolerated = append(s.Tolerated, t.String())
			}
		}
		if c := res.Comparison; c != nil {
			s.Aggregates = len(c.Aggregates)
			s.Differences = len(c.Diffs)
		}
	}
	s.Outcome = o.String()
	s.Code = o.Code()
	s.Severity = string(o.Severity())
	s.Message = messages.Text(o)
	return s
}

// TableData implements output.Tabular.
func (s Summary) TableData() output.Data {
	rows := [][]string{
		{"Run", s.RunID},
		{"Vendor", s.Vendor},
		{"Filename", s.Filename},
		{"Outcome", fmt.Sprintf("%s (%d)", s.Outcome, s.Code)},
		{"Severity", s.Severity},
		{"Message", s.Message},
	}
	if len(s.Tolerated) > 0 {
		rows = append(rows, []string{"Tolerated", strings.Join(s.Tolerated, ", ")})
	}
	rows = append(rows,
		[]string{"Type mismatches", strconv.Itoa(s.TypeMismatches)},
		[]string{"Aggregate differences", strconv.Itoa(s.Aggregates)},
		[]string{"Cell differences", strconv.Itoa(s.Differences)},
		[]string{"Log", s.Log},
	)
	if s.Workbook != "" {
		rows = append(rows, []string{"Workbook", s.Workbook})
	}
	return output.Data{Headers: []string{"Field", "Value"}, Rows: rows}
}
