package outcome

import (
	"fmt"
	"sort"
	"strings"
)

// Outcome is a classified result of a reconciliation stage.
type Outcome int

const (
	Identical Outcome = iota
	ColumnCountMismatch
	RowCountMismatch
	RowCountTolerated
	SchemaMismatch
	TypeMismatch
	Validated
	ValuesDiffer
	SortKeyMissing
	TypeMismatchTolerated
	AggregateMismatch
	ShapeMismatch
	InputUnavailable
	AggregateUnavailable
	DuplicateSortKeys

	count
)

// Severity classifies how an outcome affects the run.
type Severity string

const (
	Success   Severity = "success"
	Tolerated Severity = "tolerated"
	Fatal     Severity = "fatal"
)

type definition struct {
	name     string
	severity Severity
	message  string
}

var definitions = [count]definition{
	Identical:             {"identical", Success, "The dataframes have the same columns and values."},
	ColumnCountMismatch:   {"column_count_mismatch", Fatal, "The dataframes do not have the same number of columns."},
	RowCountMismatch:      {"row_count_mismatch", Fatal, "The dataframes have the same number of columns, but different number of rows. Process stopped."},
	RowCountTolerated:     {"row_count_tolerated", Tolerated, "The dataframes have the same number of columns, but different number of rows. Ignoring the number of rows in the comparison."},
	SchemaMismatch:        {"schema_mismatch", Fatal, "The dataframes have the same number of columns, but different column names."},
	TypeMismatch:          {"type_mismatch", Fatal, "The dataframes have the same columns, but different data types."},
	Validated:             {"validated", Success, "The dataframes have the same columns and data types."},
	ValuesDiffer:          {"values_differ", Success, "The dataframes have the same columns, but different values."},
	SortKeyMissing:        {"sort_key_missing", Fatal, "One or more columns in columns_to_sort do not exist in the dataframe."},
	TypeMismatchTolerated: {"type_mismatch_tolerated", Tolerated, "The dataframes have the same columns, but different data types. Ignoring the data types in the comparison."},
	AggregateMismatch:     {"aggregate_mismatch", Fatal, "The dataframes have different total sum of Gross commission for each Account."},
	ShapeMismatch:         {"shape_mismatch", Fatal, "The numeric and text columns of the dataframes do not line up. Values cannot be compared cell by cell."},
	InputUnavailable:      {"input_unavailable", Fatal, "One of the input files could not be opened. Process stopped."},
	AggregateUnavailable:  {"aggregate_unavailable", Fatal, "The aggregate columns are missing or not numeric. Totals cannot be compared."},
	DuplicateSortKeys:     {"duplicate_sort_keys", Fatal, "Several rows share the same sort key. Rows cannot be aligned."},
}

// All returns every outcome in code order.
func All() []Outcome {
	out := make([]Outcome, count)
	for i := range out {
		out[i] = Outcome(i)
	}
	return out
}

// Valid reports whether o belongs to the closed set.
func (o Outcome) Valid() bool {
	return o >= 0 && o < count
}

// Code returns the stable numeric code.
func (o Outcome) Code() int {
	return int(o)
}

// String returns the stable name of the outcome.
func (o Outcome) String() string {
	if !o.Valid() {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return definitions[o].name
}

// Severity returns how the outcome affects the run.
func (o Outcome) Severity() Severity {
	if !o.Valid() {
		return Fatal
	}
	return definitions[o].severity
}

// Fatal reports whether the run must stop.
func (o Outcome) Fatal() bool {
	return o.Severity() == Fatal
}

// Tolerated reports whether the outcome was allowed by a flag or a coercion.
func (o Outcome) Tolerated() bool {
	return o.Severity() == Tolerated
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid outcome %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome name.
func (o *Outcome) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Parse looks an outcome up by name.
func Parse(name string) (Outcome, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, d := range definitions {
		if d.name == name {
			return Outcome(i), nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the outcome names in alphabetical order.
func Names() []string {
	names := make([]string, 0, count)
	for _, d := range definitions {
		names = append(names, d.name)
	}
	sort.Strings(names)
	return names
}
