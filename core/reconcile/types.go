package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"report-reconciler/core/outcome"
	"report-reconciler/core/table"
	"report-reconciler/core/utils"

	"github.com/shopspring/decimal"
)

// CoercionPolicy decides which side of a type mismatch is converted.
type CoercionPolicy string

const (
	// CoerceNone leaves mismatched columns untouched.
	CoerceNone CoercionPolicy = "none"
	// CoerceAutomatedToManual converts the automated column to the manual type.
	CoerceAutomatedToManual CoercionPolicy = "automated-to-manual"
	// CoerceManualToAutomated converts the manual column to the automated type.
	CoerceManualToAutomated CoercionPolicy = "manual-to-automated"
)

// ParseCoercionPolicy converts a policy name. An empty name means CoerceNone.
func ParseCoercionPolicy(s string) (CoercionPolicy, error) {
	switch p := CoercionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return CoerceNone, nil
	case CoerceNone, CoerceAutomatedToManual, CoerceManualToAutomated:
		return p, nil
	}
	return "", fmt.Errorf("unknown coercion policy %q (want none, automated-to-manual or manual-to-automated)", s)
}

// Coercion holds the global coercion policy and per-column overrides.
type Coercion struct {
	// Default applies to columns without an override.
	Default CoercionPolicy
	// Columns maps column names to policies. Names match case-insensitively.
	Columns map[string]CoercionPolicy
}

// For returns the policy that applies to a column. An exact name wins over a
// case-insensitive one; among case-insensitive matches the smallest name wins.
func (c Coercion) For(column string) CoercionPolicy {
	if p, ok := c.Columns[column]; ok {
		return p
	}
	names := make([]string, 0, len(c.Columns))
	for name := range c.Columns {
		if utils.SameName(name, column) {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		sort.Strings(names)
		return c.Columns[names[0]]
	}
	if c.Default == "" {
		return CoerceNone
	}
	return c.Default
}

// Options controls a reconciliation run.
type Options struct {
	// NoiseColumns are removed from both tables before validation.
	NoiseColumns []string

	// IgnoreRowCount tolerates tables with different row counts.
	IgnoreRowCount bool

	// IgnoreTypes tolerates same-named columns with different types.
	IgnoreTypes bool

	// Coercion resolves type mismatches before they are classified.
	Coercion Coercion

	// SortKeys is the ordered tuple of canonical columns rows are aligned on.
	SortKeys []string

	// RequireUniqueKeys stops the run when several rows share a sort key.
	RequireUniqueKeys bool

	// AggregateKey is the column totals are grouped by.
	AggregateKey string

	// AggregateMeasure is the numeric column that is summed per group.
	AggregateMeasure string

	// Tolerance is the absolute difference under which numeric cells are equal.
	Tolerance float64
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		NoiseColumns:     []string{"id", "via", "Original Provider name"},
		Coercion:         Coercion{Default: CoerceNone},
		SortKeys:         []string{"Account", "Product name", "Net billed", "Gross commission"},
		AggregateKey:     "Account",
		AggregateMeasure: "Gross commission",
		Tolerance:        0.01,
	}
}

// MappingPair renames one source column to a canonical column.
type MappingPair struct {
	Source    string `json:"source" yaml:"source"`
	Canonical string `json:"canonical" yaml:"canonical"`
}

// ColumnMapping is the ordered list of renames that defines the canonical schema.
type ColumnMapping struct {
	pairs []MappingPair
}

// NewColumnMapping builds a mapping. Blank pairs are skipped and, for a
// repeated source name, the first pair wins.
func NewColumnMapping(pairs ...MappingPair) ColumnMapping {
	seen := make(map[string]struct{}, len(pairs))
	m := ColumnMapping{pairs: make([]MappingPair, 0, len(pairs))}
	for _, p := range pairs {
		p.Source = strings.TrimSpace(p.Source)
		p.Canonical = strings.TrimSpace(p.Canonical)
		if p.Source == "" || p.Canonical == "" {
			continue
		}
		if _, ok := seen[p.Source]; ok {
			continue
		}
		seen[p.Source] = struct{}{}
		m.pairs = append(m.pairs, p)
	}
	return m
}

// Pairs returns the mapping pairs in order.
func (m ColumnMapping) Pairs() []MappingPair {
	out := make([]MappingPair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Len returns the number of pairs.
func (m ColumnMapping) Len() int {
	return len(m.pairs)
}

// Lookup returns the canonical name of a source column.
func (m ColumnMapping) Lookup(source string) (string, bool) {
	for _, p := range m.pairs {
		if p.Source == source {
			return p.Canonical, true
		}
	}
	return "", false
}

// Canonical returns the distinct canonical names in mapping order.
func (m ColumnMapping) Canonical() []string {
	seen := make(map[string]struct{}, len(m.pairs))
	var out []string
	for _, p := range m.pairs {
		if _, ok := seen[p.Canonical]; ok {
			continue
		}
		seen[p.Canonical] = struct{}{}
		out = append(out, p.Canonical)
	}
	return out
}

// Shape is the (rows, columns) size of a table.
type Shape struct {
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}

func shapeOf(t *table.Table) Shape {
	r, c := t.Shape()
	return Shape{Rows: r, Cols: c}
}

// TypeMismatch describes one column whose type differs between the tables.
type TypeMismatch struct {
	Column     string      `json:"column" yaml:"column"`
	Manual     table.DType `json:"manual" yaml:"manual"`
	Automated  table.DType `json:"automated" yaml:"automated"`
	Resolution string      `json:"resolution" yaml:"resolution"`
	// Coerced is set when the policy converted one side successfully.
	Coerced bool `json:"coerced" yaml:"coerced"`
}

// ConditionResult holds the tables after noise columns were removed.
type ConditionResult struct {
	Manual           *table.Table
	Automated        *table.Table
	DroppedManual    []string
	DroppedAutomated []string
}

// ValidationResult is the classification of two conditioned tables.
type ValidationResult struct {
	Outcome        outcome.Outcome   `json:"outcome" yaml:"outcome"`
	ManualShape    Shape             `json:"manual_shape" yaml:"manual_shape"`
	AutomatedShape Shape             `json:"automated_shape" yaml:"automated_shape"`
	ColumnDiff     []string          `json:"column_diff,omitempty" yaml:"column_diff,omitempty"`
	TypeMismatches []TypeMismatch    `json:"type_mismatches,omitempty" yaml:"type_mismatches,omitempty"`
	Tolerated      []outcome.Outcome `json:"tolerated,omitempty" yaml:"tolerated,omitempty"`

	// Manual and Automated are the tables after coercion.
	Manual    *table.Table `json:"-" yaml:"-"`
	Automated *table.Table `json:"-" yaml:"-"`
}

// DiffRecord is one cell that differs between the aligned tables.
type DiffRecord struct {
	Row       int    `json:"row" yaml:"row"`
	Column    string `json:"column" yaml:"column"`
	Manual    any    `json:"manual" yaml:"manual"`
	Automated any    `json:"automated" yaml:"automated"`
}

// AggregateDiff is one group whose total differs between the tables.
// A side is invalid when the key only exists in the other table.
type AggregateDiff struct {
	Key       string              `json:"key" yaml:"key"`
	Manual    decimal.NullDecimal `json:"manual" yaml:"manual"`
	Automated decimal.NullDecimal `json:"automated" yaml:"automated"`
}

// Comparison is the result of comparing two aligned tables.
type Comparison struct {
	Outcome outcome.Outcome `json:"outcome" yaml:"outcome"`
	// AggregateKey and AggregateMeasure name the columns the totals were computed over.
	AggregateKey     string `json:"aggregate_key" yaml:"aggregate_key"`
	AggregateMeasure string `json:"aggregate_measure" yaml:"aggregate_measure"`

	Aggregates []AggregateDiff `json:"aggregates,omitempty" yaml:"aggregates,omitempty"`
	Diffs      []DiffRecord    `json:"diffs,omitempty" yaml:"diffs,omitempty"`
	// Detail explains unavailable or shape-mismatched comparisons.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Result is everything a run produced, in pipeline order.
type Result struct {
	Outcome    outcome.Outcome   `json:"outcome" yaml:"outcome"`
	Condition  ConditionResult   `json:"-" yaml:"-"`
	Validation *ValidationResult `json:"validation,omitempty" yaml:"validation,omitempty"`

	// MissingKeys lists absent sort keys per table ("manual", "automated").
	MissingKeys map[string][]string `json:"missing_keys,omitempty" yaml:"missing_keys,omitempty"`
	// DuplicateKeys counts rows sharing a sort key with the previous row, per table.
	DuplicateKeys map[string]int `json:"duplicate_keys,omitempty" yaml:"duplicate_keys,omitempty"`

	// Aligned is set once both tables were remapped and sorted.
	Aligned   bool         `json:"aligned" yaml:"aligned"`
	Manual    *table.Table `json:"-" yaml:"-"`
	Automated *table.Table `json:"-" yaml:"-"`

	Comparison *Comparison `json:"comparison,omitempty" yaml:"comparison,omitempty"`
}
