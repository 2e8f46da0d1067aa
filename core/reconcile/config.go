package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"report-reconciler/core/utils"
)

// Config is the configuration section of a run.
type Config struct {
	// NoiseColumns are removed from both tables before validation.
	NoiseColumns []string `mapstructure:"noise_columns" default:"id,via,Original Provider name"`
	// IgnoreRowCount tolerates tables with different row counts.
	IgnoreRowCount bool `mapstructure:"ignore_row_count" default:"false"`
	// IgnoreTypes tolerates same-named columns with different types.
	IgnoreTypes bool `mapstructure:"ignore_types" default:"false"`
	// Coercion is the policy applied to every mismatched column (none, automated-to-manual, manual-to-automated).
	Coercion string `mapstructure:"coercion" default:"none"`
	// CoerceColumns overrides the policy per column.
	CoerceColumns map[string]string `mapstructure:"coerce_columns"`
	// SortKeys is the ordered tuple rows are aligned on.
	SortKeys []string `mapstructure:"sort_keys" default:"Account,Product name,Net billed,Gross commission"`
	// RequireUniqueKeys stops the run when rows share a sort key.
	RequireUniqueKeys bool `mapstructure:"require_unique_keys" default:"false"`
	// AggregateKey is the column totals are grouped by.
	AggregateKey string `mapstructure:"aggregate_key" default:"Account"`
	// AggregateMeasure is the column summed per group.
	AggregateMeasure string `mapstructure:"aggregate_measure" default:"Gross commission"`
	// Tolerance is the absolute difference under which numeric cells are equal.
	Tolerance float64 `mapstructure:"tolerance" default:"0.01"`
}

// Options converts the configuration into engine options.
func (c Config) Options() (Options, error) {
	if c.Tolerance < 0 {
		return Options{}, fmt.Errorf("tolerance must not be negative, got %v", c.Tolerance)
	}
	keys := trimAll(c.SortKeys)
	if len(keys) == 0 {
		return Options{}, errors.New("at least one sort key is required")
	}
	if strings.TrimSpace(c.AggregateKey) == "" || strings.TrimSpace(c.AggregateMeasure) == "" {
		return Options{}, errors.New("aggregate key and measure are required")
	}

	policy, err := ParseCoercionPolicy(c.Coercion)
	if err != nil {
		return Options{}, err
	}
	coercion := Coercion{Default: policy}
	if len(c.CoerceColumns) > 0 {
		coercion.Columns = make(map[string]CoercionPolicy, len(c.CoerceColumns))
		folded := make(map[string]string, len(c.CoerceColumns))
		for column, name := range c.CoerceColumns {
			p, err := ParseCoercionPolicy(name)
			if err != nil {
				return Options{}, fmt.Errorf("column %q: %w", column, err)
			}
			key := utils.FoldName(column)
			if prev, ok := folded[key]; ok {
				return Options{}, fmt.Errorf("columns %q and %q name the same column", prev, column)
			}
			folded[key] = column
			coercion.Columns[column] = p
		}
	}

	return Options{
		NoiseColumns:      trimAll(c.NoiseColumns),
		IgnoreRowCount:    c.IgnoreRowCount,
		IgnoreTypes:       c.IgnoreTypes,
		Coercion:          coercion,
		SortKeys:          keys,
		RequireUniqueKeys: c.RequireUniqueKeys,
		AggregateKey:      strings.TrimSpace(c.AggregateKey),
		AggregateMeasure:  strings.TrimSpace(c.AggregateMeasure),
		Tolerance:         c.Tolerance,
	}, nil
}

func trimAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
