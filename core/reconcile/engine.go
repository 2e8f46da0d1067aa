package reconcile

import (
	"errors"

	"report-reconciler/core/outcome"
	"report-reconciler/core/table"

	"go.uber.org/zap"
)

// Engine runs the reconciliation pipeline over two loaded tables.
type Engine struct {
	opts   Options
	logger *zap.Logger
}

// NewEngine creates an engine. A nil logger disables logging.
func NewEngine(opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{opts: opts, logger: logger}
}

// Options returns the options the engine runs with.
func (e *Engine) Options() Options {
	return e.opts
}

// Run conditions, validates, remaps, sorts and compares the two tables.
// It stops at the first fatal outcome; the returned result always carries the
// outcome of the last stage that ran.
func (e *Engine) Run(manual, automated *table.Table, mapping ColumnMapping) *Result {
	res := e.Validate(manual, automated)
	if res.Outcome.Fatal() {
		return res
	}

	m := Remap(res.Validation.Manual, mapping)
	a := Remap(res.Validation.Automated, mapping)
	e.logger.Debug("Remapped tables", zap.Strings("manual", m.Names()), zap.Strings("automated", a.Names()))

	if !e.align(res, m, a) {
		return res
	}

	res.Comparison = Compare(res.Manual, res.Automated, e.opts)
	res.Outcome = res.Comparison.Outcome
	e.logger.Debug("Compared tables",
		zap.Stringer("outcome", res.Outcome),
		zap.Int("aggregate_diffs", len(res.Comparison.Aggregates)),
		zap.Int("cell_diffs", len(res.Comparison.Diffs)),
	)
	return res
}

// Validate only conditions and validates the two tables.
func (e *Engine) Validate(manual, automated *table.Table) *Result {
	res := &Result{}

	res.Condition = Condition(manual, automated, e.opts.NoiseColumns)
	e.logger.Debug("Conditioned tables",
		zap.Strings("dropped_manual", res.Condition.DroppedManual),
		zap.Strings("dropped_automated", res.Condition.DroppedAutomated),
	)

	res.Validation = Validate(res.Condition.Manual, res.Condition.Automated, e.opts)
	res.Outcome = res.Validation.Outcome
	e.logger.Debug("Validated tables",
		zap.Stringer("outcome", res.Outcome),
		zap.Stringer("manual_shape", res.Validation.ManualShape),
		zap.Stringer("automated_shape", res.Validation.AutomatedShape),
	)
	return res
}

// align sorts both tables on the sort keys and records the aligned tables.
func (e *Engine) align(res *Result, manual, automated *table.Table) bool {
	sortedManual, errManual := Sort(manual, e.opts.SortKeys)
	sortedAutomated, errAutomated := Sort(automated, e.opts.SortKeys)
	if errManual != nil || errAutomated != nil {
		res.MissingKeys = make(map[string][]string)
		var keyErr *SortKeyError
		if errors.As(errManual, &keyErr) {
			res.MissingKeys["manual"] = keyErr.Missing
		}
		if errors.As(errAutomated, &keyErr) {
			res.MissingKeys["automated"] = keyErr.Missing
		}
		res.Outcome = outcome.SortKeyMissing
		return false
	}

	dupManual := DuplicateKeys(sortedManual, e.opts.SortKeys)
	dupAutomated := DuplicateKeys(sortedAutomated, e.opts.SortKeys)
	if dupManual > 0 || dupAutomated > 0 {
		res.DuplicateKeys = map[string]int{"manual": dupManual, "automated": dupAutomated}
		e.logger.Warn("Rows share sort keys, pairing them by position",
			zap.Int("manual", dupManual),
			zap.Int("automated", dupAutomated),
		)
		if e.opts.RequireUniqueKeys {
			res.Outcome = outcome.DuplicateSortKeys
			return false
		}
	}

	res.Aligned = true
	res.Manual = sortedManual
	res.Automated = sortedAutomated
	return true
}
