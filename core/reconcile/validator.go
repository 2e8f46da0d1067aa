package reconcile

import (
	"fmt"
	"sort"

	"report-reconciler/core/outcome"
	"report-reconciler/core/table"
)

// Validate classifies two conditioned tables by shape, column names and column
// types, in that order. The first fatal finding stops the checks. Type mismatches
// are resolved through the coercion policy before they are classified.
func Validate(manual, automated *table.Table, opts Options) *ValidationResult {
	res := &ValidationResult{
		ManualShape:    shapeOf(manual),
		AutomatedShape: shapeOf(automated),
		Manual:         manual,
		Automated:      automated,
	}

	if res.ManualShape.Cols != res.AutomatedShape.Cols {
		res.Outcome = outcome.ColumnCountMismatch
		return res
	}
	if res.ManualShape.Rows != res.AutomatedShape.Rows {
		if !opts.IgnoreRowCount {
			res.Outcome = outcome.RowCountMismatch
			return res
		}
		res.Tolerated = append(res.Tolerated, outcome.RowCountTolerated)
	}

	if diff := symmetricDifference(manual.Names(), automated.Names()); len(diff) > 0 {
		res.ColumnDiff = diff
		res.Outcome = outcome.SchemaMismatch
		return res
	}

	unresolved := 0
	for i := 0; i < manual.NumCols(); i++ {
		mc := manual.At(i)
		j := automated.Index(mc.Name)
		ac := automated.At(j)
		if mc.Type == ac.Type {
			continue
		}

		mismatch := TypeMismatch{Column: mc.Name, Manual: mc.Type, Automated: ac.Type}
		switch opts.Coercion.For(mc.Name) {
		case CoerceAutomatedToManual:
			coerced, err := table.Coerce(ac, mc.Type)
			if err == nil {
				automated, err = automated.Replace(j, coerced)
			}
			mismatch.Coerced, mismatch.Resolution = coercionResolution("automated", mc.Type, err)
		case CoerceManualToAutomated:
			coerced, err := table.Coerce(mc, ac.Type)
			if err == nil {
				manual, err = manual.Replace(i, coerced)
			}
			mismatch.Coerced, mismatch.Resolution = coercionResolution("manual", ac.Type, err)
		default:
			mismatch.Resolution = "not coerced"
		}
		if !mismatch.Coerced {
			unresolved++
		}
		res.TypeMismatches = append(res.TypeMismatches, mismatch)
	}
	res.Manual, res.Automated = manual, automated

	switch {
	case len(res.TypeMismatches) == 0:
		res.Outcome = outcome.Validated
	case unresolved > 0 && !opts.IgnoreTypes:
		res.Outcome = outcome.TypeMismatch
	default:
		res.Tolerated = append(res.Tolerated, outcome.TypeMismatchTolerated)
		res.Outcome = outcome.TypeMismatchTolerated
	}
	return res
}

func coercionResolution(side string, target table.DType, err error) (bool, string) {
	if err != nil {
		return false, fmt.Sprintf("coercion of %s column to %s failed: %v", side, target, err)
	}
	return true, fmt.Sprintf("coerced %s column to %s", side, target)
}

// symmetricDifference returns the names present in exactly one list, sorted.
func symmetricDifference(a, b []string) []string {
	inA := make(map[string]struct{}, len(a))
	for _, n := range a {
		inA[n] = struct{}{}
	}
	inB := make(map[string]struct{}, len(b))
	for _, n := range b {
		inB[n] = struct{}{}
	}

	var diff []string
	for n := range inA {
		if _, ok := inB[n]; !ok {
			diff = append(diff, n)
		}
	}
	for n := range inB {
		if _, ok := inA[n]; !ok {
			diff = append(diff, n)
		}
	}
	sort.Strings(diff)
	return diff
}
