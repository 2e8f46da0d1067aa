package table

import (
	"strings"

	"report-reconciler/core/utils"
)

// Missing is how a missing value is written in narration.
const Missing = "NaN"

// FormatValue renders a cell value for narration.
func FormatValue(v any) string {
	if v == nil {
		return Missing
	}
	return utils.ToString(v)
}

// Compare orders two non-missing values. Numbers compare numerically, booleans
// with false first and everything else by the bytes of its text form.
func Compare(a, b any) int {
	if fa, ok := utils.ToFloat64(numericOnly(a)); ok {
		if fb, ok := utils.ToFloat64(numericOnly(b)); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(utils.ToString(a), utils.ToString(b))
}

// CompareMissingLast orders two values with missing values after everything else.
func CompareMissingLast(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return Compare(a, b)
}

// numericOnly hides strings from numeric comparison so that text columns
// holding digits still sort as text.
func numericOnly(v any) any {
	switch v.(type) {
	case int64, float64:
		return v
	}
	return nil
}
