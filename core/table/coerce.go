package table

import (
	"errors"
	"fmt"

	"report-reconciler/core/utils"
)

// ErrCoercion is returned when a value cannot be represented in the target type.
var ErrCoercion = errors.New("value cannot be coerced")

// Coerce converts a column to the target type. Missing values stay missing,
// except for int64 and bool targets which cannot hold them.
func Coerce(c Column, target DType) (Column, error) {
	out := Column{Name: c.Name, Type: target, Values: make([]any, len(c.Values))}
	if c.Type == target {
		copy(out.Values, c.Values)
		return out, nil
	}

	for i, v := range c.Values {
		if v == nil {
			if target == Int64 || target == Bool {
				return Column{}, fmt.Errorf("%w: %q row %d is missing and %s has no missing value", ErrCoercion, c.Name, i, target)
			}
			continue
		}

		var (
			converted any
			ok        bool
		)
		switch target {
		case Object:
			converted, ok = utils.ToString(v), true
		case Float64:
			if b, isBool := v.(bool); isBool {
				converted, ok = boolToFloat(b), true
			} else {
				converted, ok = utils.ToFloat64(v)
			}
		case Int64:
			converted, ok = utils.ToInt64(v)
		case Bool:
			converted, ok = utils.ToBool(v)
		}
		if !ok {
			return Column{}, fmt.Errorf("%w: %q row %d value %q to %s", ErrCoercion, c.Name, i, FormatValue(v), target)
		}
		out.Values[i] = converted
	}
	return out, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
