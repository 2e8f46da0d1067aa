package loader

import (
	"fmt"

	"report-reconciler/core/reconcile"
	"report-reconciler/core/table"
	"report-reconciler/core/utils"
)

// MappingFromTable reads a column mapping from its source and target columns.
// Rows with a blank side are skipped.
func MappingFromTable(t *table.Table, sourceColumn, targetColumn string) (reconcile.ColumnMapping, error) {
	src, ok := t.Column(sourceColumn)
	if !ok {
		return reconcile.ColumnMapping{}, fmt.Errorf("%w: mapping has no %q column", table.ErrColumnNotFound, sourceColumn)
	}
	dst, ok := t.Column(targetColumn)
	if !ok {
		return reconcile.ColumnMapping{}, fmt.Errorf("%w: mapping has no %q column", table.ErrColumnNotFound, targetColumn)
	}

	pairs := make([]reconcile.MappingPair, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		pairs = append(pairs, reconcile.MappingPair{
			Source:    utils.ToString(src.Values[i]),
			Canonical: utils.ToString(dst.Values[i]),
		})
	}
	return reconcile.NewColumnMapping(pairs...), nil
}
