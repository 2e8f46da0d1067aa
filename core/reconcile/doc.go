// Package reconcile compares a manually prepared report against its automated
// counterpart.
//
// A run is a single pass over two in-memory tables. Each stage consumes the
// output of the previous one and the first fatal outcome stops the pipeline:
//
//  1. Condition: drop noise columns (identifiers, provenance) from both tables.
//  2. Validate: compare shapes, column names and column types; apply the coercion policy.
//  3. Remap: rename columns through the ColumnMapping and drop everything else.
//  4. Sort: order rows of both tables over the sort-key tuple so they align by position.
//  5. Compare: exact per-key totals first, then a tolerant cell-by-cell diff.
//
// # Outcomes
//
// Every stage reports one of the outcomes of package outcome. Row-count and type
// mismatches can be tolerated through Options; column-count and schema mismatches
// never are. Differences in cell values are not errors, they are the data the run
// exists to produce.
//
// # Exact totals, tolerant cells
//
// Totals per aggregate key are summed with decimal arithmetic and must match exactly,
// while cells are equal within Options.Tolerance. A total off by half a cent fails the
// aggregate check even though every cell would pass.
//
// # Usage
//
//	engine := reconcile.NewEngine(reconcile.DefaultOptions(), logger)
//	res := engine.Run(manual, automated, mapping)
//	if res.Outcome.Fatal() {
//	    // narrate res.Validation or res.Comparison
//	}
package reconcile
