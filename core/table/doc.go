// Package table provides the in-memory column store the reconciler operates on.
//
// A Table is an ordered list of named columns. Every column carries a declared
// type and one value per row; missing values are represented as nil. Values held
// by a column are always of the Go type matching its declared type:
//
//   - object:  string
//   - int64:   int64
//   - float64: float64
//   - bool:    bool
//
// # Inference
//
// Tables are built from raw spreadsheet cells with FromCells. The type of every
// column is inferred from its cells the way a dataframe reader would do it: a column
// of whole numbers becomes int64, unless some cells are empty, in which case it is
// widened to float64. Cells that the source stored as text are never read as numbers.
//
// # Immutability
//
// Operations that reshape a table (Drop, Select, Rename, Permute) return a new
// table and leave the receiver untouched, so each pipeline stage can narrate the
// state it received.
//
// # Usage
//
//	t, err := table.FromCells([]table.Cell{{Value: "Account"}}, [][]table.Cell{{{Value: "A-1"}}})
//	if err != nil {
//	    return err
//	}
//	col, ok := t.Column("Account")
package table
