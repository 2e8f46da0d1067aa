// Package database handles database connections and schema inspection.
//
// Automated reports can be produced straight into a database table instead of a
// spreadsheet. This package wraps GORM to open that database (MySQL in production,
// SQLite for local runs and tests) and to read a table back together with the column
// types the schema declares.
//
// # Schema Inspection
//
// GetTableColumns returns the declared column types (SHOW COLUMNS on MySQL,
// PRAGMA table_info on SQLite). The loader maps them onto report column types so a
// DECIMAL column is compared numerically even when every row happens to be empty.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	columns, err := database.GetTableColumns(db, "acme_march")
//	names, rows, err := database.ReadRows(ctx, db, "acme_march")
package database
