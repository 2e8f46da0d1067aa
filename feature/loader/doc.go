// Package loader locates and reads the inputs of a reconciliation run.
//
// Inputs follow a fixed convention per vendor and filename:
//
//	<vendor>/test_files/rpm_files_manual/<filename>m.xlsx
//	<vendor>/test_files/rpm_files_automation/<filename>a.xlsx
//	<vendor>/test_files/column_mapping.xlsx
//
// Layout resolves these paths (and the output paths) relative to the configured
// root. The same relative paths are used as object keys when an input is configured to
// come from the bucket.
//
// # Sources
//
// Each input is read through a Source:
//   - FileSource: a local .xlsx or .csv file
//   - ObjectSource: an object in the S3/MinIO bucket
//   - DatabaseSource: a table the automation wrote into MySQL or SQLite (automated input only)
//
// A missing input is reported as ErrInputNotFound wrapped in an *InputError naming the
// role (manual, automated, mapping). Callers stop the run on any load failure.
package loader
