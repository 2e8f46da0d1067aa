// Package report turns the result of a reconciliation run into its outputs.
//
// # Run log
//
// The run log is a plain text file shared by every run of a vendor. Each run
// appends a section opened by a line of dashes and a header naming the vendor,
// the filename, the start time and the run id. Stages are narrated in pipeline
// order; detail such as type mismatches or cell differences is rendered as a
// text table. Fatal validation outcomes are preceded by
// "ERROR: Dataframes failed basic validation".
//
// # Output workbook
//
// Once both tables were aligned the run writes <filename>_output.xlsx with the
// sorted manual and automated tables. Differing cells are highlighted, and a
// third sheet lists the cell differences or, for aggregate mismatches, the
// per-key totals.
//
// # Usage
//
//	j, err := report.OpenJournal(path, false)
//	if err != nil {
//	    return err
//	}
//	defer j.Close()
//	_ = j.Begin(report.Run{ID: id, Vendor: vendor, Filename: filename, Started: time.Now()})
//	_ = j.Narrate(res)
package report
