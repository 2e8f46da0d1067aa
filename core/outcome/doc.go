// Package outcome defines the closed set of classified results a reconciliation
// run can end in.
//
// Every Outcome has a stable numeric code, a stable snake_case name used in
// configuration and structured output, a severity, and a human readable message.
// The numeric codes of the first eleven outcomes match the codes historically written
// to run logs so existing log readers keep working.
//
// # Severity
//
//   - Success: the run may continue or has completed without findings.
//   - Tolerated: a discrepancy was found but a flag or coercion allowed the run to continue.
//   - Fatal: the run stops; no workbook is produced unless alignment already succeeded.
//
// # Messages
//
// Messages are compiled in and can be overridden per outcome name:
//
//	msgs, err := outcome.DefaultMessages().With(map[string]string{
//	    "values_differ": "Reports differ.",
//	})
//	fmt.Println(msgs.Text(outcome.ValuesDiffer))
package outcome
