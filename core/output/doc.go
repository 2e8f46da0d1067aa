// Package output renders command results as text tables, JSON or YAML.
//
// Commands build a Data value (headers plus string rows) for table output and
// hand the same underlying value to the JSON or YAML formatter otherwise. When no
// format is requested, DetectFormat picks a table for terminals and JSON for pipes.
package output
