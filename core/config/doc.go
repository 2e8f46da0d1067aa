// Package config provides configuration management for the report reconciler.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional reconciler.yaml file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Reconcile: noise columns, tolerated findings, coercion policies, sort keys, aggregate columns, tolerance
//   - Paths: vendor folder layout, file suffixes and the source of every input
//   - Report: console echo, workbook sheets, upload and outcome message overrides
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: connection details of the database automated reports can be read from
//   - Log: Logging level and format
//
// Defaults come from the `default` struct tags. Every scalar key can be set
// through the environment, e.g. RECONCILE_TOLERANCE or PATHS_ROOT. List values
// are comma separated. Per-column coercion and message overrides are maps and
// can only be set in reconciler.yaml:
//
//	reconcile:
//	  coercion: none
//	  coerce_columns:
//	    units: automated-to-manual
//	report:
//	  messages:
//	    identical: Reports match.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
