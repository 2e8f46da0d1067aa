// Package integrity checks that a vendor folder holds everything a run needs.
//
// # Checks Provided
//
//   - Structure: the rpm_files_manual, rpm_files_automation and output folders under <vendor>/test_files.
//   - Mapping: the column_mapping.xlsx workbook under <vendor>/test_files.
//
// Both checks run either against the local root or against the bucket, where
// folders are empty objects whose key ends in a slash.
//
// # Fixing
//
// Missing folders can be created: directories locally, folder objects in the
// bucket (creating the bucket first when needed). Missing files are reported
// only, since their content cannot be guessed.
package integrity
