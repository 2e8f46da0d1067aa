// Package utils provides common utility functions for the reconciler.
// It includes helpers for loose type conversion of cell values and for
// case-insensitive name matching, shared by packages that have no better home for them.
package utils
