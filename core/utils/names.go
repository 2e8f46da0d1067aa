package utils

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldName normalizes a column name for case-insensitive matching.
// Surrounding whitespace is ignored and the rest is Unicode case folded.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName reports whether two column names match case-insensitively.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}
