// Package utils provides small query-parameter helpers shared by handlers.
package utils

import "strconv"

// AtoiDefault parses s as an int, returning def when s is empty or invalid.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Limit resolves a page-size parameter: def when missing, invalid or not
// positive, otherwise n capped at max (max <= 0 means uncapped).
func Limit(s string, def, max int) int {
	n := AtoiDefault(s, def)
	if n <= 0 {
		n = def
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}
