package utils

import (
	"math"
	"strconv"
	"strings"
)

// Round4 rounds to four decimal places, the precision used for persisted
// confidence values.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// ZeroPad6 left-pads a string with zeros to six characters and truncates
// anything longer, keeping the leading characters.
func ZeroPad6(s string) string {
	if len(s) >= 6 {
		return s[:6]
	}
	return strings.Repeat("0", 6-len(s)) + s
}

// ParseIntOr parses s as an integer, returning fallback when it cannot.
func ParseIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
