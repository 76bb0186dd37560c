package confenv

import (
	"strconv"
	"strings"
)

// Coerce converts a raw environment string back into a native value:
// "true" and "false" (case-insensitive) become bool, integer literals become
// int, float literals become float64, and everything else stays a string.
// The string "1" is the integer 1, never a boolean.
func Coerce(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
