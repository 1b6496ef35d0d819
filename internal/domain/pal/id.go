package pal

import (
	"strconv"
	"strings"
)

// NumericID keeps only the digits of id and parses them.
// Ids without digits, or too large to parse, count as 0.
func NumericID(id string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, id)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// PadID left-pads id with zeros to at least width characters.
func PadID(id string, width int) string {
	if len(id) >= width {
		return id
	}
	return strings.Repeat("0", width-len(id)) + id
}

// SanitizeName replaces every character outside [A-Za-z0-9_-] with '_'.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
