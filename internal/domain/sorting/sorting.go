// Package sorting orders flat records by a table column.
package sorting

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
)

// Direction is a sort direction.
type Direction string

// Supported directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// ParseDirection accepts "asc" and "desc" in any case.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", ErrUnknownDirection
	}
}

// Sort returns a new slice holding records ordered by the column key.
// The sort is stable, so equal values keep their relative input order.
func Sort(records []pal.FlatRecord, key string, dir Direction) ([]pal.FlatRecord, error) {
	col, ok := pal.ColumnByKey(key)
	if !ok {
		return nil, ErrUnknownKey
	}
	if dir != Asc && dir != Desc {
		return nil, ErrUnknownDirection
	}

	cmp := compareValues
	if col.Key == pal.KeyID {
		cmp = compareIDs
	}

	out := make([]pal.FlatRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].Value(col.Key)
		b, _ := out[j].Value(col.Key)
		c := cmp(a, b)
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out, nil
}

// Default returns records in the table's initial order: id descending.
func Default(records []pal.FlatRecord) []pal.FlatRecord {
	out, _ := Sort(records, pal.KeyID, Desc)
	return out
}

// compareIDs compares the digit content of two ids; garbage ids count as 0.
func compareIDs(a, b string) int {
	return compareInts(pal.NumericID(a), pal.NumericID(b))
}

// compareValues compares numerically when both values start with a finite
// number and falls back to lower-case string order otherwise.
func compareValues(a, b string) int {
	na, okA := leadingFloat(a)
	nb, okB := leadingFloat(b)
	if okA && okB {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// leadingFloat parses the longest numeric prefix of s after leading
// whitespace: "12abc" is 12, "abc" is not a number.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	digits := false
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && isDigit(s[end]) {
		end++
		digits = true
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			digits = true
		}
	}
	if !digits {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		if exp < len(s) && isDigit(s[exp]) {
			for exp < len(s) && isDigit(s[exp]) {
				exp++
			}
			end = exp
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !isRangeErr(err) {
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
