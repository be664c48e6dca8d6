package utils

import (
	"strconv"
	"strings"
	"time"
)

// CellString renders a raw sheet cell as a trimmed string.
func CellString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// CellFloat coerces a raw sheet cell to float64. Anything that does not
// parse comes back as 0 — a malformed cell must not fail the whole fetch or
// leak a NaN into the aggregations.
func CellFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// CellDate normalizes a cell to the YYYY-MM-DD form used everywhere for
// date comparison. Accepts plain dates, RFC 3339 timestamps and the
// spreadsheet's "2006-01-02 15:04:05" rendering; returns "" if nothing fits.
func CellDate(v interface{}) string {
	s := CellString(v)
	if s == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// CellTime parses a timestamp cell, zero time on failure.
func CellTime(v interface{}) time.Time {
	s := CellString(v)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
