package domain

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month as "YYYY-MM"
type MonthKey string

const monthLayout = "2006-01"

// MonthOf returns the month containing t
func MonthOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthLayout))
}

// ParseMonth validates and normalizes a "YYYY-MM" string
func ParseMonth(s string) (MonthKey, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// Valid reports whether the key is a well-formed month
func (m MonthKey) Valid() bool {
	_, err := time.Parse(monthLayout, string(m))
	return err == nil
}

// Label returns a display label such as "Nov 2025"
func (m MonthKey) Label() string {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return string(m)
	}
	return t.Format("Jan 2006")
}

// Before reports whether m sorts before other.
// "YYYY-MM" compares correctly as a string.
func (m MonthKey) Before(other MonthKey) bool {
	return m < other
}
