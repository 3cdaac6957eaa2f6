package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// ParseDate reads YYYY-MM-DD (or an RFC 3339 timestamp, keeping its calendar day)
// and returns UTC midnight. Empty input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf truncates t to its calendar day in t's own location, as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Money rounds to minor units; every amount entering the ledger passes through it.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
