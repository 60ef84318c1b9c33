package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// SuppliedDatesDelimiter separates entries in the stored supplied_dates column.
const SuppliedDatesDelimiter = ","

var (
	// ErrEmptyDate is returned when a blank date is toggled.
	ErrEmptyDate = errors.New("date is required")
	// ErrDateContainsDelimiter is returned for dates that would corrupt the stored list.
	ErrDateContainsDelimiter = errors.New("date must not contain a comma")
)

// SuppliedDates is the ordered set of dates on which a medication dose was
// supplied. Each date appears at most once and new dates are appended at the
// end. It is stored as one comma-delimited text column.
type SuppliedDates []string

// ParseSuppliedDates decodes the stored column. Empty segments are skipped and
// repeated dates keep their first position.
func ParseSuppliedDates(raw string) SuppliedDates {
	if raw == "" {
		return SuppliedDates{}
	}
	parts := strings.Split(raw, SuppliedDatesDelimiter)
	dates := make(SuppliedDates, 0, len(parts))
	for _, p := range parts {
		if p == "" || slices.Contains(dates, p) {
			continue
		}
		dates = append(dates, p)
	}
	return dates
}

// ValidateSuppliedDate checks that date can be stored as a single entry.
func ValidateSuppliedDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return ErrEmptyDate
	}
	if strings.Contains(date, SuppliedDatesDelimiter) {
		return ErrDateContainsDelimiter
	}
	return nil
}

// Contains reports whether date is in the set.
func (d SuppliedDates) Contains(date string) bool {
	return slices.Contains(d, date)
}

// Toggle returns a copy of the set with date removed when present or appended
// when absent. The receiver is not modified.
func (d SuppliedDates) Toggle(date string) (next SuppliedDates, added bool, err error) {
	if err := ValidateSuppliedDate(date); err != nil {
		return nil, false, err
	}
	if i := slices.Index(d, date); i >= 0 {
		next = make(SuppliedDates, 0, len(d)-1)
		next = append(next, d[:i]...)
		next = append(next, d[i+1:]...)
		return next, false, nil
	}
	next = make(SuppliedDates, 0, len(d)+1)
	next = append(next, d...)
	next = append(next, date)
	return next, true, nil
}

// String renders the stored form.
func (d SuppliedDates) String() string {
	return strings.Join(d, SuppliedDatesDelimiter)
}

// Value implements driver.Valuer.
func (d SuppliedDates) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *SuppliedDates) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = SuppliedDates{}
	case string:
		*d = ParseSuppliedDates(v)
	case []byte:
		*d = ParseSuppliedDates(string(v))
	default:
		return fmt.Errorf("supplied dates: unsupported source type %T", src)
	}
	return nil
}

// MarshalJSON always emits an array, never null.
func (d SuppliedDates) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(d))
}
