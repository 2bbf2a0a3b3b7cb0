package types

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of business dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar day into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseOptionalDate parses s when non-empty.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TruncateDate drops the time of day, keeping the calendar day in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DateRange is an inclusive range of business dates. Nil bounds are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Validate checks that the range is not inverted.
func (r DateRange) Validate() error {
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return fmt.Errorf("startDate must not be after endDate")
	}
	return nil
}

// Key renders the range for cache keys.
func (r DateRange) Key() string {
	start, end := "-", "-"
	if r.Start != nil {
		start = FormatDate(*r.Start)
	}
	if r.End != nil {
		end = FormatDate(*r.End)
	}
	return start + ":" + end
}
