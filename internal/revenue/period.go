package revenue

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPeriodType is returned for a granularity outside
// daily/weekly/monthly/annual.
var ErrInvalidPeriodType = errors.New("invalid period type: must be 'daily', 'weekly', 'monthly', or 'annual'")

// PeriodType is a report granularity.
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
	PeriodAnnual  PeriodType = "annual"
)

// ParsePeriodType validates a granularity supplied by the caller.
func ParsePeriodType(s string) (PeriodType, error) {
	switch PeriodType(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAnnual:
		return PeriodType(s), nil
	}
	return "", ErrInvalidPeriodType
}

// Key returns the bucket key for a timestamp. Keys sort lexicographically in
// chronological order for every granularity: 2023-03-15, 2023-W11, 2023-03,
// 2023.
//
// Weekly convention: weeks run Sunday through Saturday and belong to the
// calendar year of their Sunday. The week containing the year's first Sunday
// is W01; days before it carry the previous year's last week key.
func (p PeriodType) Key(t time.Time) string {
	switch p {
	case PeriodDaily:
		return t.Format("2006-01-02")
	case PeriodWeekly:
		start := weekStart(t)
		week := 1 + (start.YearDay()-1)/7
		return fmt.Sprintf("%04d-W%02d", start.Year(), week)
	case PeriodMonthly:
		return t.Format("2006-01")
	case PeriodAnnual:
		return t.Format("2006")
	}
	return ""
}

// weekStart returns midnight of the Sunday on or before t.
func weekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}
