package service

import (
	"fmt"
	"time"
)

// MonthKey identifies one calendar month. Day is always the 1st, date
// granularity only.
type MonthKey struct {
	Year  int
	Month time.Month
}

func FirstOfMonth(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

func CurrentMonth() MonthKey {
	return FirstOfMonth(time.Now().UTC())
}

// Next advances exactly one calendar month, rolling December into
// January of the following year. Never skips or repeats.
func (k MonthKey) Next() MonthKey {
	if k.Month == time.December {
		return MonthKey{Year: k.Year + 1, Month: time.January}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// Date returns the first-of-month date in UTC, as stored in fee_ledger.
func (k MonthKey) Date() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d-01", k.Year, int(k.Month))
}
