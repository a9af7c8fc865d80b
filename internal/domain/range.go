package domain

import (
	"fmt"
	"time"
)

// Range selects a trailing window of entries.
type Range string

const (
	RangeWeek      Range = "week"
	RangeMonth     Range = "month"
	RangeSixMonths Range = "sixMonths"
	RangeYear      Range = "year"
	RangeAll       Range = "all"
)

// Ranges lists every range in display order.
var Ranges = []Range{RangeWeek, RangeMonth, RangeSixMonths, RangeYear, RangeAll}

// ParseRange accepts a range name. "6months" is accepted as an alias of
// sixMonths.
func ParseRange(s string) (Range, error) {
	switch s {
	case "week":
		return RangeWeek, nil
	case "month":
		return RangeMonth, nil
	case "sixMonths", "6months":
		return RangeSixMonths, nil
	case "year":
		return RangeYear, nil
	case "all", "":
		return RangeAll, nil
	}
	return "", fmt.Errorf("unknown range %q", s)
}

// Cutoff returns the earliest instant included by r relative to now. The
// second result is false for RangeAll, which has no lower bound.
// Calendar months and years are subtracted with time.AddDate, so day
// overflow normalizes forward (March 31 minus one month is March 3).
func (r Range) Cutoff(now time.Time) (time.Time, bool) {
	switch r {
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, -1, 0), true
	case RangeSixMonths:
		return now.AddDate(0, -6, 0), true
	case RangeYear:
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

// FilterEntries returns the entries of log dated on or after r's cutoff, in
// their original order. Undated entries only appear under RangeAll. The
// result never aliases log.
func FilterEntries(log []Entry, r Range, now time.Time) []Entry {
	cutoff, bounded := r.Cutoff(now)
	out := make([]Entry, 0, len(log))
	for _, e := range log {
		if bounded && (!e.Dated() || e.Date.Before(cutoff)) {
			continue
		}
		out = append(out, e)
	}
	return out
}
