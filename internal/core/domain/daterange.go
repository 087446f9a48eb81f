package domain

import (
	"fmt"
	"time"
)

// RangeKind selects one of the predefined dashboard date windows.
type RangeKind string

const (
	RangeThisMonth RangeKind = "THIS_MONTH"
	RangeLastMonth RangeKind = "LAST_MONTH"
	RangeCustom    RangeKind = "CUSTOM"
	RangeAllTime   RangeKind = "ALL_TIME"
)

// DateRange is an inclusive [From, To] window. A zero-value range (AllTime)
// contains every date.
type DateRange struct {
	Kind RangeKind `json:"kind"`
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// endOfDay extends t to the last millisecond of its calendar day, so the
// last day of a month is included up to 23:59:59.999.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, 1).
		Add(-time.Millisecond)
}

// startOfMonth returns midnight on the first day of t's month.
func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// NewDateRange resolves a range kind relative to now. Custom ranges use the
// provided from/to dates, widened to whole days at both ends.
func NewDateRange(kind RangeKind, now time.Time, from, to time.Time) (DateRange, error) {
	switch kind {
	case RangeThisMonth:
		start := startOfMonth(now)
		return DateRange{Kind: kind, From: start, To: endOfDay(start.AddDate(0, 1, -1))}, nil
	case RangeLastMonth:
		start := startOfMonth(now).AddDate(0, -1, 0)
		return DateRange{Kind: kind, From: start, To: endOfDay(start.AddDate(0, 1, -1))}, nil
	case RangeCustom:
		if to.Before(from) {
			return DateRange{}, fmt.Errorf("invalid custom range: to %s before from %s", to.Format(time.DateOnly), from.Format(time.DateOnly))
		}
		y, m, d := from.Date()
		return DateRange{
			Kind: kind,
			From: time.Date(y, m, d, 0, 0, 0, 0, from.Location()),
			To:   endOfDay(to),
		}, nil
	case RangeAllTime:
		return DateRange{Kind: kind}, nil
	default:
		return DateRange{}, fmt.Errorf("unknown range kind %q", kind)
	}
}

// Contains reports whether t falls inside the window, boundaries included.
func (r DateRange) Contains(t time.Time) bool {
	if r.Kind == RangeAllTime || (r.From.IsZero() && r.To.IsZero()) {
		return true
	}
	if t.Before(r.From) {
		return false
	}
	return !t.After(r.To)
}
