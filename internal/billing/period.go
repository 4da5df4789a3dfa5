package billing

import (
	"time"

	"go.uber.org/zap"
)

// Cycle anchors a company can be configured with. 1 means a standard
// calendar month, 16 means the 16th through the 15th of the next month.
const (
	CycleCalendarMonth = 1
	CycleMidMonth      = 16
)

// Period is one billing cycle at day granularity: Start is 00:00:00 of the
// first day, End is 23:59:59 of the last day, so date comparisons against
// both bounds are inclusive.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether date falls inside the period, bounds inclusive.
func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.Start) && !date.After(p.End)
}

// Resolver computes the billing period enclosing a reference date for a
// company's configured cycle anchor.
type Resolver struct {
	log *zap.Logger
}

func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log}
}

// Resolve returns the billing period that contains ref for the given cycle
// anchor. Only CycleCalendarMonth and CycleMidMonth are valid anchors; any
// other value degrades to a single-day period around ref and is logged,
// since it means the company configuration escaped validation.
func (r *Resolver) Resolve(monthStartDay int, ref time.Time) Period {
	year, month, day := ref.Date()
	loc := ref.Location()

	switch monthStartDay {
	case CycleCalendarMonth:
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		return Period{Start: start, End: endOfDay(lastDayOfMonth(year, month, loc))}

	case CycleMidMonth:
		if day < 16 {
			start := time.Date(year, month-1, 16, 0, 0, 0, 0, loc)
			end := time.Date(year, month, 15, 0, 0, 0, 0, loc)
			return Period{Start: start, End: endOfDay(end)}
		}
		start := time.Date(year, month, 16, 0, 0, 0, 0, loc)
		end := time.Date(year, month+1, 15, 0, 0, 0, 0, loc)
		return Period{Start: start, End: endOfDay(end)}
	}

	r.log.Warn("unknown billing cycle anchor, falling back to single-day period",
		zap.Int("month_start_day", monthStartDay),
		zap.Time("reference_date", ref),
	)
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return Period{Start: start, End: endOfDay(start)}
}

// lastDayOfMonth relies on time.Date normalizing day 0 of the next month,
// which handles 28/29/30/31-day months and December rollover.
func lastDayOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
}

func endOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())
}
