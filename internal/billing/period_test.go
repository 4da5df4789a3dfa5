package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveCalendarMonth(t *testing.T) {
	r := NewResolver(zap.NewNop())

	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"31-day month", date(2025, time.January, 10), date(2025, time.January, 1), date(2025, time.January, 31)},
		{"30-day month", date(2025, time.April, 30), date(2025, time.April, 1), date(2025, time.April, 30)},
		{"february non-leap", date(2025, time.February, 14), date(2025, time.February, 1), date(2025, time.February, 28)},
		{"february leap year", date(2024, time.February, 29), date(2024, time.February, 1), date(2024, time.February, 29)},
		{"december", date(2025, time.December, 31), date(2025, time.December, 1), date(2025, time.December, 31)},
		{"first of month", date(2025, time.June, 1), date(2025, time.June, 1), date(2025, time.June, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := r.Resolve(CycleCalendarMonth, tt.ref)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, endOfDay(tt.wantEnd), p.End)
			assert.True(t, p.Contains(tt.ref))
		})
	}
}

func TestResolveMidMonth(t *testing.T) {
	r := NewResolver(zap.NewNop())

	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"on the 16th", date(2025, time.March, 16), date(2025, time.March, 16), date(2025, time.April, 15)},
		{"on the 15th", date(2025, time.March, 15), date(2025, time.February, 16), date(2025, time.March, 15)},
		{"late in month", date(2025, time.March, 28), date(2025, time.March, 16), date(2025, time.April, 15)},
		{"early in month", date(2025, time.March, 3), date(2025, time.February, 16), date(2025, time.March, 15)},
		{"year boundary forward", date(2025, time.December, 20), date(2025, time.December, 16), date(2026, time.January, 15)},
		{"year boundary backward", date(2026, time.January, 10), date(2025, time.December, 16), date(2026, time.January, 15)},
		{"into leap february", date(2024, time.February, 10), date(2024, time.January, 16), date(2024, time.February, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := r.Resolve(CycleMidMonth, tt.ref)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, endOfDay(tt.wantEnd), p.End)
			assert.True(t, p.Contains(tt.ref))
		})
	}
}

func TestResolveAlwaysContainsReference(t *testing.T) {
	r := NewResolver(zap.NewNop())

	// Walk every day of two years, one a leap year.
	for _, anchor := range []int{CycleCalendarMonth, CycleMidMonth} {
		day := date(2024, time.January, 1)
		for day.Year() < 2026 {
			p := r.Resolve(anchor, day)
			assert.True(t, p.Contains(day), "anchor %d, day %s not in [%s, %s]",
				anchor, day, p.Start, p.End)
			day = day.AddDate(0, 0, 1)
		}
	}
}

func TestResolveInvalidAnchorFallsBackToSingleDay(t *testing.T) {
	r := NewResolver(zap.NewNop())

	ref := date(2025, time.July, 9)
	p := r.Resolve(7, ref)
	assert.Equal(t, ref, p.Start)
	assert.Equal(t, endOfDay(ref), p.End)
	assert.True(t, p.Contains(ref))
}

func TestPeriodContainsBoundsInclusive(t *testing.T) {
	p := Period{Start: date(2025, time.January, 16), End: endOfDay(date(2025, time.February, 15))}

	assert.True(t, p.Contains(date(2025, time.January, 16)))
	assert.True(t, p.Contains(date(2025, time.February, 15)))
	assert.False(t, p.Contains(date(2025, time.January, 15)))
	assert.False(t, p.Contains(date(2025, time.February, 16)))
}
