package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/aitullalimon/WorkingHoursApp/internal/models"
)

func f(v float64) *float64 { return &v }

func ts(y int, m time.Month, d, hour, min int) *time.Time {
	t := time.Date(y, m, d, hour, min, 0, 0, time.UTC)
	return &t
}

func TestSelectRecords(t *testing.T) {
	p := Period{Start: date(2025, time.January, 16), End: endOfDay(date(2025, time.February, 15))}

	records := []models.WorkRecord{
		{ID: 1, CompanyID: 1, Date: date(2025, time.January, 16)}, // first day
		{ID: 2, CompanyID: 1, Date: date(2025, time.February, 15)}, // last day
		{ID: 3, CompanyID: 1, Date: date(2025, time.January, 15)}, // day before
		{ID: 4, CompanyID: 1, Date: date(2025, time.February, 16)}, // day after
		{ID: 5, CompanyID: 2, Date: date(2025, time.January, 20)},  // other company
	}

	selected := SelectRecords(records, 1, p)

	ids := make([]int64, 0, len(selected))
	for _, rec := range selected {
		ids = append(ids, rec.ID)
	}
	assert.ElementsMatch(t, []int64{1, 2}, ids)
}

func TestSelectRecordsEmptyInput(t *testing.T) {
	p := Period{Start: date(2025, time.January, 1), End: endOfDay(date(2025, time.January, 31))}
	assert.Empty(t, SelectRecords(nil, 1, p))
}

func TestComputeEarningsEmptyRecords(t *testing.T) {
	company := models.Company{ID: 1, PaymentType: models.PaymentTypeHourly, HourlyRate: f(30)}
	assert.Equal(t, Breakdown{}, ComputeEarnings(company, nil))
}

func TestComputeEarningsHourlyScenario(t *testing.T) {
	// 9:00-17:00 with a one hour break at 30/h.
	company := models.Company{
		ID:            1,
		PaymentType:   models.PaymentTypeHourly,
		HourlyRate:    f(30),
		MonthStartDay: CycleCalendarMonth,
	}
	records := []models.WorkRecord{{
		CompanyID:     1,
		Date:          date(2025, time.January, 10),
		StartTime:     ts(2025, time.January, 10, 9, 0),
		EndTime:       ts(2025, time.January, 10, 17, 0),
		BreakDuration: f(1),
	}}

	b := ComputeEarnings(company, records)
	assert.Equal(t, 7.0, b.Hours)
	assert.Equal(t, 210.0, b.HourlyPay)
	assert.Equal(t, 0.0, b.PiecePay)
	assert.Equal(t, 0.0, b.TransportPay)
	assert.Equal(t, 210.0, b.Total)
}

func TestComputeEarningsPieceworkScenario(t *testing.T) {
	company := models.Company{
		ID:            2,
		PaymentType:   models.PaymentTypePoint,
		PointRate:     f(5),
		MonthStartDay: CycleMidMonth,
	}
	r := NewResolver(zap.NewNop())
	p := r.Resolve(company.MonthStartDay, date(2025, time.January, 25))

	records := SelectRecords([]models.WorkRecord{{
		CompanyID: 2,
		Date:      date(2025, time.January, 20),
		UnitCount: f(12),
	}}, company.ID, p)

	assert.Len(t, records, 1)

	b := ComputeEarnings(company, records)
	assert.Equal(t, 12.0, b.Units)
	assert.Equal(t, 60.0, b.PiecePay)
	assert.Equal(t, 60.0, b.Total)
}

func TestComputeEarningsUnitRateFallback(t *testing.T) {
	company := models.Company{ID: 1, PaymentType: models.PaymentTypePoint, PointRate: f(5)}

	tests := []struct {
		name    string
		record  models.WorkRecord
		wantPay float64
	}{
		{"company rate when record has none", models.WorkRecord{UnitCount: f(10)}, 50},
		{"record rate overrides company rate", models.WorkRecord{UnitCount: f(10), UnitRate: f(8)}, 80},
		{"zero when neither rate set", models.WorkRecord{CompanyID: 3, UnitCount: f(10)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := company
			if tt.record.CompanyID == 3 {
				c = models.Company{ID: 3, PaymentType: models.PaymentTypePoint}
			}
			b := ComputeEarnings(c, []models.WorkRecord{tt.record})
			assert.Equal(t, tt.wantPay, b.PiecePay)
		})
	}
}

func TestComputeEarningsDoesNotBranchOnPaymentType(t *testing.T) {
	// A record carrying both hours and units contributes both components,
	// whatever the company's payment type says.
	company := models.Company{
		ID:          1,
		PaymentType: models.PaymentTypeHourly,
		HourlyRate:  f(20),
		PointRate:   f(5),
	}
	records := []models.WorkRecord{{
		CompanyID:     1,
		HoursWorked:   f(4),
		UnitCount:     f(3),
		TransportBill: f(10),
	}}

	b := ComputeEarnings(company, records)
	assert.Equal(t, 80.0, b.HourlyPay)
	assert.Equal(t, 15.0, b.PiecePay)
	assert.Equal(t, 10.0, b.TransportPay)
	assert.Equal(t, 105.0, b.Total)
}

func TestComputeEarningsAdditive(t *testing.T) {
	company := models.Company{ID: 1, HourlyRate: f(25), PointRate: f(4)}

	a := []models.WorkRecord{
		{HoursWorked: f(3), TransportBill: f(12.5)},
		{UnitCount: f(7)},
	}
	b := []models.WorkRecord{
		{HoursWorked: f(5.5), UnitCount: f(2), UnitRate: f(6)},
	}

	separate := ComputeEarnings(company, a).Total + ComputeEarnings(company, b).Total
	combined := ComputeEarnings(company, append(append([]models.WorkRecord{}, a...), b...)).Total
	assert.InDelta(t, separate, combined, 1e-9)
}

func TestBillableHoursClamping(t *testing.T) {
	tests := []struct {
		name   string
		record models.WorkRecord
		want   float64
	}{
		{
			"break subtracted",
			models.WorkRecord{StartTime: ts(2025, time.May, 1, 10, 0), EndTime: ts(2025, time.May, 1, 12, 0), BreakDuration: f(0.5)},
			1.5,
		},
		{
			"end before start clamps to zero",
			models.WorkRecord{StartTime: ts(2025, time.May, 1, 12, 0), EndTime: ts(2025, time.May, 1, 10, 0)},
			0,
		},
		{
			"break exceeding duration clamps to zero",
			models.WorkRecord{HoursWorked: f(2), BreakDuration: f(3)},
			0,
		},
		{
			"manual hours used when no instants",
			models.WorkRecord{HoursWorked: f(6.5)},
			6.5,
		},
		{
			"instants win over manual hours",
			models.WorkRecord{StartTime: ts(2025, time.May, 1, 9, 0), EndTime: ts(2025, time.May, 1, 13, 0), HoursWorked: f(99)},
			4,
		},
		{
			"nothing set",
			models.WorkRecord{},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.BillableHours())
		})
	}
}
