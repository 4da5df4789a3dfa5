package models

import "time"

// PaymentType selects how a company compensates work: by the hour or by
// piecework unit.
type PaymentType string

const (
	PaymentTypeHourly PaymentType = "hourly"
	PaymentTypePoint  PaymentType = "point"
)

// PaymentAction is the kind of entry appended to the payment ledger.
type PaymentAction string

const (
	PaymentDue       PaymentAction = "due"
	PaymentWithdrawn PaymentAction = "withdrawn"
)

type Company struct {
	ID            int64
	Name          string
	PaymentType   PaymentType
	HourlyRate    *float64 // meaningful for hourly companies
	PointRate     *float64 // per-unit default, overridable per record
	MonthStartDay int      // 1 = calendar month, 16 = mid-month cycle
	CreatedAt     time.Time
}

type WorkRecord struct {
	ID            int64
	CompanyID     int64
	Date          time.Time // calendar day the work is attributed to
	StartTime     *time.Time
	EndTime       *time.Time
	HoursWorked   *float64 // manual hours, used only when start/end absent
	BreakDuration *float64 // hours
	UnitCount     *float64
	UnitRate      *float64 // overrides the company point rate when set
	TransportBill *float64
	CreatedAt     time.Time

	// Joined fields
	CompanyName string
}

// CalculatedHours is the raw worked duration: end minus start when both
// instants are set, otherwise the manually entered hours, otherwise zero.
// A negative span (end before start) counts as zero.
func (w *WorkRecord) CalculatedHours() float64 {
	if w.StartTime != nil && w.EndTime != nil {
		hours := w.EndTime.Sub(*w.StartTime).Hours()
		if hours < 0 {
			return 0
		}
		return hours
	}
	if w.HoursWorked != nil {
		return *w.HoursWorked
	}
	return 0
}

// BillableHours is CalculatedHours minus the break, floored at zero.
func (w *WorkRecord) BillableHours() float64 {
	hours := w.CalculatedHours()
	if w.BreakDuration != nil {
		hours -= *w.BreakDuration
	}
	if hours < 0 {
		return 0
	}
	return hours
}

// PaymentRecord is an append-only ledger entry. Amount is a snapshot of the
// period total at recording time and never tracks later edits to the
// underlying work records.
type PaymentRecord struct {
	ID          string
	CompanyID   int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Amount      float64
	Action      PaymentAction
	Date        time.Time

	// Joined fields
	CompanyName string
}
