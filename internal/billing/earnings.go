package billing

import (
	"github.com/aitullalimon/WorkingHoursApp/internal/models"
)

// Breakdown is the earnings aggregation over a set of work records.
// Monetary values are raw float64 sums; rounding is left to display code.
type Breakdown struct {
	Hours        float64
	Units        float64
	HourlyPay    float64
	PiecePay     float64
	TransportPay float64
	Total        float64
}

// SelectRecords returns the records that belong to the company and whose
// date falls within the period, both bounds inclusive. Input order is kept
// but callers must not depend on it.
func SelectRecords(records []models.WorkRecord, companyID int64, p Period) []models.WorkRecord {
	var selected []models.WorkRecord
	for _, rec := range records {
		if rec.CompanyID == companyID && p.Contains(rec.Date) {
			selected = append(selected, rec)
		}
	}
	return selected
}

// ComputeEarnings reduces records into a breakdown for the company.
//
// Both pay components are always summed, regardless of the company's
// payment type: a record carrying piecework fields contributes piece pay
// even for an hourly company, and vice versa. Absent fields default to
// zero, so records simply contribute nothing on components they don't use.
// The per-unit rate resolves record override first, then the company point
// rate, then zero, which lets one company mix historical rates.
func ComputeEarnings(company models.Company, records []models.WorkRecord) Breakdown {
	var b Breakdown

	for i := range records {
		rec := &records[i]
		b.Hours += rec.BillableHours()

		if rec.UnitCount != nil {
			b.Units += *rec.UnitCount
			rate := 0.0
			switch {
			case rec.UnitRate != nil:
				rate = *rec.UnitRate
			case company.PointRate != nil:
				rate = *company.PointRate
			}
			b.PiecePay += *rec.UnitCount * rate
		}

		if rec.TransportBill != nil {
			b.TransportPay += *rec.TransportBill
		}
	}

	if company.HourlyRate != nil {
		b.HourlyPay = b.Hours * *company.HourlyRate
	}

	b.Total = b.HourlyPay + b.PiecePay + b.TransportPay
	return b
}
