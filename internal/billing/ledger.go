package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/aitullalimon/WorkingHoursApp/internal/models"
)

// RecordPayment mints a ledger entry snapshotting amount against the given
// billing period. The ledger trusts its input: amount is not recomputed or
// validated, and any sequence of due/withdrawn entries is allowed for a
// period. Entries are never mutated after creation.
func RecordPayment(companyID int64, p Period, amount float64, action models.PaymentAction) models.PaymentRecord {
	return models.PaymentRecord{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		PeriodStart: p.Start,
		PeriodEnd:   p.End,
		Amount:      amount,
		Action:      action,
		Date:        time.Now(),
	}
}
