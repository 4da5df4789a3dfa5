package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitullalimon/WorkingHoursApp/internal/billing"
	"github.com/aitullalimon/WorkingHoursApp/internal/db"
	"github.com/aitullalimon/WorkingHoursApp/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// A second pool connection would see an empty in-memory database.
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.MigrateDB(database))
	return database
}

func f(v float64) *float64 { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestCompany(t *testing.T, database *sql.DB, name string) *models.Company {
	t.Helper()
	c, err := NewCompanyRepo(database).Create(models.Company{
		Name:          name,
		PaymentType:   models.PaymentTypeHourly,
		HourlyRate:    f(30),
		MonthStartDay: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func TestCompanyRepoCreateAndGet(t *testing.T) {
	database := newTestDB(t)
	repo := NewCompanyRepo(database)

	created, err := repo.Create(models.Company{
		Name:          "Acme",
		PaymentType:   models.PaymentTypePoint,
		PointRate:     f(5.5),
		MonthStartDay: 16,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Acme", created.Name)
	assert.Equal(t, models.PaymentTypePoint, created.PaymentType)
	assert.Nil(t, created.HourlyRate)
	require.NotNil(t, created.PointRate)
	assert.Equal(t, 5.5, *created.PointRate)
	assert.Equal(t, 16, created.MonthStartDay)
	assert.False(t, created.CreatedAt.IsZero())

	byName, err := repo.GetByName("Acme")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.ID, byName.ID)

	missing, err := repo.GetByID(99999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCompanyRepoUpdate(t *testing.T) {
	database := newTestDB(t)
	repo := NewCompanyRepo(database)

	c := createTestCompany(t, database, "Before")
	c.Name = "After"
	c.PaymentType = models.PaymentTypePoint
	c.HourlyRate = nil
	c.PointRate = f(3)
	c.MonthStartDay = 16
	require.NoError(t, repo.Update(*c))

	got, err := repo.GetByID(c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, models.PaymentTypePoint, got.PaymentType)
	assert.Nil(t, got.HourlyRate)
	require.NotNil(t, got.PointRate)
	assert.Equal(t, 3.0, *got.PointRate)
	assert.Equal(t, 16, got.MonthStartDay)
}

func TestCompanyDeleteCascadesToWorkRecordsOnly(t *testing.T) {
	database := newTestDB(t)
	companyRepo := NewCompanyRepo(database)
	workRepo := NewWorkRecordRepo(database)
	paymentRepo := NewPaymentRepo(database)

	c := createTestCompany(t, database, "Doomed")

	rec, err := workRepo.Create(models.WorkRecord{
		CompanyID:   c.ID,
		Date:        day(2025, time.January, 10),
		HoursWorked: f(4),
	})
	require.NoError(t, err)

	period := billing.Period{Start: day(2025, time.January, 1), End: day(2025, time.January, 31)}
	entry, err := paymentRepo.Insert(billing.RecordPayment(c.ID, period, 120, models.PaymentDue))
	require.NoError(t, err)

	require.NoError(t, companyRepo.Delete(c.ID))

	gone, err := workRepo.GetByID(rec.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "work records must be deleted with their company")

	kept, err := paymentRepo.GetByID(entry.ID)
	require.NoError(t, err)
	require.NotNil(t, kept, "payment snapshots survive company deletion")
	assert.Equal(t, 120.0, kept.Amount)
	assert.Empty(t, kept.CompanyName)
}

func TestWorkRecordRoundTrip(t *testing.T) {
	database := newTestDB(t)
	repo := NewWorkRecordRepo(database)
	c := createTestCompany(t, database, "Acme")

	start := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 3, 17, 30, 0, 0, time.UTC)

	created, err := repo.Create(models.WorkRecord{
		CompanyID:     c.ID,
		Date:          day(2025, time.March, 3),
		StartTime:     &start,
		EndTime:       &end,
		BreakDuration: f(0.5),
		TransportBill: f(12),
	})
	require.NoError(t, err)

	assert.Equal(t, c.ID, created.CompanyID)
	assert.Equal(t, "Acme", created.CompanyName)
	require.NotNil(t, created.StartTime)
	require.NotNil(t, created.EndTime)
	assert.True(t, created.StartTime.Equal(start))
	assert.True(t, created.EndTime.Equal(end))
	assert.Nil(t, created.HoursWorked)
	assert.Nil(t, created.UnitCount)
	assert.Nil(t, created.UnitRate)
	require.NotNil(t, created.TransportBill)
	assert.Equal(t, 12.0, *created.TransportBill)
	assert.Equal(t, 8.0, created.BillableHours())
}

func TestWorkRecordUpdateReplacesAllFields(t *testing.T) {
	database := newTestDB(t)
	repo := NewWorkRecordRepo(database)
	c := createTestCompany(t, database, "Acme")

	created, err := repo.Create(models.WorkRecord{
		CompanyID:   c.ID,
		Date:        day(2025, time.April, 1),
		HoursWorked: f(8),
	})
	require.NoError(t, err)

	created.HoursWorked = nil
	created.UnitCount = f(20)
	created.UnitRate = f(2.5)
	require.NoError(t, repo.Update(*created))

	got, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.HoursWorked)
	require.NotNil(t, got.UnitCount)
	assert.Equal(t, 20.0, *got.UnitCount)
	require.NotNil(t, got.UnitRate)
	assert.Equal(t, 2.5, *got.UnitRate)
}

func TestWorkRecordDateRangeBoundsInclusive(t *testing.T) {
	database := newTestDB(t)
	repo := NewWorkRecordRepo(database)
	c := createTestCompany(t, database, "Acme")

	for _, d := range []time.Time{
		day(2025, time.January, 15),
		day(2025, time.January, 16),
		day(2025, time.February, 15),
		day(2025, time.February, 16),
	} {
		_, err := repo.Create(models.WorkRecord{CompanyID: c.ID, Date: d, HoursWorked: f(1)})
		require.NoError(t, err)
	}

	records, err := repo.GetByCompanyAndDateRange(c.ID, day(2025, time.January, 16), day(2025, time.February, 15))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Date.Equal(day(2025, time.January, 16)))
	assert.True(t, records[1].Date.Equal(day(2025, time.February, 15)))
}

func TestPaymentRepoAppendAndDelete(t *testing.T) {
	database := newTestDB(t)
	repo := NewPaymentRepo(database)
	c := createTestCompany(t, database, "Acme")

	period := billing.Period{Start: day(2025, time.May, 1), End: day(2025, time.May, 31)}

	due, err := repo.Insert(billing.RecordPayment(c.ID, period, 500, models.PaymentDue))
	require.NoError(t, err)
	withdrawn, err := repo.Insert(billing.RecordPayment(c.ID, period, 500, models.PaymentWithdrawn))
	require.NoError(t, err)

	entries, err := repo.GetByCompanyID(c.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, repo.Delete(due.ID))

	entries, err = repo.GetByCompanyID(c.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, withdrawn.ID, entries[0].ID)
	assert.Equal(t, models.PaymentWithdrawn, entries[0].Action)
	assert.Equal(t, "Acme", entries[0].CompanyName)
	assert.True(t, entries[0].PeriodStart.Equal(period.Start))
	assert.True(t, entries[0].PeriodEnd.Equal(period.End))
}
