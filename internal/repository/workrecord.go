package repository

import (
	"database/sql"
	"time"

	"github.com/aitullalimon/WorkingHoursApp/internal/models"
)

type WorkRecordRepo struct {
	db *sql.DB
}

func NewWorkRecordRepo(db *sql.DB) *WorkRecordRepo {
	return &WorkRecordRepo{db: db}
}

const workRecordColumns = `
	w.id, w.company_id, w.date, w.start_time, w.end_time,
	w.hours_worked, w.break_duration, w.unit_count, w.unit_rate, w.transport_bill,
	w.created_at, c.name
`

func (r *WorkRecordRepo) Create(w models.WorkRecord) (*models.WorkRecord, error) {
	result, err := r.db.Exec(`
		INSERT INTO work_records
			(company_id, date, start_time, end_time, hours_worked, break_duration,
			 unit_count, unit_rate, transport_bill)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, w.CompanyID, w.Date, w.StartTime, w.EndTime, w.HoursWorked, w.BreakDuration,
		w.UnitCount, w.UnitRate, w.TransportBill)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *WorkRecordRepo) GetByID(id int64) (*models.WorkRecord, error) {
	row := r.db.QueryRow(`
		SELECT `+workRecordColumns+`
		FROM work_records w
		JOIN companies c ON c.id = w.company_id
		WHERE w.id = ?
	`, id)

	w, err := scanWorkRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *WorkRecordRepo) GetByCompanyID(companyID int64) ([]models.WorkRecord, error) {
	rows, err := r.db.Query(`
		SELECT `+workRecordColumns+`
		FROM work_records w
		JOIN companies c ON c.id = w.company_id
		WHERE w.company_id = ?
		ORDER BY w.date DESC, w.id DESC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanWorkRecords(rows)
}

func (r *WorkRecordRepo) GetByCompanyAndDateRange(companyID int64, from, to time.Time) ([]models.WorkRecord, error) {
	rows, err := r.db.Query(`
		SELECT `+workRecordColumns+`
		FROM work_records w
		JOIN companies c ON c.id = w.company_id
		WHERE w.company_id = ? AND w.date >= ? AND w.date <= ?
		ORDER BY w.date ASC, w.id ASC
	`, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanWorkRecords(rows)
}

func (r *WorkRecordRepo) GetAll() ([]models.WorkRecord, error) {
	rows, err := r.db.Query(`
		SELECT ` + workRecordColumns + `
		FROM work_records w
		JOIN companies c ON c.id = w.company_id
		ORDER BY w.date DESC, w.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanWorkRecords(rows)
}

// Update replaces the record wholesale by id.
func (r *WorkRecordRepo) Update(w models.WorkRecord) error {
	_, err := r.db.Exec(`
		UPDATE work_records
		SET company_id = ?, date = ?, start_time = ?, end_time = ?, hours_worked = ?,
			break_duration = ?, unit_count = ?, unit_rate = ?, transport_bill = ?
		WHERE id = ?
	`, w.CompanyID, w.Date, w.StartTime, w.EndTime, w.HoursWorked,
		w.BreakDuration, w.UnitCount, w.UnitRate, w.TransportBill, w.ID)
	return err
}

func (r *WorkRecordRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM work_records WHERE id = ?", id)
	return err
}

func (r *WorkRecordRepo) scanWorkRecords(rows *sql.Rows) ([]models.WorkRecord, error) {
	var records []models.WorkRecord
	for rows.Next() {
		w, err := scanWorkRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *w)
	}
	return records, rows.Err()
}

func scanWorkRecord(row scanner) (*models.WorkRecord, error) {
	var w models.WorkRecord
	var startTime, endTime sql.NullTime
	var hoursWorked, breakDuration, unitCount, unitRate, transportBill sql.NullFloat64

	err := row.Scan(
		&w.ID, &w.CompanyID, &w.Date, &startTime, &endTime,
		&hoursWorked, &breakDuration, &unitCount, &unitRate, &transportBill,
		&w.CreatedAt, &w.CompanyName,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		w.StartTime = &startTime.Time
	}
	if endTime.Valid {
		w.EndTime = &endTime.Time
	}
	if hoursWorked.Valid {
		w.HoursWorked = &hoursWorked.Float64
	}
	if breakDuration.Valid {
		w.BreakDuration = &breakDuration.Float64
	}
	if unitCount.Valid {
		w.UnitCount = &unitCount.Float64
	}
	if unitRate.Valid {
		w.UnitRate = &unitRate.Float64
	}
	if transportBill.Valid {
		w.TransportBill = &transportBill.Float64
	}
	return &w, nil
}
