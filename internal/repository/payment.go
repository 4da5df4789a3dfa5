package repository

import (
	"database/sql"

	"github.com/aitullalimon/WorkingHoursApp/internal/models"
)

// PaymentRepo stores ledger entries. The ledger is append-only: entries can
// be inserted and deleted but never updated.
type PaymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Insert(p models.PaymentRecord) (*models.PaymentRecord, error) {
	_, err := r.db.Exec(`
		INSERT INTO payment_records (id, company_id, period_start, period_end, amount, action, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.CompanyID, p.PeriodStart, p.PeriodEnd, p.Amount, string(p.Action), p.Date)
	if err != nil {
		return nil, err
	}

	return r.GetByID(p.ID)
}

func (r *PaymentRepo) GetByID(id string) (*models.PaymentRecord, error) {
	row := r.db.QueryRow(`
		SELECT p.id, p.company_id, p.period_start, p.period_end, p.amount, p.action, p.date,
			COALESCE(c.name, '')
		FROM payment_records p
		LEFT JOIN companies c ON c.id = p.company_id
		WHERE p.id = ?
	`, id)

	p, err := scanPaymentRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PaymentRepo) GetByCompanyID(companyID int64) ([]models.PaymentRecord, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.company_id, p.period_start, p.period_end, p.amount, p.action, p.date,
			COALESCE(c.name, '')
		FROM payment_records p
		LEFT JOIN companies c ON c.id = p.company_id
		WHERE p.company_id = ?
		ORDER BY p.date DESC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanPaymentRecords(rows)
}

func (r *PaymentRepo) GetAll() ([]models.PaymentRecord, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.company_id, p.period_start, p.period_end, p.amount, p.action, p.date,
			COALESCE(c.name, '')
		FROM payment_records p
		LEFT JOIN companies c ON c.id = p.company_id
		ORDER BY p.date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanPaymentRecords(rows)
}

func (r *PaymentRepo) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM payment_records WHERE id = ?", id)
	return err
}

func (r *PaymentRepo) scanPaymentRecords(rows *sql.Rows) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	for rows.Next() {
		p, err := scanPaymentRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *p)
	}
	return records, rows.Err()
}

func scanPaymentRecord(row scanner) (*models.PaymentRecord, error) {
	var p models.PaymentRecord
	var action string

	err := row.Scan(&p.ID, &p.CompanyID, &p.PeriodStart, &p.PeriodEnd, &p.Amount, &action, &p.Date, &p.CompanyName)
	if err != nil {
		return nil, err
	}

	p.Action = models.PaymentAction(action)
	return &p, nil
}
