package repository

import (
	"database/sql"

	"github.com/aitullalimon/WorkingHoursApp/internal/models"
)

type CompanyRepo struct {
	db *sql.DB
}

func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

func (r *CompanyRepo) Create(c models.Company) (*models.Company, error) {
	result, err := r.db.Exec(`
		INSERT INTO companies (name, payment_type, hourly_rate, point_rate, month_start_day)
		VALUES (?, ?, ?, ?, ?)
	`, c.Name, string(c.PaymentType), c.HourlyRate, c.PointRate, c.MonthStartDay)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *CompanyRepo) GetByID(id int64) (*models.Company, error) {
	row := r.db.QueryRow(`
		SELECT id, name, payment_type, hourly_rate, point_rate, month_start_day, created_at
		FROM companies WHERE id = ?
	`, id)

	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CompanyRepo) GetByName(name string) (*models.Company, error) {
	row := r.db.QueryRow(`
		SELECT id, name, payment_type, hourly_rate, point_rate, month_start_day, created_at
		FROM companies WHERE name = ?
	`, name)

	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CompanyRepo) GetAll() ([]models.Company, error) {
	rows, err := r.db.Query(`
		SELECT id, name, payment_type, hourly_rate, point_rate, month_start_day, created_at
		FROM companies ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// Update replaces every editable field of the company.
func (r *CompanyRepo) Update(c models.Company) error {
	_, err := r.db.Exec(`
		UPDATE companies
		SET name = ?, payment_type = ?, hourly_rate = ?, point_rate = ?, month_start_day = ?
		WHERE id = ?
	`, c.Name, string(c.PaymentType), c.HourlyRate, c.PointRate, c.MonthStartDay, c.ID)
	return err
}

// Delete removes the company. Its work records go with it through the
// cascading foreign key; payment records are kept as historical snapshots.
func (r *CompanyRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM companies WHERE id = ?", id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(row scanner) (*models.Company, error) {
	var c models.Company
	var paymentType string
	var hourlyRate, pointRate sql.NullFloat64

	err := row.Scan(&c.ID, &c.Name, &paymentType, &hourlyRate, &pointRate, &c.MonthStartDay, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	c.PaymentType = models.PaymentType(paymentType)
	if hourlyRate.Valid {
		c.HourlyRate = &hourlyRate.Float64
	}
	if pointRate.Valid {
		c.PointRate = &pointRate.Float64
	}
	return &c, nil
}

type CompanyWithStats struct {
	models.Company
	RecordCount  int
	PaymentCount int
}

func (r *CompanyRepo) GetAllWithStats() ([]CompanyWithStats, error) {
	query := `
		SELECT
			c.id, c.name, c.payment_type, c.hourly_rate, c.point_rate, c.month_start_day, c.created_at,
			COUNT(DISTINCT w.id) as record_count,
			COUNT(DISTINCT p.id) as payment_count
		FROM companies c
		LEFT JOIN work_records w ON w.company_id = c.id
		LEFT JOIN payment_records p ON p.company_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []CompanyWithStats
	for rows.Next() {
		var c CompanyWithStats
		var paymentType string
		var hourlyRate, pointRate sql.NullFloat64

		if err := rows.Scan(
			&c.ID, &c.Name, &paymentType, &hourlyRate, &pointRate, &c.MonthStartDay, &c.CreatedAt,
			&c.RecordCount, &c.PaymentCount,
		); err != nil {
			return nil, err
		}

		c.PaymentType = models.PaymentType(paymentType)
		if hourlyRate.Valid {
			c.HourlyRate = &hourlyRate.Float64
		}
		if pointRate.Valid {
			c.PointRate = &pointRate.Float64
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
