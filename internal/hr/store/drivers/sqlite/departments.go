package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
)

type departmentsRepo struct {
	db dbtx
}

const departmentColumns = `id, name, email, lead_employee_id, company_id,
	created_at, updated_at`

func scanDepartment(scan func(dest ...any) error) (domain.Department, error) {
	var (
		d    domain.Department
		lead sql.NullString
	)
	err := scan(&d.ID, &d.Name, &d.Email, &lead, &d.CompanyID,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Department{}, err
	}
	d.LeadEmployeeID = mapNullStringPtr(lead)
	return d, nil
}

func (r *departmentsRepo) CreateDepartment(ctx context.Context, d domain.Department) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO departments (id, name, email, lead_employee_id,
		    company_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Email, mapOptionalString(d.LeadEmployeeID),
		d.CompanyID, now, now,
	)
	return mapConstraint(err)
}

func (r *departmentsRepo) GetDepartmentByID(ctx context.Context, id, companyID string) (domain.Department, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+departmentColumns+` FROM departments
		 WHERE id = ? AND company_id = ?`, id, companyID)
	d, err := scanDepartment(row.Scan)
	if err != nil {
		return domain.Department{}, mapNotFound(err)
	}
	return d, nil
}

func (r *departmentsRepo) ListDepartmentsByCompany(ctx context.Context, companyID string) ([]domain.Department, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+departmentColumns+` FROM departments
		 WHERE company_id = ? ORDER BY created_at, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *departmentsRepo) UpdateDepartment(ctx context.Context, d domain.Department) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE departments
		 SET name = ?, email = ?, lead_employee_id = ?, updated_at = ?
		 WHERE id = ? AND company_id = ?`,
		d.Name, d.Email, mapOptionalString(d.LeadEmployeeID),
		time.Now().UTC(), d.ID, d.CompanyID,
	))
}

func (r *departmentsRepo) DeleteDepartment(ctx context.Context, id, companyID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM departments WHERE id = ? AND company_id = ?`,
		id, companyID,
	)
	return affectedOrNotFound(res, mapReferenced(err))
}
