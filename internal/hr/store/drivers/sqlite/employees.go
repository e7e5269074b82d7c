package sqlite

import (
	"context"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
)

type employeesRepo struct {
	db dbtx
}

const employeeColumns = `id, first_name, last_name, email, phone,
	department_id, role_id, start_date, company_id, created_at, updated_at`

func scanEmployee(scan func(dest ...any) error) (domain.Employee, error) {
	var e domain.Employee
	err := scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.DepartmentID, &e.RoleID, &e.StartDate, &e.CompanyID,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}

func (r *employeesRepo) CreateEmployee(ctx context.Context, e domain.Employee) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (id, first_name, last_name, email, phone,
		    department_id, role_id, start_date, company_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone,
		e.DepartmentID, e.RoleID, e.StartDate.UTC(), e.CompanyID, now, now,
	)
	return mapConstraint(err)
}

func (r *employeesRepo) GetEmployeeByID(ctx context.Context, id, companyID string) (domain.Employee, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees
		 WHERE id = ? AND company_id = ?`, id, companyID)
	e, err := scanEmployee(row.Scan)
	if err != nil {
		return domain.Employee{}, mapNotFound(err)
	}
	return e, nil
}

func (r *employeesRepo) GetEmployeeByEmail(ctx context.Context, companyID, email string) (domain.Employee, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees
		 WHERE company_id = ? AND email = ?`, companyID, email)
	e, err := scanEmployee(row.Scan)
	if err != nil {
		return domain.Employee{}, mapNotFound(err)
	}
	return e, nil
}

func (r *employeesRepo) ListEmployeesByCompany(ctx context.Context, companyID string) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees
		 WHERE company_id = ? ORDER BY created_at, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *employeesRepo) UpdateEmployee(ctx context.Context, e domain.Employee) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees
		 SET first_name = ?, last_name = ?, email = ?, phone = ?,
		     department_id = ?, role_id = ?, start_date = ?, updated_at = ?
		 WHERE id = ? AND company_id = ?`,
		e.FirstName, e.LastName, e.Email, e.Phone,
		e.DepartmentID, e.RoleID, e.StartDate.UTC(), time.Now().UTC(),
		e.ID, e.CompanyID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return affectedOrNotFound(res, nil)
}

func (r *employeesRepo) DeleteEmployee(ctx context.Context, id, companyID string) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`DELETE FROM employees WHERE id = ? AND company_id = ?`,
		id, companyID,
	))
}
