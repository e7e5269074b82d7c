package sqlite

import (
	"context"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
)

type rolesRepo struct {
	db dbtx
}

const roleColumns = `id, title, responsibilities, department_id, company_id,
	created_at, updated_at`

func scanRole(scan func(dest ...any) error) (domain.Role, error) {
	var ro domain.Role
	err := scan(&ro.ID, &ro.Title, &ro.Responsibilities, &ro.DepartmentID,
		&ro.CompanyID, &ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		return domain.Role{}, err
	}
	return ro, nil
}

func (r *rolesRepo) CreateRole(ctx context.Context, ro domain.Role) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (id, title, responsibilities, department_id,
		    company_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ro.ID, ro.Title, ro.Responsibilities, ro.DepartmentID,
		ro.CompanyID, now, now,
	)
	return mapConstraint(err)
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id, companyID string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles
		 WHERE id = ? AND company_id = ?`, id, companyID)
	ro, err := scanRole(row.Scan)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return ro, nil
}

func (r *rolesRepo) ListRolesByCompany(ctx context.Context, companyID string) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roleColumns+` FROM roles
		 WHERE company_id = ? ORDER BY created_at, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Role{}
	for rows.Next() {
		ro, err := scanRole(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	return out, rows.Err()
}

func (r *rolesRepo) UpdateRole(ctx context.Context, ro domain.Role) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE roles
		 SET title = ?, responsibilities = ?, department_id = ?, updated_at = ?
		 WHERE id = ? AND company_id = ?`,
		ro.Title, ro.Responsibilities, ro.DepartmentID,
		time.Now().UTC(), ro.ID, ro.CompanyID,
	))
}

func (r *rolesRepo) DeleteRole(ctx context.Context, id, companyID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM roles WHERE id = ? AND company_id = ?`,
		id, companyID,
	)
	return affectedOrNotFound(res, mapReferenced(err))
}
