package sqlite

import (
	"context"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
)

type companiesRepo struct {
	db dbtx
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, email, phone, company_code,
		    employee_count, is_onboarding_complete, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.CompanyCode,
		c.EmployeeCount, c.IsOnboardingComplete, now, now,
	)
	return mapConstraint(err)
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	var c domain.Company
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, company_code, employee_count,
		    is_onboarding_complete, created_at, updated_at
		 FROM companies WHERE id = ?`, id,
	).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CompanyCode, &c.EmployeeCount,
		&c.IsOnboardingComplete, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return c, nil
}

func (r *companiesRepo) MarkOnboardingComplete(ctx context.Context, companyID string) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE companies SET is_onboarding_complete = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), companyID,
	))
}
