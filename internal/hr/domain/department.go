package domain

import "time"

// Department groups roles and employees within a company.
type Department struct {
	ID    string
	Name  string
	Email string

	// LeadEmployeeID optionally points at the employee leading the
	// department. Nil until assigned.
	LeadEmployeeID *string

	CompanyID string
	CreatedAt time.Time
	UpdatedAt time.Time
}
