package domain

import "time"

// Company is the tenant root. Every user, department, role and employee
// carries a reference back to exactly one company.
type Company struct {
	ID    string
	Name  string
	Email string
	Phone string

	// CompanyCode is an optional external company identifier supplied at
	// registration (tax/registry number, free text).
	CompanyCode string

	// EmployeeCount is a free-text size bucket, e.g. "11-50".
	EmployeeCount string

	// IsOnboardingComplete flips false -> true once the onboarding wizard
	// finishes. Never flips back.
	IsOnboardingComplete bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
