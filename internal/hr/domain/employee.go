package domain

import "time"

// Employee is a staff record created during onboarding. Department and role
// must belong to the employee's company, and the role's department must
// match the employee's department.
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // unique per company
	Phone        string
	DepartmentID string
	RoleID       string
	StartDate    time.Time
	CompanyID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
