package domain

import "time"

// Role is a job role within a department (e.g. "Backend Engineer"), not to
// be confused with UserRole which is the account role enum.
type Role struct {
	ID               string
	Title            string
	Responsibilities string
	DepartmentID     string
	CompanyID        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
