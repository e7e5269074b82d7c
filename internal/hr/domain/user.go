package domain

import "time"

// UserRole is the account role of a user within their company. Registration
// only ever issues "admin"; the other values are schema-permitted for future
// flows and nothing dispatches on them server-side.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

// Valid reports whether r is one of the permitted role values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User is a human principal belonging to one company.
type User struct {
	ID        string
	Email     string // globally unique, stored lowercased and trimmed
	FullName  string
	JobTitle  string
	Role      UserRole
	CompanyID string

	// PasswordHash is empty until the user sets a password via the emailed
	// link; login fails while it is absent.
	PasswordHash string

	IsEmailVerified bool

	// VerificationTokenHash is the SHA-256 fingerprint of the outstanding
	// email-verification token, nil once verified or never issued. At most
	// one token is live at a time; issuing a new one overwrites.
	VerificationTokenHash      *string
	VerificationTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPassword reports whether the user has completed password setup.
func (u User) HasPassword() bool { return u.PasswordHash != "" }
