package store

import (
	"context"
	"errors"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrReferenced is returned by deletes when other rows still point at
	// the target, e.g. a department that still has employees.
	ErrReferenced = errors.New("store: row is referenced")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. Sub-repositories keep concerns tidy and
// let services depend only on what they touch.
type Store interface {
	Users() Users
	Companies() Companies
	Departments() Departments
	Roles() Roles
	Employees() Employees

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively; emails are stored
	// lowercased and trimmed.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByVerificationTokenHash returns the user holding an UNEXPIRED
	// verification token with this fingerprint. An expired token behaves
	// exactly like a missing one: ErrNotFound.
	GetUserByVerificationTokenHash(ctx context.Context, hash string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// A duplicate email surfaces as ErrAlreadyExists from the unique index.
	CreateUser(ctx context.Context, u domain.User) error

	// SetVerificationToken overwrites the user's verification token
	// fingerprint and expiry. Any previous token is implicitly invalidated.
	SetVerificationToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// MarkEmailVerified flips is_email_verified and clears the token
	// fields in one write, keeping the verified/token exclusivity invariant.
	MarkEmailVerified(ctx context.Context, userID string) error

	// UpdateEmail changes the address and resets is_email_verified.
	UpdateEmail(ctx context.Context, userID, email string) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// ClearExpiredVerificationTokens nulls token fields whose expiry has
	// passed (housekeeping). Returns how many rows were touched.
	ClearExpiredVerificationTokens(ctx context.Context) (int64, error)
}

type Companies interface {
	// CreateCompany inserts a new tenant root.
	CreateCompany(ctx context.Context, c domain.Company) error

	// GetCompanyByID fetches a company by id.
	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)

	// MarkOnboardingComplete flips is_onboarding_complete. Idempotent.
	MarkOnboardingComplete(ctx context.Context, companyID string) error
}

// Departments, Roles and Employees are all tenant-scoped: reads and writes
// take the owning companyID and rows of other tenants behave as absent.
type Departments interface {
	CreateDepartment(ctx context.Context, d domain.Department) error
	GetDepartmentByID(ctx context.Context, id, companyID string) (domain.Department, error)
	ListDepartmentsByCompany(ctx context.Context, companyID string) ([]domain.Department, error)
	UpdateDepartment(ctx context.Context, d domain.Department) error
	DeleteDepartment(ctx context.Context, id, companyID string) error
}

type Roles interface {
	CreateRole(ctx context.Context, r domain.Role) error
	GetRoleByID(ctx context.Context, id, companyID string) (domain.Role, error)
	ListRolesByCompany(ctx context.Context, companyID string) ([]domain.Role, error)
	UpdateRole(ctx context.Context, r domain.Role) error
	DeleteRole(ctx context.Context, id, companyID string) error
}

type Employees interface {
	CreateEmployee(ctx context.Context, e domain.Employee) error
	GetEmployeeByID(ctx context.Context, id, companyID string) (domain.Employee, error)
	GetEmployeeByEmail(ctx context.Context, companyID, email string) (domain.Employee, error)
	ListEmployeesByCompany(ctx context.Context, companyID string) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, e domain.Employee) error
	DeleteEmployee(ctx context.Context, id, companyID string) error
}
