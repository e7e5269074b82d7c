package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
	"github.com/easyhrhq/easyhr/internal/hr/store"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a migrated store backed by a temp file. A file DSN
// instead of :memory: because the pool would otherwise hand each
// connection its own empty database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedCompany(t *testing.T, s *Store, name string) domain.Company {
	t.Helper()

	c := domain.Company{
		ID:            name + "-id",
		Name:          name,
		Email:         name + "@example.com",
		EmployeeCount: "11-50",
	}
	require.NoError(t, s.Companies().CreateCompany(context.Background(), c))
	return c
}

func TestUsersRepo_EmailUniqueCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := seedCompany(t, s, "acme")

	err := s.Users().CreateUser(ctx, domain.User{
		ID: "u1", Email: "jane@acme.com", FullName: "Jane", Role: domain.RoleAdmin, CompanyID: c.ID,
	})
	require.NoError(t, err)

	// Same address, different case.
	err = s.Users().CreateUser(ctx, domain.User{
		ID: "u2", Email: "JANE@ACME.COM", FullName: "Jane Again", Role: domain.RoleAdmin, CompanyID: c.ID,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// Lookup is case-insensitive too.
	got, err := s.Users().GetUserByEmail(ctx, "Jane@Acme.Com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
}

func TestUsersRepo_VerificationTokenLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := seedCompany(t, s, "acme")

	require.NoError(t, s.Users().CreateUser(ctx, domain.User{
		ID: "u1", Email: "jane@acme.com", FullName: "Jane", Role: domain.RoleAdmin, CompanyID: c.ID,
	}))

	require.NoError(t, s.Users().SetVerificationToken(ctx, "u1", "hash-1", time.Now().Add(time.Hour)))

	got, err := s.Users().GetUserByVerificationTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)

	// Verifying clears the token and flips the flag atomically.
	require.NoError(t, s.Users().MarkEmailVerified(ctx, "u1"))

	_, err = s.Users().GetUserByVerificationTokenHash(ctx, "hash-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err = s.Users().GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.True(t, got.IsEmailVerified)
	require.Nil(t, got.VerificationTokenHash)
	require.Nil(t, got.VerificationTokenExpiresAt)
}

func TestUsersRepo_ExpiredTokenBehavesAsMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := seedCompany(t, s, "acme")

	require.NoError(t, s.Users().CreateUser(ctx, domain.User{
		ID: "u1", Email: "jane@acme.com", FullName: "Jane", Role: domain.RoleAdmin, CompanyID: c.ID,
	}))
	require.NoError(t, s.Users().SetVerificationToken(ctx, "u1", "hash-1", time.Now().Add(-time.Minute)))

	_, err := s.Users().GetUserByVerificationTokenHash(ctx, "hash-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.Users().ClearExpiredVerificationTokens(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := s.Users().GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.Nil(t, got.VerificationTokenHash)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := seedCompany(t, s, "acme")

	sentinel := store.ErrAlreadyExists
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, domain.User{
			ID: "u1", Email: "jane@acme.com", FullName: "Jane", Role: domain.RoleAdmin, CompanyID: c.ID,
		}); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	// The insert must not have survived the rollback.
	_, err = s.Users().GetUserByEmail(ctx, "jane@acme.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDepartmentsRepo_TenantScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acme := seedCompany(t, s, "acme")
	other := seedCompany(t, s, "other")

	d := domain.Department{ID: "d1", Name: "Engineering", CompanyID: acme.ID}
	require.NoError(t, s.Departments().CreateDepartment(ctx, d))

	// Visible to its own tenant.
	got, err := s.Departments().GetDepartmentByID(ctx, "d1", acme.ID)
	require.NoError(t, err)
	require.Equal(t, "Engineering", got.Name)

	// Absent for everyone else.
	_, err = s.Departments().GetDepartmentByID(ctx, "d1", other.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Departments().DeleteDepartment(ctx, "d1", other.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.Departments().ListDepartmentsByCompany(ctx, other.ID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestDeleteBlockedWhileReferenced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acme := seedCompany(t, s, "acme")

	require.NoError(t, s.Departments().CreateDepartment(ctx, domain.Department{
		ID: "d1", Name: "Engineering", CompanyID: acme.ID,
	}))
	require.NoError(t, s.Roles().CreateRole(ctx, domain.Role{
		ID: "r1", Title: "Engineer", DepartmentID: "d1", CompanyID: acme.ID,
	}))
	require.NoError(t, s.Employees().CreateEmployee(ctx, domain.Employee{
		ID: "e1", FirstName: "Sam", LastName: "Lee", Email: "sam@acme.com",
		DepartmentID: "d1", RoleID: "r1",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), CompanyID: acme.ID,
	}))

	// The employee pins both its role and its department.
	require.ErrorIs(t, s.Roles().DeleteRole(ctx, "r1", acme.ID), store.ErrReferenced)
	require.ErrorIs(t, s.Departments().DeleteDepartment(ctx, "d1", acme.ID), store.ErrReferenced)

	require.NoError(t, s.Employees().DeleteEmployee(ctx, "e1", acme.ID))

	// Department delete now succeeds and takes the role with it.
	require.NoError(t, s.Departments().DeleteDepartment(ctx, "d1", acme.ID))
	_, err := s.Roles().GetRoleByID(ctx, "r1", acme.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEmployeesRepo_EmailUniquePerCompany(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acme := seedCompany(t, s, "acme")
	other := seedCompany(t, s, "other")

	require.NoError(t, s.Departments().CreateDepartment(ctx, domain.Department{
		ID: "d1", Name: "Engineering", CompanyID: acme.ID,
	}))
	require.NoError(t, s.Roles().CreateRole(ctx, domain.Role{
		ID: "r1", Title: "Engineer", DepartmentID: "d1", CompanyID: acme.ID,
	}))
	require.NoError(t, s.Departments().CreateDepartment(ctx, domain.Department{
		ID: "d2", Name: "Engineering", CompanyID: other.ID,
	}))
	require.NoError(t, s.Roles().CreateRole(ctx, domain.Role{
		ID: "r2", Title: "Engineer", DepartmentID: "d2", CompanyID: other.ID,
	}))

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	e := domain.Employee{
		ID: "e1", FirstName: "Sam", LastName: "Lee", Email: "sam@acme.com",
		DepartmentID: "d1", RoleID: "r1", StartDate: start, CompanyID: acme.ID,
	}
	require.NoError(t, s.Employees().CreateEmployee(ctx, e))

	// Duplicate within the same company is rejected.
	dup := e
	dup.ID = "e2"
	require.ErrorIs(t, s.Employees().CreateEmployee(ctx, dup), store.ErrAlreadyExists)

	// Same email under a different company is fine.
	elsewhere := domain.Employee{
		ID: "e3", FirstName: "Sam", LastName: "Lee", Email: "sam@acme.com",
		DepartmentID: "d2", RoleID: "r2", StartDate: start, CompanyID: other.ID,
	}
	require.NoError(t, s.Employees().CreateEmployee(ctx, elsewhere))
}
