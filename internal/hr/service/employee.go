package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
	"github.com/easyhrhq/easyhr/internal/hr/store"
	"github.com/easyhrhq/easyhr/pkg/idx"
	"github.com/easyhrhq/easyhr/pkg/slogx"
)

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrInvalidEmployee        = errors.New("invalid employee")
	ErrEmployeeEmailTaken     = errors.New("employee email already in use")
	ErrRoleDepartmentMismatch = errors.New("role belongs to a different department")
)

type EmployeeService struct {
	Store store.Store
}

type EmployeeInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DepartmentID string
	RoleID       string
	StartDate    time.Time
}

// CreateEmployee adds an employee record. Department and role must both
// belong to the caller's company, and the role must sit under the chosen
// department.
func (s *EmployeeService) CreateEmployee(ctx context.Context, companyID string, in EmployeeInput) (domain.Employee, error) {
	log := slogx.FromContext(ctx)

	email := NormalizeEmail(in.Email)
	if in.FirstName == "" || in.LastName == "" || email == "" ||
		in.DepartmentID == "" || in.RoleID == "" {
		return domain.Employee{}, ErrInvalidEmployee
	}

	if err := s.checkReferences(ctx, companyID, in.DepartmentID, in.RoleID); err != nil {
		return domain.Employee{}, err
	}

	if err := s.checkEmailFree(ctx, companyID, email, ""); err != nil {
		return domain.Employee{}, err
	}

	emp := domain.Employee{
		ID:           idx.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		Phone:        in.Phone,
		DepartmentID: in.DepartmentID,
		RoleID:       in.RoleID,
		StartDate:    in.StartDate,
		CompanyID:    companyID,
	}

	if err := s.Store.Employees().CreateEmployee(ctx, emp); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("employee creation attempted with taken email",
				slog.String("company_id", companyID),
			)
			return domain.Employee{}, ErrEmployeeEmailTaken
		}
		log.Error("failed to create employee", slog.Any("error", err))
		return domain.Employee{}, err
	}

	log.Info("employee created",
		slog.String("employee_id", emp.ID),
		slog.String("company_id", companyID),
	)
	return emp, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, companyID, id string) (domain.Employee, error) {
	emp, err := s.Store.Employees().GetEmployeeByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Employee{}, ErrEmployeeNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch employee", slog.Any("error", err))
		return domain.Employee{}, err
	}
	return emp, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, companyID string) ([]domain.Employee, error) {
	emps, err := s.Store.Employees().ListEmployeesByCompany(ctx, companyID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list employees", slog.Any("error", err))
		return nil, err
	}
	return emps, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, companyID, id string, in EmployeeInput) (domain.Employee, error) {
	log := slogx.FromContext(ctx)

	email := NormalizeEmail(in.Email)
	if in.FirstName == "" || in.LastName == "" || email == "" ||
		in.DepartmentID == "" || in.RoleID == "" {
		return domain.Employee{}, ErrInvalidEmployee
	}

	if err := s.checkReferences(ctx, companyID, in.DepartmentID, in.RoleID); err != nil {
		return domain.Employee{}, err
	}

	if err := s.checkEmailFree(ctx, companyID, email, id); err != nil {
		return domain.Employee{}, err
	}

	emp := domain.Employee{
		ID:           id,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		Phone:        in.Phone,
		DepartmentID: in.DepartmentID,
		RoleID:       in.RoleID,
		StartDate:    in.StartDate,
		CompanyID:    companyID,
	}

	if err := s.Store.Employees().UpdateEmployee(ctx, emp); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.Employee{}, ErrEmployeeNotFound
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Employee{}, ErrEmployeeEmailTaken
		}
		log.Error("failed to update employee", slog.Any("error", err))
		return domain.Employee{}, err
	}

	return s.GetEmployee(ctx, companyID, id)
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, companyID, id string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Employees().DeleteEmployee(ctx, id, companyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		log.Error("failed to delete employee", slog.Any("error", err))
		return err
	}

	log.Info("employee deleted",
		slog.String("employee_id", id),
		slog.String("company_id", companyID),
	)
	return nil
}

// checkEmailFree reports ErrEmployeeEmailTaken when another employee of the
// company already uses the address. selfID exempts the record being updated;
// the unique index remains the backstop under concurrent writes.
func (s *EmployeeService) checkEmailFree(ctx context.Context, companyID, email, selfID string) error {
	existing, err := s.Store.Employees().GetEmployeeByEmail(ctx, companyID, email)
	switch {
	case err == nil:
		if existing.ID == selfID {
			return nil
		}
		slogx.FromContext(ctx).Warn("employee email already in use",
			slog.String("company_id", companyID),
		)
		return ErrEmployeeEmailTaken
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		slogx.FromContext(ctx).Error("failed to check employee email", slog.Any("error", err))
		return err
	}
}

// checkReferences validates that the department and role exist within the
// company and that the role actually sits under the department.
func (s *EmployeeService) checkReferences(ctx context.Context, companyID, departmentID, roleID string) error {
	log := slogx.FromContext(ctx)

	dept, err := s.Store.Departments().GetDepartmentByID(ctx, departmentID, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDepartmentNotFound
		}
		log.Error("failed to fetch department", slog.Any("error", err))
		return err
	}

	role, err := s.Store.Roles().GetRoleByID(ctx, roleID, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRoleNotFound
		}
		log.Error("failed to fetch role", slog.Any("error", err))
		return err
	}

	if role.DepartmentID != dept.ID {
		log.Warn("employee references role outside its department",
			slog.String("department_id", dept.ID),
			slog.String("role_id", role.ID),
		)
		return ErrRoleDepartmentMismatch
	}

	return nil
}
