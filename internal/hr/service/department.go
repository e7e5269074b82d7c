package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
	"github.com/easyhrhq/easyhr/internal/hr/store"
	"github.com/easyhrhq/easyhr/pkg/idx"
	"github.com/easyhrhq/easyhr/pkg/slogx"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrInvalidDepartment  = errors.New("invalid department")
	ErrDepartmentInUse    = errors.New("department still has employees")
)

type DepartmentService struct {
	Store store.Store
}

type DepartmentInput struct {
	Name           string
	Email          string
	LeadEmployeeID *string
}

// CreateDepartment adds a department to the caller's company. The lead, if
// given, must be an existing employee of the same company.
func (s *DepartmentService) CreateDepartment(ctx context.Context, companyID string, in DepartmentInput) (domain.Department, error) {
	log := slogx.FromContext(ctx)

	if in.Name == "" {
		return domain.Department{}, ErrInvalidDepartment
	}

	if err := s.checkLead(ctx, companyID, in.LeadEmployeeID); err != nil {
		return domain.Department{}, err
	}

	dept := domain.Department{
		ID:             idx.New().String(),
		Name:           in.Name,
		Email:          NormalizeEmail(in.Email),
		LeadEmployeeID: in.LeadEmployeeID,
		CompanyID:      companyID,
	}

	if err := s.Store.Departments().CreateDepartment(ctx, dept); err != nil {
		log.Error("failed to create department", slog.Any("error", err))
		return domain.Department{}, err
	}

	log.Info("department created",
		slog.String("department_id", dept.ID),
		slog.String("company_id", companyID),
	)
	return dept, nil
}

func (s *DepartmentService) GetDepartment(ctx context.Context, companyID, id string) (domain.Department, error) {
	dept, err := s.Store.Departments().GetDepartmentByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Department{}, ErrDepartmentNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch department", slog.Any("error", err))
		return domain.Department{}, err
	}
	return dept, nil
}

func (s *DepartmentService) ListDepartments(ctx context.Context, companyID string) ([]domain.Department, error) {
	depts, err := s.Store.Departments().ListDepartmentsByCompany(ctx, companyID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list departments", slog.Any("error", err))
		return nil, err
	}
	return depts, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, companyID, id string, in DepartmentInput) (domain.Department, error) {
	log := slogx.FromContext(ctx)

	if in.Name == "" {
		return domain.Department{}, ErrInvalidDepartment
	}

	if err := s.checkLead(ctx, companyID, in.LeadEmployeeID); err != nil {
		return domain.Department{}, err
	}

	dept := domain.Department{
		ID:             id,
		Name:           in.Name,
		Email:          NormalizeEmail(in.Email),
		LeadEmployeeID: in.LeadEmployeeID,
		CompanyID:      companyID,
	}

	if err := s.Store.Departments().UpdateDepartment(ctx, dept); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Department{}, ErrDepartmentNotFound
		}
		log.Error("failed to update department", slog.Any("error", err))
		return domain.Department{}, err
	}

	return s.GetDepartment(ctx, companyID, id)
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, companyID, id string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Departments().DeleteDepartment(ctx, id, companyID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ErrDepartmentNotFound
		case errors.Is(err, store.ErrReferenced):
			return ErrDepartmentInUse
		}
		log.Error("failed to delete department", slog.Any("error", err))
		return err
	}

	log.Info("department deleted",
		slog.String("department_id", id),
		slog.String("company_id", companyID),
	)
	return nil
}

// checkLead verifies an optional lead employee reference stays inside the
// tenant.
func (s *DepartmentService) checkLead(ctx context.Context, companyID string, leadID *string) error {
	if leadID == nil {
		return nil
	}
	_, err := s.Store.Employees().GetEmployeeByID(ctx, *leadID, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch lead employee", slog.Any("error", err))
		return err
	}
	return nil
}
