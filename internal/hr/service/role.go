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
	ErrRoleNotFound   = errors.New("role not found")
	ErrInvalidJobRole = errors.New("invalid role")
	ErrRoleInUse      = errors.New("role still has employees")
)

// RoleService manages job roles (titles within a department), not account
// roles.
type RoleService struct {
	Store store.Store
}

type RoleInput struct {
	Title            string
	Responsibilities string
	DepartmentID     string
}

// CreateRole adds a job role under one of the company's departments.
func (s *RoleService) CreateRole(ctx context.Context, companyID string, in RoleInput) (domain.Role, error) {
	log := slogx.FromContext(ctx)

	if in.Title == "" || in.DepartmentID == "" {
		return domain.Role{}, ErrInvalidJobRole
	}

	// The department must belong to the same company; cross-tenant ids
	// read as absent.
	if _, err := s.Store.Departments().GetDepartmentByID(ctx, in.DepartmentID, companyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, ErrDepartmentNotFound
		}
		log.Error("failed to fetch department", slog.Any("error", err))
		return domain.Role{}, err
	}

	role := domain.Role{
		ID:               idx.New().String(),
		Title:            in.Title,
		Responsibilities: in.Responsibilities,
		DepartmentID:     in.DepartmentID,
		CompanyID:        companyID,
	}

	if err := s.Store.Roles().CreateRole(ctx, role); err != nil {
		log.Error("failed to create role", slog.Any("error", err))
		return domain.Role{}, err
	}

	log.Info("role created",
		slog.String("role_id", role.ID),
		slog.String("company_id", companyID),
	)
	return role, nil
}

func (s *RoleService) GetRole(ctx context.Context, companyID, id string) (domain.Role, error) {
	role, err := s.Store.Roles().GetRoleByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, ErrRoleNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch role", slog.Any("error", err))
		return domain.Role{}, err
	}
	return role, nil
}

func (s *RoleService) ListRoles(ctx context.Context, companyID string) ([]domain.Role, error) {
	roles, err := s.Store.Roles().ListRolesByCompany(ctx, companyID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list roles", slog.Any("error", err))
		return nil, err
	}
	return roles, nil
}

func (s *RoleService) UpdateRole(ctx context.Context, companyID, id string, in RoleInput) (domain.Role, error) {
	log := slogx.FromContext(ctx)

	if in.Title == "" || in.DepartmentID == "" {
		return domain.Role{}, ErrInvalidJobRole
	}

	if _, err := s.Store.Departments().GetDepartmentByID(ctx, in.DepartmentID, companyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, ErrDepartmentNotFound
		}
		log.Error("failed to fetch department", slog.Any("error", err))
		return domain.Role{}, err
	}

	role := domain.Role{
		ID:               id,
		Title:            in.Title,
		Responsibilities: in.Responsibilities,
		DepartmentID:     in.DepartmentID,
		CompanyID:        companyID,
	}

	if err := s.Store.Roles().UpdateRole(ctx, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, ErrRoleNotFound
		}
		log.Error("failed to update role", slog.Any("error", err))
		return domain.Role{}, err
	}

	return s.GetRole(ctx, companyID, id)
}

func (s *RoleService) DeleteRole(ctx context.Context, companyID, id string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Roles().DeleteRole(ctx, id, companyID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ErrRoleNotFound
		case errors.Is(err, store.ErrReferenced):
			return ErrRoleInUse
		}
		log.Error("failed to delete role", slog.Any("error", err))
		return err
	}

	log.Info("role deleted",
		slog.String("role_id", id),
		slog.String("company_id", companyID),
	)
	return nil
}
