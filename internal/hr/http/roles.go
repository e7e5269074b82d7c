package http

import (
	"errors"
	"net/http"

	"github.com/easyhrhq/easyhr/internal/hr/service"
)

type RolesHandler struct {
	RoleService *service.RoleService
}

// HandleCreate godoc
//
//	@Summary		Create Role Endpoint
//	@Description	Create a job role under one of the company's departments
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RoleRequest	true	"Role details"
//	@Success		201		{object}	Response{data=RoleDTO}
//	@Failure		400		{object}	Response	"Validation failed"
//	@Failure		401		{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	var req RoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	role, err := h.RoleService.CreateRole(ctx, user.CompanyID, service.RoleInput{
		Title:            req.Title,
		Responsibilities: req.Responsibilities,
		DepartmentID:     req.DepartmentID,
	})
	if err != nil {
		h.writeServiceError(w, err, "Failed to create role")
		return
	}

	writeSuccess(w, http.StatusCreated, "Role created", toRoleDTO(role))
}

// HandleList godoc
//
//	@Summary		List Roles Endpoint
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	Response{data=[]RoleDTO}
//	@Failure		401	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	roles, err := h.RoleService.ListRoles(ctx, user.CompanyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list roles")
		return
	}

	out := make([]RoleDTO, 0, len(roles))
	for _, role := range roles {
		out = append(out, toRoleDTO(role))
	}
	writeSuccess(w, http.StatusOK, "", out)
}

// HandleGet godoc
//
//	@Summary		Get Role Endpoint
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		string	true	"Role id"
//	@Success		200	{object}	Response{data=RoleDTO}
//	@Failure		404	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	role, err := h.RoleService.GetRole(ctx, user.CompanyID, r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err, "Failed to fetch role")
		return
	}

	writeSuccess(w, http.StatusOK, "", toRoleDTO(role))
}

// HandleUpdate godoc
//
//	@Summary		Update Role Endpoint
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Role id"
//	@Param			request	body		RoleRequest	true	"Role details"
//	@Success		200		{object}	Response{data=RoleDTO}
//	@Failure		400		{object}	Response	"Validation failed"
//	@Failure		404		{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [put].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	var req RoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	role, err := h.RoleService.UpdateRole(ctx, user.CompanyID, r.PathValue("id"), service.RoleInput{
		Title:            req.Title,
		Responsibilities: req.Responsibilities,
		DepartmentID:     req.DepartmentID,
	})
	if err != nil {
		h.writeServiceError(w, err, "Failed to update role")
		return
	}

	writeSuccess(w, http.StatusOK, "Role updated", toRoleDTO(role))
}

// HandleDelete godoc
//
//	@Summary		Delete Role Endpoint
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		string	true	"Role id"
//	@Success		200	{object}	Response
//	@Failure		404	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	if err := h.RoleService.DeleteRole(ctx, user.CompanyID, r.PathValue("id")); err != nil {
		h.writeServiceError(w, err, "Failed to delete role")
		return
	}

	writeSuccess(w, http.StatusOK, "Role deleted", nil)
}

func (h *RolesHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrRoleNotFound):
		writeError(w, http.StatusNotFound, "Role not found")
	case errors.Is(err, service.ErrRoleInUse):
		writeError(w, http.StatusConflict, "Role still has employees assigned")
	case errors.Is(err, service.ErrDepartmentNotFound):
		writeError(w, http.StatusBadRequest, "Department not found")
	case errors.Is(err, service.ErrInvalidJobRole):
		writeError(w, http.StatusBadRequest, "Invalid role details")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
