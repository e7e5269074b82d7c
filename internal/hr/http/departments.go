package http

import (
	"errors"
	"net/http"

	"github.com/easyhrhq/easyhr/internal/hr/service"
)

type DepartmentsHandler struct {
	DepartmentService *service.DepartmentService
}

// HandleCreate godoc
//
//	@Summary		Create Department Endpoint
//	@Tags			Departments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DepartmentRequest	true	"Department details"
//	@Success		201		{object}	Response{data=DepartmentDTO}
//	@Failure		400		{object}	Response	"Validation failed"
//	@Failure		401		{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/departments [post].
func (h *DepartmentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	var req DepartmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	dept, err := h.DepartmentService.CreateDepartment(ctx, user.CompanyID, service.DepartmentInput{
		Name:           req.Name,
		Email:          req.Email,
		LeadEmployeeID: req.LeadEmployeeID,
	})
	if err != nil {
		h.writeServiceError(w, err, "Failed to create department")
		return
	}

	writeSuccess(w, http.StatusCreated, "Department created", toDepartmentDTO(dept))
}

// HandleList godoc
//
//	@Summary		List Departments Endpoint
//	@Tags			Departments
//	@Produce		json
//	@Success		200	{object}	Response{data=[]DepartmentDTO}
//	@Failure		401	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/departments [get].
func (h *DepartmentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	depts, err := h.DepartmentService.ListDepartments(ctx, user.CompanyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list departments")
		return
	}

	out := make([]DepartmentDTO, 0, len(depts))
	for _, d := range depts {
		out = append(out, toDepartmentDTO(d))
	}
	writeSuccess(w, http.StatusOK, "", out)
}

// HandleGet godoc
//
//	@Summary		Get Department Endpoint
//	@Tags			Departments
//	@Produce		json
//	@Param			id	path		string	true	"Department id"
//	@Success		200	{object}	Response{data=DepartmentDTO}
//	@Failure		404	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/departments/{id} [get].
func (h *DepartmentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	dept, err := h.DepartmentService.GetDepartment(ctx, user.CompanyID, r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err, "Failed to fetch department")
		return
	}

	writeSuccess(w, http.StatusOK, "", toDepartmentDTO(dept))
}

// HandleUpdate godoc
//
//	@Summary		Update Department Endpoint
//	@Tags			Departments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Department id"
//	@Param			request	body		DepartmentRequest	true	"Department details"
//	@Success		200		{object}	Response{data=DepartmentDTO}
//	@Failure		400		{object}	Response	"Validation failed"
//	@Failure		404		{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/departments/{id} [put].
func (h *DepartmentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	var req DepartmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	dept, err := h.DepartmentService.UpdateDepartment(ctx, user.CompanyID, r.PathValue("id"), service.DepartmentInput{
		Name:           req.Name,
		Email:          req.Email,
		LeadEmployeeID: req.LeadEmployeeID,
	})
	if err != nil {
		h.writeServiceError(w, err, "Failed to update department")
		return
	}

	writeSuccess(w, http.StatusOK, "Department updated", toDepartmentDTO(dept))
}

// HandleDelete godoc
//
//	@Summary		Delete Department Endpoint
//	@Tags			Departments
//	@Produce		json
//	@Param			id	path		string	true	"Department id"
//	@Success		200	{object}	Response
//	@Failure		404	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/departments/{id} [delete].
func (h *DepartmentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	if err := h.DepartmentService.DeleteDepartment(ctx, user.CompanyID, r.PathValue("id")); err != nil {
		h.writeServiceError(w, err, "Failed to delete department")
		return
	}

	writeSuccess(w, http.StatusOK, "Department deleted", nil)
}

func (h *DepartmentsHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		writeError(w, http.StatusNotFound, "Department not found")
	case errors.Is(err, service.ErrDepartmentInUse):
		writeError(w, http.StatusConflict, "Department still has roles or employees assigned")
	case errors.Is(err, service.ErrEmployeeNotFound):
		writeError(w, http.StatusBadRequest, "Lead employee not found")
	case errors.Is(err, service.ErrInvalidDepartment):
		writeError(w, http.StatusBadRequest, "Invalid department details")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
