package http

import (
	"errors"
	"net/http"

	"github.com/easyhrhq/easyhr/internal/hr/service"
)

type EmployeesHandler struct {
	EmployeeService *service.EmployeeService
}

// HandleCreate godoc
//
//	@Summary		Create Employee Endpoint
//	@Description	Add an employee; department and role must belong to the caller's company
//	@Tags			Employees
//	@Accept			json
//	@Produce		json
//	@Param			request	body		EmployeeRequest	true	"Employee details"
//	@Success		201		{object}	Response{data=EmployeeDTO}
//	@Failure		400		{object}	Response	"Validation failed"
//	@Failure		401		{object}	Response
//	@Failure		409		{object}	Response	"Email already in use"
//	@Security		BearerAuth
//	@Router			/v1/employees [post].
func (h *EmployeesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	var req EmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	emp, err := h.EmployeeService.CreateEmployee(ctx, user.CompanyID, req.toInput())
	if err != nil {
		h.writeServiceError(w, err, "Failed to create employee")
		return
	}

	writeSuccess(w, http.StatusCreated, "Employee created", toEmployeeDTO(emp))
}

// HandleList godoc
//
//	@Summary		List Employees Endpoint
//	@Tags			Employees
//	@Produce		json
//	@Success		200	{object}	Response{data=[]EmployeeDTO}
//	@Failure		401	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/employees [get].
func (h *EmployeesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	emps, err := h.EmployeeService.ListEmployees(ctx, user.CompanyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees")
		return
	}

	out := make([]EmployeeDTO, 0, len(emps))
	for _, e := range emps {
		out = append(out, toEmployeeDTO(e))
	}
	writeSuccess(w, http.StatusOK, "", out)
}

// HandleGet godoc
//
//	@Summary		Get Employee Endpoint
//	@Tags			Employees
//	@Produce		json
//	@Param			id	path		string	true	"Employee id"
//	@Success		200	{object}	Response{data=EmployeeDTO}
//	@Failure		404	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/employees/{id} [get].
func (h *EmployeesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	emp, err := h.EmployeeService.GetEmployee(ctx, user.CompanyID, r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err, "Failed to fetch employee")
		return
	}

	writeSuccess(w, http.StatusOK, "", toEmployeeDTO(emp))
}

// HandleUpdate godoc
//
//	@Summary		Update Employee Endpoint
//	@Tags			Employees
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Employee id"
//	@Param			request	body		EmployeeRequest	true	"Employee details"
//	@Success		200		{object}	Response{data=EmployeeDTO}
//	@Failure		400		{object}	Response	"Validation failed"
//	@Failure		404		{object}	Response
//	@Failure		409		{object}	Response	"Email already in use"
//	@Security		BearerAuth
//	@Router			/v1/employees/{id} [put].
func (h *EmployeesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	var req EmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	emp, err := h.EmployeeService.UpdateEmployee(ctx, user.CompanyID, r.PathValue("id"), req.toInput())
	if err != nil {
		h.writeServiceError(w, err, "Failed to update employee")
		return
	}

	writeSuccess(w, http.StatusOK, "Employee updated", toEmployeeDTO(emp))
}

// HandleDelete godoc
//
//	@Summary		Delete Employee Endpoint
//	@Tags			Employees
//	@Produce		json
//	@Param			id	path		string	true	"Employee id"
//	@Success		200	{object}	Response
//	@Failure		404	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/employees/{id} [delete].
func (h *EmployeesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	if err := h.EmployeeService.DeleteEmployee(ctx, user.CompanyID, r.PathValue("id")); err != nil {
		h.writeServiceError(w, err, "Failed to delete employee")
		return
	}

	writeSuccess(w, http.StatusOK, "Employee deleted", nil)
}

func (h *EmployeesHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, "Employee not found")
	case errors.Is(err, service.ErrEmployeeEmailTaken):
		writeError(w, http.StatusConflict, "An employee with that email already exists")
	case errors.Is(err, service.ErrDepartmentNotFound):
		writeError(w, http.StatusBadRequest, "Department not found")
	case errors.Is(err, service.ErrRoleNotFound):
		writeError(w, http.StatusBadRequest, "Role not found")
	case errors.Is(err, service.ErrRoleDepartmentMismatch):
		writeError(w, http.StatusBadRequest, "Role belongs to a different department")
	case errors.Is(err, service.ErrInvalidEmployee):
		writeError(w, http.StatusBadRequest, "Invalid employee details")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
