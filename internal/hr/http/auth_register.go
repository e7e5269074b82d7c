package http

import (
	"errors"
	"net/http"

	"github.com/easyhrhq/easyhr/internal/hr/metrics"
	"github.com/easyhrhq/easyhr/internal/hr/service"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// RegisterResponse is the payload of a successful registration.
type RegisterResponse struct {
	User       UserDTO    `json:"user"`
	Company    CompanyDTO `json:"company"`
	EmailSent  bool       `json:"email_sent"`
	PreviewURL string     `json:"preview_url,omitempty"`
}

// ServeHTTP godoc
//
//	@Summary		Register Company Endpoint
//	@Description	Create a company and its first admin user, then email a verification link
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Company and admin user details"
//	@Success		201		{object}	Response{data=RegisterResponse}
//	@Failure		400		{object}	Response	"Validation failed / email already registered"
//	@Failure		500		{object}	Response
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	res, err := h.AuthService.Register(ctx, service.RegisterInput{
		CompanyName:   req.CompanyName,
		CompanyPhone:  req.CompanyPhone,
		CompanyCode:   req.CompanyCode,
		EmployeeCount: req.EmployeeCount,
		FullName:      req.FullName,
		Email:         req.Email,
		JobTitle:      req.JobTitle,
	})
	if err != nil {
		metrics.ObserveRegistration("failure")
		switch {
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			writeError(w, http.StatusBadRequest, "Email is already registered")
		case errors.Is(err, service.ErrInvalidAuthRequest):
			writeError(w, http.StatusBadRequest, "Invalid registration details")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	metrics.ObserveRegistration("success")
	message := "Registration successful. Please check your email to verify your account."
	if res.EmailSent {
		metrics.ObserveVerificationEmail("sent")
	} else {
		metrics.ObserveVerificationEmail("failed")
		message = "Registration successful, but the verification email could not be sent. Please request a resend."
	}

	writeSuccess(w, http.StatusCreated, message, RegisterResponse{
		User:       toUserDTO(res.User),
		Company:    toCompanyDTO(res.Company),
		EmailSent:  res.EmailSent,
		PreviewURL: res.PreviewURL,
	})
}
