package http

import (
	"errors"
	"net/http"

	"github.com/easyhrhq/easyhr/internal/hr/metrics"
	"github.com/easyhrhq/easyhr/internal/hr/service"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// LoginResponse carries the session token plus the user and company
// projections the client caches.
type LoginResponse struct {
	Token   string     `json:"token"`
	User    UserDTO    `json:"user"`
	Company CompanyDTO `json:"company"`
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email and password and receive a session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	Response{data=LoginResponse}
//	@Failure		400		{object}	Response	"Validation failed"
//	@Failure		401		{object}	Response	"Invalid credentials / email not verified / password not set"
//	@Failure		500		{object}	Response
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.ObserveLogin("failure")
		// Every rung of the ladder is a 401; the message is what tells the
		// user which step of setup is missing.
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, service.ErrEmailNotVerified):
			writeError(w, http.StatusUnauthorized, "Please verify your email before logging in")
		case errors.Is(err, service.ErrPasswordNotSet):
			writeError(w, http.StatusUnauthorized, "Please complete your account setup using the link in your email")
		case errors.Is(err, service.ErrInvalidAuthRequest):
			writeError(w, http.StatusBadRequest, "Email and password are required")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	metrics.ObserveLogin("success")
	writeSuccess(w, http.StatusOK, "Login successful", LoginResponse{
		Token:   res.Token,
		User:    toUserDTO(res.User),
		Company: toCompanyDTO(res.Company),
	})
}
