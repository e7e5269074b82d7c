package http

import (
	"errors"
	"net/http"

	"github.com/easyhrhq/easyhr/internal/hr/metrics"
	"github.com/easyhrhq/easyhr/internal/hr/service"
)

// UpdateEmailHandler and CreatePasswordHandler serve the account-setup
// flow for the authenticated principal: fixing a mistyped address before
// verification, and setting the initial password.

type UpdateEmailHandler struct {
	AuthService *service.AuthService
}

// UpdateEmailResponse reflects the address swap: the account drops back to
// unverified and a fresh link goes to the new address.
type UpdateEmailResponse struct {
	Email           string `json:"email"`
	IsEmailVerified bool   `json:"is_email_verified"`
	PreviewURL      string `json:"preview_url,omitempty"`
}

// ServeHTTP godoc
//
//	@Summary		Update Email Endpoint
//	@Description	Fix the registration email before verification; drops back to unverified and re-sends the link
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateEmailRequest	true	"New email"
//	@Success		200		{object}	Response{data=UpdateEmailResponse}
//	@Failure		400		{object}	Response	"Validation failed / email already in use"
//	@Failure		401		{object}	Response
//	@Failure		502		{object}	Response	"Email delivery failed"
//	@Security		BearerAuth
//	@Router			/v1/auth/update-email [post].
func (h *UpdateEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	var req UpdateEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	updated, receipt, err := h.AuthService.UpdateEmail(ctx, user.ID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			writeError(w, http.StatusBadRequest, "Email is already in use")
		case errors.Is(err, service.ErrMailDelivery):
			metrics.ObserveVerificationEmail("failed")
			writeError(w, http.StatusBadGateway, "Could not send the verification email, please try again")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update email")
		}
		return
	}

	metrics.ObserveVerificationEmail("sent")
	writeSuccess(w, http.StatusOK, "Email updated, please verify your new address", UpdateEmailResponse{
		Email:           updated.Email,
		IsEmailVerified: updated.IsEmailVerified,
		PreviewURL:      receipt.PreviewURL,
	})
}

type CreatePasswordHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Create Password Endpoint
//	@Description	Set the authenticated user's password to finish account setup
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreatePasswordRequest	true	"New password"
//	@Success		200		{object}	Response
//	@Failure		400		{object}	Response	"Validation failed / weak password"
//	@Failure		401		{object}	Response
//	@Failure		500		{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/auth/create-password [post].
func (h *CreatePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	var req CreatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.AuthService.CreatePassword(ctx, user.ID, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, "Password must be at least 8 characters with an uppercase letter, a number and a special character")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create password")
		}
		return
	}

	writeSuccess(w, http.StatusOK, "Password created successfully", nil)
}
