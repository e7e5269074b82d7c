package http

import (
	"errors"
	"net/http"

	"github.com/easyhrhq/easyhr/internal/hr/metrics"
	"github.com/easyhrhq/easyhr/internal/hr/service"
)

type VerifyEmailHandler struct {
	AuthService *service.AuthService
}

// VerifyEmailResponse confirms the account's new verification state.
type VerifyEmailResponse struct {
	IsEmailVerified bool `json:"is_email_verified"`
}

// ServeHTTP godoc
//
//	@Summary		Verify Email Endpoint
//	@Description	Consume the verification token from the emailed link
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		VerifyEmailRequest	true	"Raw verification token"
//	@Success		200		{object}	Response{data=VerifyEmailResponse}
//	@Failure		400		{object}	Response	"Token invalid or expired"
//	@Failure		500		{object}	Response
//	@Router			/v1/auth/verify-email [post].
func (h *VerifyEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req VerifyEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	if _, err := h.AuthService.VerifyEmail(ctx, req.Token); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenInvalid):
			writeError(w, http.StatusBadRequest, "Verification link is invalid or has expired")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to verify email")
		}
		return
	}

	writeSuccess(w, http.StatusOK, "Email verified successfully", VerifyEmailResponse{
		IsEmailVerified: true,
	})
}

type ResendVerificationHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Resend Verification Endpoint
//	@Description	Issue a fresh verification token for the authenticated user and email it; the previous link stops working
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	Response
//	@Failure		400	{object}	Response	"Already verified"
//	@Failure		401	{object}	Response
//	@Failure		502	{object}	Response	"Email delivery failed"
//	@Security		BearerAuth
//	@Router			/v1/auth/resend-verification [post].
func (h *ResendVerificationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	receipt, err := h.AuthService.ResendVerification(ctx, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyVerified):
			writeError(w, http.StatusBadRequest, "Email is already verified")
		case errors.Is(err, service.ErrMailDelivery):
			metrics.ObserveVerificationEmail("failed")
			writeError(w, http.StatusBadGateway, "Could not send the verification email, please try again")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to resend verification email")
		}
		return
	}

	metrics.ObserveVerificationEmail("sent")
	data := any(nil)
	if receipt.PreviewURL != "" {
		data = map[string]string{"preview_url": receipt.PreviewURL}
	}
	writeSuccess(w, http.StatusOK, "Verification email sent", data)
}
