package http

import (
	"errors"
	"net/http"

	"github.com/easyhrhq/easyhr/internal/hr/service"
)

type CompanyHandler struct {
	CompanyService *service.CompanyService
}

// HandleGet godoc
//
//	@Summary		Get Company Endpoint
//	@Description	Return the caller's company
//	@Tags			Company
//	@Produce		json
//	@Success		200	{object}	Response{data=CompanyDTO}
//	@Failure		401	{object}	Response
//	@Failure		500	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/company [get].
func (h *CompanyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	company, err := h.CompanyService.GetCompany(ctx, user.CompanyID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			writeError(w, http.StatusNotFound, "Company not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch company")
		return
	}

	writeSuccess(w, http.StatusOK, "", toCompanyDTO(company))
}

// HandleCompleteOnboarding godoc
//
//	@Summary		Complete Onboarding Endpoint
//	@Description	Mark the onboarding wizard as finished for the caller's company
//	@Tags			Company
//	@Produce		json
//	@Success		200	{object}	Response{data=CompanyDTO}
//	@Failure		401	{object}	Response
//	@Failure		500	{object}	Response
//	@Security		BearerAuth
//	@Router			/v1/company/complete-onboarding [post].
func (h *CompanyHandler) HandleCompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(ctx)

	company, err := h.CompanyService.CompleteOnboarding(ctx, user.CompanyID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			writeError(w, http.StatusNotFound, "Company not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to complete onboarding")
		return
	}

	writeSuccess(w, http.StatusOK, "Onboarding completed", toCompanyDTO(company))
}
