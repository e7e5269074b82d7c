package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
	"github.com/easyhrhq/easyhr/internal/hr/store"
	"github.com/easyhrhq/easyhr/pkg/slogx"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyService struct {
	Store store.Store
}

// GetCompany returns the caller's company.
func (s *CompanyService) GetCompany(ctx context.Context, companyID string) (domain.Company, error) {
	log := slogx.FromContext(ctx)

	company, err := s.Store.Companies().GetCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Company{}, ErrCompanyNotFound
		}
		log.Error("failed to fetch company", slog.Any("error", err))
		return domain.Company{}, err
	}
	return company, nil
}

// CompleteOnboarding marks the onboarding wizard as finished. Calling it
// again is a no-op; the flag never flips back.
func (s *CompanyService) CompleteOnboarding(ctx context.Context, companyID string) (domain.Company, error) {
	log := slogx.FromContext(ctx)

	if err := s.Store.Companies().MarkOnboardingComplete(ctx, companyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Company{}, ErrCompanyNotFound
		}
		log.Error("failed to mark onboarding complete",
			slog.String("company_id", companyID),
			slog.Any("error", err),
		)
		return domain.Company{}, err
	}

	company, err := s.Store.Companies().GetCompanyByID(ctx, companyID)
	if err != nil {
		log.Error("failed to fetch company", slog.Any("error", err))
		return domain.Company{}, err
	}

	log.Info("onboarding completed", slog.String("company_id", companyID))
	return company, nil
}
