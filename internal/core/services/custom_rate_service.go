package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/bcv_rates/internal/apperrors"
	"github.com/SscSPs/bcv_rates/internal/bcv"
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	portsrepo "github.com/SscSPs/bcv_rates/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bcv_rates/internal/core/ports/services"
	"github.com/SscSPs/bcv_rates/internal/dto"
	"github.com/google/uuid"
)

type customRateService struct {
	BaseService
	repo       portsrepo.CustomRateRepositoryFacade
	maxPerUser int
	now        func() time.Time
}

// NewCustomRateService creates the custom rate service. A non-positive
// maxPerUser falls back to domain.DefaultMaxCustomRatesPerUser.
func NewCustomRateService(repo portsrepo.CustomRateRepositoryFacade, maxPerUser int) portssvc.CustomRateSvcFacade {
	if maxPerUser <= 0 {
		maxPerUser = domain.DefaultMaxCustomRatesPerUser
	}
	return &customRateService{repo: repo, maxPerUser: maxPerUser, now: time.Now}
}

var _ portssvc.CustomRateSvcFacade = (*customRateService)(nil)

func (s *customRateService) MaxPerUser() int {
	return s.maxPerUser
}

func (s *customRateService) ListCustomRates(ctx context.Context, userID string) ([]domain.UserCustomRate, error) {
	rates, err := s.repo.ListCustomRates(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list custom rates")
		return nil, err
	}
	return rates, nil
}

func (s *customRateService) CreateCustomRate(ctx context.Context, userID string, req dto.CreateCustomRateRequest) (*domain.UserCustomRate, error) {
	label, err := domain.NormalizeCustomRateLabel(req.Label)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	rate, err := bcv.NormalizePositive(req.Rate)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid rate value")
	}

	now := s.now().UTC()
	custom := domain.UserCustomRate{
		ID:         uuid.NewString(),
		UserID:     userID,
		Label:      label,
		Rate:       rate,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.repo.CreateCustomRate(ctx, custom, s.maxPerUser); err != nil {
		s.logWriteError(ctx, err, "Failed to create custom rate", slog.String("label", label))
		return nil, err
	}

	s.LogInfo(ctx, "Custom rate created", slog.String("custom_rate_id", custom.ID), slog.String("label", label))
	return &custom, nil
}

func (s *customRateService) UpdateCustomRate(ctx context.Context, userID, id string, req dto.UpdateCustomRateRequest) (*domain.UserCustomRate, error) {
	if req.Label == nil && req.Rate == nil {
		return nil, apperrors.NewValidationError("No changes provided")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFoundError("Custom rate not found.")
	}

	existing, err := s.repo.FindCustomRate(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Label != nil {
		if updated.Label, err = domain.NormalizeCustomRateLabel(*req.Label); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if req.Rate != nil {
		if updated.Rate, err = bcv.NormalizePositive(*req.Rate); err != nil {
			return nil, apperrors.NewValidationError("Invalid rate value")
		}
	}
	updated.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateCustomRate(ctx, updated); err != nil {
		s.logWriteError(ctx, err, "Failed to update custom rate", slog.String("custom_rate_id", id))
		return nil, err
	}
	return &updated, nil
}

func (s *customRateService) DeleteCustomRate(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFoundError("Custom rate not found.")
	}
	if err := s.repo.DeleteCustomRate(ctx, userID, id); err != nil {
		s.logWriteError(ctx, err, "Failed to delete custom rate", slog.String("custom_rate_id", id))
		return err
	}
	return nil
}

// logWriteError skips the expected client errors.
func (s *customRateService) logWriteError(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrForbidden) {
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}
