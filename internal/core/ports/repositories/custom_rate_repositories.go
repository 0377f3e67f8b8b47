package repositories

import (
	"context"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
)

// CustomRateReader defines read operations for user custom rates
type CustomRateReader interface {
	// ListCustomRates returns the user's custom rates ordered by label.
	ListCustomRates(ctx context.Context, userID string) ([]domain.UserCustomRate, error)

	// FindCustomRate returns a custom rate owned by userID, or apperrors.ErrNotFound.
	FindCustomRate(ctx context.Context, userID, id string) (*domain.UserCustomRate, error)
}

// CustomRateWriter defines write operations for user custom rates
type CustomRateWriter interface {
	// CreateCustomRate inserts a custom rate unless the user already owns maxPerUser of them
	// (apperrors.ErrForbidden) or the label is taken (apperrors.ErrDuplicate).
	CreateCustomRate(ctx context.Context, rate domain.UserCustomRate, maxPerUser int) error

	// UpdateCustomRate overwrites label, rate and updated_at of a rate owned by rate.UserID.
	UpdateCustomRate(ctx context.Context, rate domain.UserCustomRate) error

	// DeleteCustomRate removes a rate owned by userID, or returns apperrors.ErrNotFound.
	DeleteCustomRate(ctx context.Context, userID, id string) error
}

// CustomRateRepositoryFacade combines all custom rate-related repository interfaces
type CustomRateRepositoryFacade interface {
	CustomRateReader
	CustomRateWriter
}
