package services

import (
	"context"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/SscSPs/bcv_rates/internal/dto"
)

// CustomRateReaderSvc defines read operations for user custom rates
type CustomRateReaderSvc interface {
	// ListCustomRates returns the user's rates ordered by label.
	ListCustomRates(ctx context.Context, userID string) ([]domain.UserCustomRate, error)

	// MaxPerUser is the number of custom rates a user may own.
	MaxPerUser() int
}

// CustomRateWriterSvc defines write operations for user custom rates
type CustomRateWriterSvc interface {
	CreateCustomRate(ctx context.Context, userID string, req dto.CreateCustomRateRequest) (*domain.UserCustomRate, error)
	UpdateCustomRate(ctx context.Context, userID, id string, req dto.UpdateCustomRateRequest) (*domain.UserCustomRate, error)
	DeleteCustomRate(ctx context.Context, userID, id string) error
}

// CustomRateSvcFacade combines all custom rate-related service interfaces
type CustomRateSvcFacade interface {
	CustomRateReaderSvc
	CustomRateWriterSvc
}
