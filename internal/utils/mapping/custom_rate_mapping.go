package mapping

import (
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/SscSPs/bcv_rates/internal/models"
)

// ToModelCustomRate converts a domain UserCustomRate to a model UserCustomRate
func ToModelCustomRate(d domain.UserCustomRate) models.UserCustomRate {
	return models.UserCustomRate{
		ID:         d.ID,
		UserID:     d.UserID,
		Label:      d.Label,
		Rate:       d.Rate,
		Timestamps: ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainCustomRate converts a model UserCustomRate to a domain UserCustomRate
func ToDomainCustomRate(m models.UserCustomRate) domain.UserCustomRate {
	return domain.UserCustomRate{
		ID:         m.ID,
		UserID:     m.UserID,
		Label:      m.Label,
		Rate:       m.Rate,
		Timestamps: ToDomainTimestamps(m.Timestamps),
	}
}

// ToDomainCustomRateSlice converts a slice of model custom rates
func ToDomainCustomRateSlice(ms []models.UserCustomRate) []domain.UserCustomRate {
	out := make([]domain.UserCustomRate, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCustomRate(m)
	}
	return out
}
