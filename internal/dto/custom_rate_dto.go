package dto

import (
	"time"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
)

// CreateCustomRateRequest defines the data needed to create a custom rate.
// Rate is a string so that "36,5" and "1.234,56" are accepted.
type CreateCustomRateRequest struct {
	Label string `json:"label" binding:"required,ratelabel"`
	Rate  string `json:"rate" binding:"required"`
}

// UpdateCustomRateRequest changes the label, the rate or both.
type UpdateCustomRateRequest struct {
	Label *string `json:"label" binding:"omitempty,ratelabel"`
	Rate  *string `json:"rate" binding:"omitempty,min=1"`
}

// CustomRateResponse defines the data returned for a custom rate.
type CustomRateResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Rate      string    `json:"rate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListCustomRatesResponse is returned by the list endpoint.
type ListCustomRatesResponse struct {
	MaxPerUser int                  `json:"maxPerUser"`
	Items      []CustomRateResponse `json:"items"`
}

// DeleteCustomRateResponse acknowledges a deletion.
type DeleteCustomRateResponse struct {
	OK bool `json:"ok"`
}

// ToCustomRateResponse converts a domain.UserCustomRate to CustomRateResponse DTO
func ToCustomRateResponse(r *domain.UserCustomRate) CustomRateResponse {
	return CustomRateResponse{
		ID:        r.ID,
		Label:     r.Label,
		Rate:      r.Rate.String(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToListCustomRatesResponse converts the user's custom rates and cap to the list DTO
func ToListCustomRatesResponse(rates []domain.UserCustomRate, maxPerUser int) ListCustomRatesResponse {
	items := make([]CustomRateResponse, len(rates))
	for i := range rates {
		items[i] = ToCustomRateResponse(&rates[i])
	}
	return ListCustomRatesResponse{MaxPerUser: maxPerUser, Items: items}
}
