package dto

import (
	"time"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RefreshResponse reports the outcome of a manually triggered refresh cycle.
type RefreshResponse struct {
	Trigger     string           `json:"trigger"`
	Stage       string           `json:"stage"`
	FailedStage string           `json:"failedStage,omitempty"`
	Error       string           `json:"error,omitempty"`
	ValidAt     string           `json:"validAt,omitempty"`
	USD         *decimal.Decimal `json:"USD,omitempty"`
	EUR         *decimal.Decimal `json:"EUR,omitempty"`
	StartedAt   time.Time        `json:"startedAt"`
	FinishedAt  time.Time        `json:"finishedAt"`
}

// ToRefreshResponse converts a domain.RefreshOutcome to RefreshResponse DTO
func ToRefreshResponse(o domain.RefreshOutcome) RefreshResponse {
	res := RefreshResponse{
		Trigger:    string(o.Trigger),
		Stage:      string(o.Stage),
		StartedAt:  o.StartedAt,
		FinishedAt: o.FinishedAt,
	}
	if !o.Succeeded() {
		res.FailedStage = string(o.FailedStage)
		if o.Err != nil {
			res.Error = o.Err.Error()
		}
		return res
	}
	usd, eur := o.USD, o.EUR
	res.ValidAt = o.ValidAt.Format(time.DateOnly)
	res.USD = &usd
	res.EUR = &eur
	return res
}
