package models

import (
	"github.com/shopspring/decimal"
)

// UserCustomRate is a row of user_custom_rates.
type UserCustomRate struct {
	ID     string          `json:"id"` // UUID
	UserID string          `json:"userID"`
	Label  string          `json:"label"`
	Rate   decimal.Decimal `json:"rate"`
	Timestamps
}
