package domain

import "time"

// Timestamps holds standard bookkeeping times for user-owned entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DateOnly truncates t to midnight UTC of its calendar day.
// Rates are valid for a calendar date, not an instant.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
