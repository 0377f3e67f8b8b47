package models

import "time"

// Timestamps are the bookkeeping columns of user-owned rows.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
