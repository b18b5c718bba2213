package models

import (
	"time"

	"github.com/google/uuid"
)

// OtpCode is a one-time numeric code emailed to confirm account ownership.
// A code is valid until ExpiresAt and may be consumed exactly once.
type OtpCode struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Code       string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
