package models

import (
	"time"

	"github.com/google/uuid"
)

// Venue is a physical location owned by an owner-role user.
type Venue struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	UserID    uuid.UUID `json:"user_id"`
	Fields    []Field   `json:"fields,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
