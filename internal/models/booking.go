package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a reserved time slot on a field with a capped player roster.
type Booking struct {
	ID            uuid.UUID    `json:"id"`
	PlayDateStart time.Time    `json:"play_date_start"`
	PlayDateEnd   time.Time    `json:"play_date_end"`
	TotalPlayers  int          `json:"total_players"`
	UserID        uuid.UUID    `json:"user_id"`
	FieldID       uuid.UUID    `json:"field_id"`
	Field         *Field       `json:"field,omitempty"`
	Players       []UserPublic `json:"players,omitempty"`
	PlayersCount  int          `json:"players_count"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
