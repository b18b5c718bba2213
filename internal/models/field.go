package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FieldType is the sport a field is built for.
type FieldType string

const (
	FieldFutsal     FieldType = "futsal"
	FieldSoccer     FieldType = "soccer"
	FieldMiniSoccer FieldType = "mini soccer"
	FieldBasketball FieldType = "basketball"
	FieldVolleyball FieldType = "volleyball"
)

// ParseFieldType converts a string into a FieldType, rejecting unknown sports.
func ParseFieldType(s string) (FieldType, error) {
	switch FieldType(s) {
	case FieldFutsal, FieldSoccer, FieldMiniSoccer, FieldBasketball, FieldVolleyball:
		return FieldType(s), nil
	default:
		return "", fmt.Errorf("invalid field type: %q", s)
	}
}

// Field is a bookable sub-resource of a venue with a sport type.
type Field struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      FieldType `json:"type"`
	VenueID   uuid.UUID `json:"venue_id"`
	Bookings  []Booking `json:"bookings,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
