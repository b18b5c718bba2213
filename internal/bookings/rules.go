package bookings

import (
	"errors"
	"time"
)

const (
	// MinPlayers is the smallest allowed roster cap.
	MinPlayers = 2
	// MaxPlayers is the largest allowed roster cap.
	MaxPlayers = 50
)

var (
	ErrStartNotFuture = errors.New("play_date_start must be in the future")
	ErrEndBeforeStart = errors.New("play_date_end must be after play_date_start")
	ErrPlayersRange   = errors.New("total_players must be between 2 and 50")
)

// ValidateWindow checks the booking time range against the clock: start must be
// strictly in the future and end strictly after start.
func ValidateWindow(start, end, now time.Time) error {
	if !start.After(now) {
		return ErrStartNotFuture
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// ValidateTotalPlayers checks the roster cap bounds.
func ValidateTotalPlayers(n int) error {
	if n < MinPlayers || n > MaxPlayers {
		return ErrPlayersRange
	}
	return nil
}

// CanJoin reports whether one more player fits. A full roster
// (count == total) rejects.
func CanJoin(playersCount, totalPlayers int) bool {
	return playersCount < totalPlayers
}

// Overlaps reports whether two half-open time ranges [aStart,aEnd) and
// [bStart,bEnd) intersect. Back-to-back slots do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
