package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateWindow(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"valid", now.Add(time.Hour), now.Add(2 * time.Hour), nil},
		{"start in past", now.Add(-time.Hour), now.Add(time.Hour), ErrStartNotFuture},
		{"start equals now", now, now.Add(time.Hour), ErrStartNotFuture},
		{"end before start", now.Add(2 * time.Hour), now.Add(time.Hour), ErrEndBeforeStart},
		{"end equals start", now.Add(time.Hour), now.Add(time.Hour), ErrEndBeforeStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.start, tt.end, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTotalPlayers(t *testing.T) {
	assert.ErrorIs(t, ValidateTotalPlayers(1), ErrPlayersRange)
	assert.NoError(t, ValidateTotalPlayers(2))
	assert.NoError(t, ValidateTotalPlayers(50))
	assert.ErrorIs(t, ValidateTotalPlayers(51), ErrPlayersRange)
}

func TestCanJoin_Boundaries(t *testing.T) {
	// Roster at capacity rejects; one below accepts.
	assert.False(t, CanJoin(2, 2))
	assert.True(t, CanJoin(1, 2))
	assert.False(t, CanJoin(50, 50))
	assert.True(t, CanJoin(49, 50))
	assert.False(t, CanJoin(51, 50))
}

func TestOverlaps(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2026, 8, 1, h, 0, 0, 0, time.UTC) }

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical", at(10), at(12), at(10), at(12), true},
		{"partial tail", at(10), at(12), at(11), at(13), true},
		{"partial head", at(11), at(13), at(10), at(12), true},
		{"containment", at(10), at(14), at(11), at(12), true},
		{"back to back", at(10), at(12), at(12), at(14), false},
		{"disjoint", at(8), at(9), at(10), at(11), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}
