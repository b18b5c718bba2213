package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hayumabar/backend/internal/models"
)

var (
	// ErrNotFound is returned when no booking matches the lookup.
	ErrNotFound = errors.New("booking not found")
	// ErrSlotTaken is returned when the field already has a booking overlapping the window.
	ErrSlotTaken = errors.New("time slot already booked")
	// ErrBookingFull is returned when the roster has reached total_players.
	ErrBookingFull = errors.New("booking is full")
	// ErrAlreadyJoined is returned when the user is already on the roster.
	ErrAlreadyJoined = errors.New("already joined this booking")
)

// Repository handles booking and roster persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a bookings repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const bookingColumns = `id, play_date_start, play_date_end, total_players, user_id, field_id, created_at, updated_at`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.PlayDateStart, &b.PlayDateEnd, &b.TotalPlayers, &b.UserID, &b.FieldID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// hasOverlap reports whether any booking on the field (other than excludeID)
// intersects [start,end). Callers must hold the field row lock.
func hasOverlap(ctx context.Context, tx pgx.Tx, b *models.Booking, excludeID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE field_id = $1 AND id <> $2
		  AND play_date_start < $4 AND $3 < play_date_end
	)`
	var exists bool
	err := tx.QueryRow(ctx, q, b.FieldID, excludeID, b.PlayDateStart, b.PlayDateEnd).Scan(&exists)
	return exists, err
}

// lockField serializes concurrent writers on the same field.
func lockField(ctx context.Context, tx pgx.Tx, fieldID uuid.UUID) error {
	var id uuid.UUID
	return tx.QueryRow(ctx, `SELECT id FROM fields WHERE id = $1 FOR UPDATE`, fieldID).Scan(&id)
}

// Create inserts a booking and attaches the creator to the roster. The whole
// operation runs in one transaction holding the field row lock, so two
// concurrent creates for the same field cannot both pass the overlap check.
func (r *Repository) Create(ctx context.Context, b *models.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockField(ctx, tx, b.FieldID); err != nil {
		return err
	}
	taken, err := hasOverlap(ctx, tx, b, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	const insert = `INSERT INTO bookings (play_date_start, play_date_end, total_players, user_id, field_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert, b.PlayDateStart, b.PlayDateEnd, b.TotalPlayers, b.UserID, b.FieldID).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO booking_users (booking_id, user_id) VALUES ($1, $2)`, b.ID, b.UserID); err != nil {
		return err
	}
	b.PlayersCount = 1
	return tx.Commit(ctx)
}

// GetByID returns a booking by ID without associations.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
}

// GetWithPlayers returns a booking with its roster and players_count.
func (r *Repository) GetWithPlayers(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.name, u.email, u.role, u.is_verified, u.created_at
		 FROM booking_users bu
		 JOIN users u ON u.id = bu.user_id
		 WHERE bu.booking_id = $1
		 ORDER BY bu.joined_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p models.UserPublic
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.IsVerified, &p.CreatedAt); err != nil {
			return nil, err
		}
		b.Players = append(b.Players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	b.PlayersCount = len(b.Players)
	return b, nil
}

// List returns all bookings with their field preloaded.
func (r *Repository) List(ctx context.Context) ([]models.Booking, error) {
	const q = `SELECT b.id, b.play_date_start, b.play_date_end, b.total_players, b.user_id, b.field_id, b.created_at, b.updated_at,
		f.id, f.name, f.type, f.venue_id, f.created_at, f.updated_at,
		(SELECT COUNT(*) FROM booking_users bu WHERE bu.booking_id = b.id)
		FROM bookings b
		JOIN fields f ON f.id = b.field_id
		ORDER BY b.play_date_start`
	return r.queryWithField(ctx, q)
}

// ListByCreator returns the bookings a user created, with field and players_count.
func (r *Repository) ListByCreator(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	const q = `SELECT b.id, b.play_date_start, b.play_date_end, b.total_players, b.user_id, b.field_id, b.created_at, b.updated_at,
		f.id, f.name, f.type, f.venue_id, f.created_at, f.updated_at,
		(SELECT COUNT(*) FROM booking_users bu WHERE bu.booking_id = b.id)
		FROM bookings b
		JOIN fields f ON f.id = b.field_id
		WHERE b.user_id = $1
		ORDER BY b.play_date_start`
	return r.queryWithField(ctx, q, userID)
}

func (r *Repository) queryWithField(ctx context.Context, q string, args ...any) ([]models.Booking, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Booking
	for rows.Next() {
		var b models.Booking
		var f models.Field
		if err := rows.Scan(&b.ID, &b.PlayDateStart, &b.PlayDateEnd, &b.TotalPlayers, &b.UserID, &b.FieldID, &b.CreatedAt, &b.UpdatedAt,
			&f.ID, &f.Name, &f.Type, &f.VenueID, &f.CreatedAt, &f.UpdatedAt,
			&b.PlayersCount); err != nil {
			return nil, err
		}
		b.Field = &f
		list = append(list, b)
	}
	return list, rows.Err()
}

// Update rewrites the booking window and roster cap, re-checking overlap
// against other bookings on the same field under the field row lock.
func (r *Repository) Update(ctx context.Context, b *models.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockField(ctx, tx, b.FieldID); err != nil {
		return err
	}
	taken, err := hasOverlap(ctx, tx, b, b.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	const q = `UPDATE bookings SET play_date_start = $2, play_date_end = $3, total_players = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	if err := tx.QueryRow(ctx, q, b.ID, b.PlayDateStart, b.PlayDateEnd, b.TotalPlayers).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a booking; roster rows cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Join attaches a user to the roster. The booking row is locked for the
// duration of the capacity check so the count cannot move between check and
// insert; the booking_users primary key guards against duplicate joins.
func (r *Repository) Join(ctx context.Context, bookingID, userID uuid.UUID) (playersCount int, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var total int
	err = tx.QueryRow(ctx, `SELECT total_players FROM bookings WHERE id = $1 FOR UPDATE`, bookingID).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM booking_users WHERE booking_id = $1`, bookingID).Scan(&count); err != nil {
		return 0, err
	}
	if !CanJoin(count, total) {
		return count, ErrBookingFull
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO booking_users (booking_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		bookingID, userID)
	if err != nil {
		return count, err
	}
	if tag.RowsAffected() == 0 {
		return count, ErrAlreadyJoined
	}
	return count + 1, tx.Commit(ctx)
}

// Unjoin detaches a user from the roster. Detaching a user who never joined
// is a no-op.
func (r *Repository) Unjoin(ctx context.Context, bookingID, userID uuid.UUID) error {
	if _, err := r.GetByID(ctx, bookingID); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM booking_users WHERE booking_id = $1 AND user_id = $2`, bookingID, userID)
	return err
}
