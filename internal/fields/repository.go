package fields

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hayumabar/backend/internal/models"
)

// ErrNotFound is returned when no field matches id+venue.
var ErrNotFound = errors.New("field not found")

// Repository handles field persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a fields repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a field under a venue.
func (r *Repository) Create(ctx context.Context, f *models.Field) error {
	const q = `INSERT INTO fields (name, type, venue_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, f.Name, string(f.Type), f.VenueID).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

// GetByVenueAndID returns a field only when it belongs to the given venue.
func (r *Repository) GetByVenueAndID(ctx context.Context, venueID, id uuid.UUID) (*models.Field, error) {
	const q = `SELECT id, name, type, venue_id, created_at, updated_at FROM fields WHERE id = $1 AND venue_id = $2`
	var f models.Field
	err := r.pool.QueryRow(ctx, q, id, venueID).Scan(&f.ID, &f.Name, &f.Type, &f.VenueID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// GetWithBookings returns a field (scoped to venue) with its bookings.
func (r *Repository) GetWithBookings(ctx context.Context, venueID, id uuid.UUID) (*models.Field, error) {
	f, err := r.GetByVenueAndID(ctx, venueID, id)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, play_date_start, play_date_end, total_players, user_id, field_id, created_at, updated_at
		 FROM bookings WHERE field_id = $1 ORDER BY play_date_start`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.PlayDateStart, &b.PlayDateEnd, &b.TotalPlayers, &b.UserID, &b.FieldID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		f.Bookings = append(f.Bookings, b)
	}
	return f, rows.Err()
}

// ListByVenue returns all fields of a venue.
func (r *Repository) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]models.Field, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, type, venue_id, created_at, updated_at FROM fields WHERE venue_id = $1 ORDER BY created_at`, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Field
	for rows.Next() {
		var f models.Field
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.VenueID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// Update changes name/type of a field. The WHERE clause pins both id and venue
// so a field can never be edited through another venue's route.
func (r *Repository) Update(ctx context.Context, f *models.Field) error {
	const q = `UPDATE fields SET name = $3, type = $4, updated_at = NOW()
		WHERE id = $1 AND venue_id = $2
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, f.ID, f.VenueID, f.Name, string(f.Type)).Scan(&f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes a field scoped to its venue; bookings cascade.
func (r *Repository) Delete(ctx context.Context, venueID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM fields WHERE id = $1 AND venue_id = $2`, id, venueID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
