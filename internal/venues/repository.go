package venues

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hayumabar/backend/internal/models"
)

// ErrNotFound is returned when no venue matches the lookup.
var ErrNotFound = errors.New("venue not found")

// Repository handles venue persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a venues repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a venue owned by userID.
func (r *Repository) Create(ctx context.Context, v *models.Venue) error {
	const q = `INSERT INTO venues (name, address, phone, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, v.Name, v.Address, v.Phone, v.UserID).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

// GetByID returns a venue without associations.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	const q = `SELECT id, name, address, phone, user_id, created_at, updated_at FROM venues WHERE id = $1`
	var v models.Venue
	err := r.pool.QueryRow(ctx, q, id).Scan(&v.ID, &v.Name, &v.Address, &v.Phone, &v.UserID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetWithFields returns a venue with its fields, and each field's bookings.
func (r *Repository) GetWithFields(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fields, err := r.fieldsForVenues(ctx, []uuid.UUID{id}, true)
	if err != nil {
		return nil, err
	}
	v.Fields = fields[id]
	return v, nil
}

// List returns all venues with their fields eagerly loaded.
func (r *Repository) List(ctx context.Context) ([]models.Venue, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, address, phone, user_id, created_at, updated_at FROM venues ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Venue
	var ids []uuid.UUID
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Phone, &v.UserID, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	fields, err := r.fieldsForVenues(ctx, ids, false)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Fields = fields[list[i].ID]
	}
	return list, nil
}

// Update changes name/address/phone of a venue.
func (r *Repository) Update(ctx context.Context, v *models.Venue) error {
	const q = `UPDATE venues SET name = $2, address = $3, phone = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, v.ID, v.Name, v.Address, v.Phone).Scan(&v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes a venue; fields and bookings cascade via foreign keys.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// fieldsForVenues loads fields for the given venues, optionally with each
// field's bookings attached.
func (r *Repository) fieldsForVenues(ctx context.Context, venueIDs []uuid.UUID, withBookings bool) (map[uuid.UUID][]models.Field, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, type, venue_id, created_at, updated_at FROM fields WHERE venue_id = ANY($1) ORDER BY created_at`,
		venueIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byVenue := make(map[uuid.UUID][]models.Field)
	var fieldIDs []uuid.UUID
	for rows.Next() {
		var f models.Field
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.VenueID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		byVenue[f.VenueID] = append(byVenue[f.VenueID], f)
		fieldIDs = append(fieldIDs, f.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !withBookings || len(fieldIDs) == 0 {
		return byVenue, nil
	}

	bookingRows, err := r.pool.Query(ctx,
		`SELECT id, play_date_start, play_date_end, total_players, user_id, field_id, created_at, updated_at
		 FROM bookings WHERE field_id = ANY($1) ORDER BY play_date_start`,
		fieldIDs)
	if err != nil {
		return nil, err
	}
	defer bookingRows.Close()

	byField := make(map[uuid.UUID][]models.Booking)
	for bookingRows.Next() {
		var b models.Booking
		if err := bookingRows.Scan(&b.ID, &b.PlayDateStart, &b.PlayDateEnd, &b.TotalPlayers, &b.UserID, &b.FieldID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		byField[b.FieldID] = append(byField[b.FieldID], b)
	}
	if err := bookingRows.Err(); err != nil {
		return nil, err
	}
	for venueID, fields := range byVenue {
		for i := range fields {
			fields[i].Bookings = byField[fields[i].ID]
		}
		byVenue[venueID] = fields
	}
	return byVenue, nil
}
