package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hayumabar/backend/internal/models"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrOtpMismatch is returned when the submitted code does not belong to the user,
	// is expired, or was already consumed.
	ErrOtpMismatch = errors.New("otp code invalid")
)

// Repository handles user and OTP persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, is_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// Create inserts a new unverified user.
func (r *Repository) Create(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error) {
	const q = `INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q, name, email, passwordHash, string(role)))
}

// CreateOtp inserts a one-time code for the user.
func (r *Repository) CreateOtp(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) (*models.OtpCode, error) {
	const q = `INSERT INTO otp_codes (user_id, code, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, code, expires_at, consumed_at, created_at`
	var otp models.OtpCode
	err := r.pool.QueryRow(ctx, q, userID, code, expiresAt).
		Scan(&otp.ID, &otp.UserID, &otp.Code, &otp.ExpiresAt, &otp.ConsumedAt, &otp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// VerifyOtp atomically consumes the most recent matching unconsumed, unexpired code
// for the user and flips is_verified. Returns ErrOtpMismatch when no such code exists.
func (r *Repository) VerifyOtp(ctx context.Context, userID uuid.UUID, code string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const consume = `UPDATE otp_codes SET consumed_at = NOW()
		WHERE id = (
			SELECT id FROM otp_codes
			WHERE user_id = $1 AND code = $2 AND consumed_at IS NULL AND expires_at > NOW()
			ORDER BY created_at DESC
			LIMIT 1
		)`
	tag, err := tx.Exec(ctx, consume, userID, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOtpMismatch
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
