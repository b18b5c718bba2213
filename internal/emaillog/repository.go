package emaillog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hayumabar/backend/internal/models"
)

// Email types recorded in email_logs.
const (
	TypeOtpVerification = "otp_verification"
)

// Delivery statuses.
const (
	StatusQueued = "queued"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Repository handles email_logs persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an email logs repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a queued email log entry.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, emailType, recipient, subject string) (*models.EmailLog, error) {
	const q = `INSERT INTO email_logs (user_id, email_type, recipient_email, subject, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	el := &models.EmailLog{
		UserID:         userID,
		EmailType:      emailType,
		RecipientEmail: recipient,
		Subject:        subject,
		Status:         StatusQueued,
	}
	if err := r.pool.QueryRow(ctx, q, userID, emailType, recipient, subject, StatusQueued).Scan(&el.ID, &el.CreatedAt); err != nil {
		return nil, err
	}
	return el, nil
}

// MarkSent records a successful delivery.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE email_logs SET status = $2, sent_at = NOW(), error_message = NULL WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id, StatusSent)
	return err
}

// MarkFailed records a delivery failure with its error message.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	const q = `UPDATE email_logs SET status = $2, error_message = $3 WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id, StatusFailed, errMsg)
	return err
}

// ListByUser returns a user's email logs, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.EmailLog, error) {
	const q = `SELECT id, user_id, email_type, recipient_email, COALESCE(subject,''), status, COALESCE(error_message,''), sent_at, created_at
		FROM email_logs WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EmailLog
	for rows.Next() {
		var el models.EmailLog
		if err := rows.Scan(&el.ID, &el.UserID, &el.EmailType, &el.RecipientEmail, &el.Subject, &el.Status, &el.ErrorMessage, &el.SentAt, &el.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, el)
	}
	return list, rows.Err()
}
