package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hayumabar/backend/internal/emaillog"
	"github.com/hayumabar/backend/internal/mailer"
	"github.com/hayumabar/backend/pkg/queue"
)

// EmailProcessor processes queued OTP email jobs: send via SMTP, record the
// outcome in email_logs.
type EmailProcessor struct {
	emailLogs *emaillog.Repository
	mail      *mailer.Mailer
	queue     *queue.Queue
	logger    *zap.Logger
}

// NewEmailProcessor creates an email job processor.
func NewEmailProcessor(emailLogs *emaillog.Repository, mail *mailer.Mailer, q *queue.Queue, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{emailLogs: emailLogs, mail: mail, queue: q, logger: logger}
}

// Process executes one email job.
func (p *EmailProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeOtpEmail {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.OtpEmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := p.mail.SendOtp(payload.RecipientEmail, payload.RecipientName, payload.OtpCode); err != nil {
		if payload.EmailLogID != uuid.Nil {
			_ = p.emailLogs.MarkFailed(ctx, payload.EmailLogID, err.Error())
		}
		return fmt.Errorf("send otp: %w", err)
	}

	if payload.EmailLogID != uuid.Nil {
		if err := p.emailLogs.MarkSent(ctx, payload.EmailLogID); err != nil {
			p.logger.Warn("mark email sent failed", zap.Error(err), zap.String("email_log_id", payload.EmailLogID.String()))
		}
	}
	p.logger.Info("otp email delivered", zap.String("user_id", payload.UserID.String()))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *EmailProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("email worker stopping")
			return
		default:
		}

		job, _, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
