package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayumabar/backend/config"
	"github.com/hayumabar/backend/internal/mailer"
	"github.com/hayumabar/backend/pkg/queue"
)

func TestEmailProcessor_Process_UnknownJobType(t *testing.T) {
	p := NewEmailProcessor(nil, mailer.New(config.EmailConfig{}, nil), nil, nil)

	err := p.Process(context.Background(), &queue.Job{Type: "recording_upload"})
	assert.ErrorContains(t, err, "unknown job type")
}

func TestEmailProcessor_Process_InvalidPayload(t *testing.T) {
	p := NewEmailProcessor(nil, mailer.New(config.EmailConfig{}, nil), nil, nil)

	err := p.Process(context.Background(), &queue.Job{Type: queue.JobTypeOtpEmail, Payload: []byte("{")})
	assert.ErrorContains(t, err, "unmarshal payload")
}

func TestEmailProcessor_Process_SendFailureSurfaces(t *testing.T) {
	// SMTP unconfigured: send fails and the job is reported as failed so the
	// queue can retry it. EmailLogID is zero, so no DB write is attempted.
	p := NewEmailProcessor(nil, mailer.New(config.EmailConfig{}, nil), nil, nil)

	payload, err := json.Marshal(queue.OtpEmailPayload{RecipientEmail: "a@x.com", RecipientName: "Andi", OtpCode: "123456"})
	require.NoError(t, err)

	err = p.Process(context.Background(), &queue.Job{Type: queue.JobTypeOtpEmail, Payload: payload})
	assert.ErrorIs(t, err, mailer.ErrNotConfigured)
}
