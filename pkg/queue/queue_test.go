package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_EnqueueOtpEmail(t *testing.T) {
	db, mock := redismock.NewClientMock()
	q := NewQueue(db, nil)

	payload := OtpEmailPayload{
		UserID:         uuid.New(),
		RecipientEmail: "a@x.com",
		RecipientName:  "Andi",
		OtpCode:        "123456",
	}
	mock.Regexp().ExpectRPush(QueueEmails, `"type":"otp_email"`).SetVal(1)

	err := q.EnqueueOtpEmail(context.Background(), payload)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueue_Dequeue(t *testing.T) {
	db, mock := redismock.NewClientMock()
	q := NewQueue(db, nil)

	payload, err := json.Marshal(OtpEmailPayload{RecipientEmail: "a@x.com", OtpCode: "123456"})
	require.NoError(t, err)
	job := Job{ID: uuid.New().String(), Type: JobTypeOtpEmail, Payload: payload, CreatedAt: time.Now()}
	raw, err := json.Marshal(job)
	require.NoError(t, err)

	mock.ExpectBLPop(0, QueueEmails).SetVal([]string{QueueEmails, string(raw)})

	got, key, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, QueueEmails, key)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, JobTypeOtpEmail, got.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueue_Dequeue_InvalidPayload(t *testing.T) {
	db, mock := redismock.NewClientMock()
	q := NewQueue(db, nil)

	mock.ExpectBLPop(0, QueueEmails).SetVal([]string{QueueEmails, "not-json"})

	got, _, err := q.Dequeue(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestQueue_Retry_Requeues(t *testing.T) {
	db, mock := redismock.NewClientMock()
	q := NewQueue(db, nil)

	job := &Job{ID: uuid.New().String(), Type: JobTypeOtpEmail, Attempt: 0}
	mock.Regexp().ExpectRPush(QueueEmails, `"attempt":1`).SetVal(1)

	err := q.Retry(context.Background(), job)
	assert.NoError(t, err)
	assert.Equal(t, 1, job.Attempt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueue_Retry_MovesToDLQAfterMaxRetries(t *testing.T) {
	db, mock := redismock.NewClientMock()
	q := NewQueue(db, nil)

	job := &Job{ID: uuid.New().String(), Type: JobTypeOtpEmail, Attempt: MaxRetries - 1}
	mock.Regexp().ExpectRPush(QueueDLQ, `"attempt":3`).SetVal(1)

	err := q.Retry(context.Background(), job)
	assert.NoError(t, err)
	assert.Equal(t, MaxRetries, job.Attempt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
