package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hayumabar/backend/config"
)

func TestBuildOtpMessage(t *testing.T) {
	msg := string(BuildOtpMessage("noreply@hayumabar.com", "Hayumabar", "a@x.com", "Andi", "042137"))

	assert.Contains(t, msg, "To: a@x.com")
	assert.Contains(t, msg, "From: Hayumabar <noreply@hayumabar.com>")
	assert.Contains(t, msg, "Subject: Your verification code")
	assert.Contains(t, msg, "042137")
	assert.Contains(t, msg, "Hi Andi")
}

func TestSendOtp_NotConfigured(t *testing.T) {
	m := New(config.EmailConfig{}, nil)
	err := m.SendOtp("a@x.com", "Andi", "123456")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
