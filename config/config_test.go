package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpireHours)
	assert.Equal(t, 15, cfg.OTP.ExpireMinutes)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OTP_EXPIRE_MINUTES", "5")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.OTP.ExpireMinutes)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "hayumabar", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/hayumabar?sslmode=disable", c.DSN())

	c.URL = "postgres://elsewhere:5432/other"
	assert.Equal(t, "postgres://elsewhere:5432/other", c.DSN())
}
