package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOtpCode_Shape(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOtpCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestGenerateOtpCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateOtpCode()
		require.NoError(t, err)
		seen[code] = true
	}
	// 20 draws from a million values colliding into one bucket would mean a broken generator.
	assert.Greater(t, len(seen), 1)
}
