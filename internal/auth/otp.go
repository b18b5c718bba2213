package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOtpCode returns a random 6-digit numeric code, zero-padded.
func GenerateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
