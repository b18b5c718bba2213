package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("owner")
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, role)

	role, err = ParseRole("user")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)

	_, err = ParseRole("admin")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
	_, err = ParseRole("Owner")
	assert.Error(t, err)
}

func TestParseFieldType(t *testing.T) {
	for _, valid := range []string{"futsal", "soccer", "mini soccer", "basketball", "volleyball"} {
		ft, err := ParseFieldType(valid)
		require.NoError(t, err)
		assert.Equal(t, FieldType(valid), ft)
	}
	for _, invalid := range []string{"tennis", "", "Futsal", "minisoccer"} {
		_, err := ParseFieldType(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestUser_ToPublic_StripsPassword(t *testing.T) {
	u := User{Name: "A", Email: "a@x.com", Password: "hash", Role: RoleUser, IsVerified: true}
	pub := u.ToPublic()
	assert.Equal(t, u.Email, pub.Email)
	assert.Equal(t, u.Role, pub.Role)
	assert.True(t, pub.IsVerified)
}
