package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleHierarchy(t *testing.T) {
	assert.True(t, RoleAdmin.HasPermission(RoleManager))
	assert.True(t, RoleManager.HasPermission(RoleManager))
	assert.False(t, RoleEmployee.HasPermission(RoleManager))
	assert.False(t, RoleConsumer.HasPermission(RoleViewer))
	assert.True(t, RoleConsumer.HasPermission(RoleConsumer))
	assert.False(t, Role("ghost").HasPermission(RoleConsumer))

	assert.True(t, RoleViewer.IsStaff())
	assert.False(t, RoleConsumer.IsStaff())

	role, err := ParseRole(" Manager ")
	require.NoError(t, err)
	assert.Equal(t, RoleManager, role)
	_, err = ParseRole("owner")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestValidatePassword(t *testing.T) {
	cases := map[string]error{
		"":           ErrEmptyPassword,
		"Ab1":        ErrWeakPassword,
		"abcdefgh1":  ErrWeakPassword,
		"ABCDEFGH1":  ErrWeakPassword,
		"Abcdefghi":  ErrWeakPassword,
		"Abcdefg1":   nil,
		"Sênha2024!": nil,
	}
	for password, want := range cases {
		err := ValidatePassword(password)
		if want == nil {
			assert.NoError(t, err, password)
			continue
		}
		assert.ErrorIs(t, err, want, password)
	}
}

func TestUserValidateNormalizesEmail(t *testing.T) {
	u := &User{Name: " Maria Silva ", Email: " Consumidor@LevaJa.com ", PasswordHash: "x", Role: RoleConsumer, Preferences: DefaultPreferences()}
	require.NoError(t, u.Validate())
	assert.Equal(t, "consumidor@levaja.com", u.Email)
	assert.Equal(t, "Maria Silva", u.Name)

	u.Email = "not-an-email"
	assert.ErrorIs(t, u.Validate(), ErrInvalidEmail)

	u.Email = "a@b.co"
	u.Role = "owner"
	assert.ErrorIs(t, u.Validate(), ErrInvalidRole)
}

func TestLoyaltyPointsAndClone(t *testing.T) {
	now := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	u := &User{Preferences: DefaultPreferences()}
	require.NoError(t, u.AddLoyaltyPoints(29, now))
	assert.Equal(t, 29, u.LoyaltyPoints)
	assert.ErrorIs(t, u.AddLoyaltyPoints(-1, now), ErrNegativeLoyaltyPoints)

	clone := u.Clone()
	clone.Preferences.Categories = append(clone.Preferences.Categories, "Padaria")
	assert.Empty(t, u.Preferences.Categories)
	assert.True(t, Session{ExpiresAt: now}.Expired(now))
}
