package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "minefield-Tangerine-47-orbit"

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "short username", username: "ab", password: strongPassword, wantErr: ErrUsernameTooShort},
		{name: "long username", username: "a_very_long_username_indeed", password: strongPassword, wantErr: ErrUsernameTooLong},
		{name: "bad characters", username: "mine sweeper", password: strongPassword, wantErr: ErrInvalidUsername},
		{name: "weak password", username: "sweeper", password: "password", wantErr: ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(UserConfig{ID: uuid.New(), Username: tt.username, PlainPassword: tt.password})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("valid user verifies its password", func(t *testing.T) {
		id := uuid.New()
		user, err := NewUser(UserConfig{ID: id, Username: "sweeper_1", PlainPassword: strongPassword})
		require.NoError(t, err)

		assert.Equal(t, id, user.ID)
		assert.NotEqual(t, strongPassword, user.PasswordHash)
		assert.True(t, user.VerifyPassword(strongPassword))
		assert.False(t, user.VerifyPassword("minefield"))
	})
}
