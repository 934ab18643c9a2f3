package service

import (
	"errors"
	"testing"

	"github.com/beka-birhanu/minesweeper-api/identity"
	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPassword = "minefield-Tangerine-47-orbit"

func TestAuthService(t *testing.T) {
	users := &mockUserRepo{}
	tokens := &mockTokenizer{}
	svc, err := NewAuthService(users, tokens, nopLogger{})
	require.NoError(t, err)

	_, err = NewAuthService(nil, tokens, nopLogger{})
	assert.Error(t, err)

	t.Run("register rejects weak password", func(t *testing.T) {
		err := svc.Register("sweeper", "123456")
		assert.ErrorIs(t, err, identity.ErrWeakPassword)
		users.AssertNotCalled(t, "Save", mock.Anything)
	})

	var stored *identity.User
	t.Run("register saves the user", func(t *testing.T) {
		users.On("Save", mock.AnythingOfType("*identity.User")).Run(func(args mock.Arguments) {
			stored = args.Get(0).(*identity.User)
		}).Return(nil).Once()

		require.NoError(t, svc.Register("sweeper", testPassword))
		require.NotNil(t, stored)
		assert.Equal(t, "sweeper", stored.Username)
		assert.NotEqual(t, uuid.Nil, stored.ID)
	})

	t.Run("sign in with wrong password", func(t *testing.T) {
		users.On("ByUsername", "sweeper").Return(stored, nil).Once()
		_, _, err := svc.SignIn("sweeper", "not-the-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("sign in of unknown user", func(t *testing.T) {
		users.On("ByUsername", "ghost").Return(nil, i.ErrUserNotFound).Once()
		_, _, err := svc.SignIn("ghost", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("sign in returns a token", func(t *testing.T) {
		users.On("ByUsername", "sweeper").Return(stored, nil).Once()
		tokens.On("Generate", map[string]interface{}{
			"userID":   stored.ID.String(),
			"username": "sweeper",
		}, tokenTTL).Return("signed", nil).Once()

		user, token, err := svc.SignIn("sweeper", testPassword)
		require.NoError(t, err)
		assert.Equal(t, stored, user)
		assert.Equal(t, "signed", token)
	})

	t.Run("tokenizer failure", func(t *testing.T) {
		users.On("ByUsername", "sweeper").Return(stored, nil).Once()
		tokens.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("no key")).Once()

		_, _, err := svc.SignIn("sweeper", testPassword)
		assert.ErrorContains(t, err, "no key")
	})
}
