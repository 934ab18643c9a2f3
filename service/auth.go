package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/minesweeper-api/identity"
	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid username or password")

type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	logger    i.Logger
}

func NewAuthService(ur i.UserRepo, t i.Tokenizer, l i.Logger) (*Auth, error) {
	if ur == nil || t == nil || l == nil {
		return nil, errors.New("auth service: user repo, tokenizer and logger are required")
	}
	return &Auth{userRepo: ur, tokenizer: t, logger: l}, nil
}

var _ i.Authenticator = &Auth{}

func (a *Auth) Register(username, password string) error {
	userConfig := identity.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	user, err := identity.NewUser(userConfig)
	if err != nil {
		return err
	}

	if err := a.userRepo.Save(user); err != nil {
		a.logger.Error(fmt.Sprintf("saving user %s: %s", username, err))
		return err
	}

	a.logger.Info(fmt.Sprintf("registered user %s", user.ID))
	return nil
}

func (a *Auth) SignIn(username, password string) (*identity.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, tokenTTL)
	if err != nil {
		a.logger.Error(fmt.Sprintf("generating token for user %s: %s", user.ID, err))
		return nil, "", err
	}

	return user, token, nil
}
