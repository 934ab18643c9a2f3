package i

import (
	"context"
	"errors"

	"github.com/beka-birhanu/minesweeper-api/game"
	"github.com/beka-birhanu/minesweeper-api/identity"
	"github.com/google/uuid"
)

// Repository lookup errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrGameNotFound = errors.New("game not found")
	// ErrUsernameTaken is returned by UserRepo.Save for a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *identity.User) error

	// ByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user is not found, or an unexpected error.
	ByID(id uuid.UUID) (*identity.User, error)

	// ByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user is not found, or an unexpected error.
	ByUsername(username string) (*identity.User, error)
}

// GameRepo stores games as their full engine state.
type GameRepo interface {
	// Save inserts or replaces the game.
	Save(ctx context.Context, g *game.Game) error

	// ByID loads a game. Returns ErrGameNotFound when it does not exist.
	ByID(ctx context.Context, id uuid.UUID) (*game.Game, error)

	// ByPlayer lists the games of a player, newest first.
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*game.Game, error)
}
