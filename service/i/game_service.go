package i

import (
	"context"

	"github.com/beka-birhanu/minesweeper-api/game"
	"github.com/google/uuid"
)

// GameService runs player moves against stored games. Every mutation is
// serialized per game.
type GameService interface {
	Create(ctx context.Context, playerID uuid.UUID, d game.Difficulty) (*game.Game, error)
	Get(ctx context.Context, gameID, playerID uuid.UUID) (*game.Game, error)
	List(ctx context.Context, playerID uuid.UUID, limit int64) ([]*game.Game, error)

	// Reveal returns the game after the move and the positions it opened.
	Reveal(ctx context.Context, gameID, playerID uuid.UUID, pos game.Position) (*game.Game, []game.Position, error)
	ToggleFlag(ctx context.Context, gameID, playerID uuid.UUID, pos game.Position) (*game.Game, error)
	ToggleQuestion(ctx context.Context, gameID, playerID uuid.UUID, pos game.Position) (*game.Game, error)
	Pause(ctx context.Context, gameID, playerID uuid.UUID) (*game.Game, error)
	Resume(ctx context.Context, gameID, playerID uuid.UUID) (*game.Game, error)

	Leaderboard(ctx context.Context, difficulty string, n int64) ([]LeaderboardEntry, error)
}
