package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/minesweeper-api/game"
	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/google/uuid"
)

const (
	defaultListLimit   = 20
	defaultLockTimeout = 3 * time.Second

	gameLockKeyFmt = "minesweeper:game:%s:lock"
)

var (
	ErrNotGameOwner      = errors.New("game belongs to another player")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// GameService runs player moves against stored games. Each mutation holds
// the game's lock from load to save so concurrent requests cannot interleave.
type GameService struct {
	games       i.GameRepo
	locker      i.Locker
	publisher   i.EventPublisher
	leaderboard i.Leaderboard
	logger      i.Logger
	gameFactory func(uuid.UUID, game.Difficulty) (*game.Game, error)
	lockTimeout time.Duration
}

// GameServiceConfig wires the collaborators of a GameService.
type GameServiceConfig struct {
	Games       i.GameRepo
	Locker      i.Locker
	Publisher   i.EventPublisher
	Leaderboard i.Leaderboard
	Logger      i.Logger
	GameFactory func(uuid.UUID, game.Difficulty) (*game.Game, error) // Defaults to game.New
	LockTimeout time.Duration                                         // Max wait for a game lock
}

// NewGameService validates the config and builds the service.
func NewGameService(c *GameServiceConfig) (*GameService, error) {
	if c == nil || c.Games == nil || c.Locker == nil || c.Publisher == nil || c.Leaderboard == nil || c.Logger == nil {
		return nil, errors.New("game service: games, locker, publisher, leaderboard and logger are required")
	}

	factory := c.GameFactory
	if factory == nil {
		factory = func(playerID uuid.UUID, d game.Difficulty) (*game.Game, error) {
			return game.New(playerID, d)
		}
	}

	lockTimeout := c.LockTimeout
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}

	return &GameService{
		games:       c.Games,
		locker:      c.Locker,
		publisher:   c.Publisher,
		leaderboard: c.Leaderboard,
		logger:      c.Logger,
		gameFactory: factory,
		lockTimeout: lockTimeout,
	}, nil
}

var _ i.GameService = &GameService{}

// Create starts a new, not yet started game for the player.
func (s *GameService) Create(ctx context.Context, playerID uuid.UUID, d game.Difficulty) (*game.Game, error) {
	g, err := s.gameFactory(playerID, d)
	if err != nil {
		return nil, err
	}

	if err := s.games.Save(ctx, g); err != nil {
		s.logger.Error(fmt.Sprintf("saving new game for player %s: %s", playerID, err))
		return nil, fmt.Errorf("saving game: %w", err)
	}

	s.logger.Info(fmt.Sprintf("created game %s (%s %dx%d, %d mines) for player %s",
		g.ID(), d.Name, d.Rows, d.Cols, d.Mines, playerID))
	return g, nil
}

// Get loads a game owned by the player.
func (s *GameService) Get(ctx context.Context, gameID, playerID uuid.UUID) (*game.Game, error) {
	return s.load(ctx, gameID, playerID)
}

// List returns the player's games, newest first.
func (s *GameService) List(ctx context.Context, playerID uuid.UUID, limit int64) ([]*game.Game, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	games, err := s.games.ByPlayer(ctx, playerID, limit)
	if err != nil {
		s.logger.Error(fmt.Sprintf("listing games of player %s: %s", playerID, err))
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

// Reveal opens a cell.
func (s *GameService) Reveal(ctx context.Context, gameID, playerID uuid.UUID, pos game.Position) (*game.Game, []game.Position, error) {
	var revealed []game.Position
	g, err := s.mutate(ctx, gameID, playerID, "reveal", func(g *game.Game) error {
		var err error
		revealed, err = g.RevealCell(pos)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return g, revealed, nil
}

// ToggleFlag cycles the flag of a cell.
func (s *GameService) ToggleFlag(ctx context.Context, gameID, playerID uuid.UUID, pos game.Position) (*game.Game, error) {
	return s.mutate(ctx, gameID, playerID, "flag", func(g *game.Game) error {
		_, err := g.ToggleFlag(pos)
		return err
	})
}

// ToggleQuestion cycles the question mark of a cell.
func (s *GameService) ToggleQuestion(ctx context.Context, gameID, playerID uuid.UUID, pos game.Position) (*game.Game, error) {
	return s.mutate(ctx, gameID, playerID, "question", func(g *game.Game) error {
		_, err := g.ToggleQuestion(pos)
		return err
	})
}

// Pause stops the game clock.
func (s *GameService) Pause(ctx context.Context, gameID, playerID uuid.UUID) (*game.Game, error) {
	return s.mutate(ctx, gameID, playerID, "pause", (*game.Game).Pause)
}

// Resume restarts the game clock.
func (s *GameService) Resume(ctx context.Context, gameID, playerID uuid.UUID) (*game.Game, error) {
	return s.mutate(ctx, gameID, playerID, "resume", (*game.Game).Resume)
}

// Leaderboard returns the fastest wins of a preset difficulty.
func (s *GameService) Leaderboard(ctx context.Context, difficulty string, n int64) ([]i.LeaderboardEntry, error) {
	d, ok := game.DifficultyByName(difficulty)
	if !ok {
		return nil, ErrUnknownDifficulty
	}
	entries, err := s.leaderboard.Top(ctx, d.Name, n)
	if err != nil {
		s.logger.Error(fmt.Sprintf("reading %s leaderboard: %s", d.Name, err))
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}
	return entries, nil
}

// mutate runs move on the stored game under its lock and persists the
// result. A failed move saves nothing.
func (s *GameService) mutate(ctx context.Context, gameID, playerID uuid.UUID, action string, move func(*game.Game) error) (*game.Game, error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	unlock, err := s.locker.Lock(lockCtx, fmt.Sprintf(gameLockKeyFmt, gameID))
	if err != nil {
		s.logger.Error(fmt.Sprintf("locking game %s for %s: %s", gameID, action, err))
		return nil, fmt.Errorf("locking game: %w", err)
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Warning(fmt.Sprintf("releasing lock of game %s: %s", gameID, err))
		}
	}()

	g, err := s.load(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	if err := move(g); err != nil {
		s.logger.Debug(fmt.Sprintf("rejected %s on game %s: %s", action, gameID, err))
		return nil, err
	}

	if err := s.games.Save(ctx, g); err != nil {
		s.logger.Error(fmt.Sprintf("saving game %s after %s: %s", gameID, action, err))
		return nil, fmt.Errorf("saving game: %w", err)
	}

	s.afterSave(ctx, g)
	return g, nil
}

// afterSave publishes the recorded events and ranks wins. Failures here are
// logged only, the move itself is already stored.
func (s *GameService) afterSave(ctx context.Context, g *game.Game) {
	events := g.Events()
	defer g.ClearEvents()
	if len(events) == 0 {
		return
	}

	if err := s.publisher.Publish(ctx, events); err != nil {
		s.logger.Warning(fmt.Sprintf("publishing %d events of game %s: %s", len(events), g.ID(), err))
	}

	for _, e := range events {
		switch e.Type {
		case game.EventGameWon:
			s.logger.Info(fmt.Sprintf("player %s won game %s in %s", g.PlayerID(), g.ID(), e.Duration))
			if !g.Difficulty().IsPreset() {
				continue
			}
			if err := s.leaderboard.Record(ctx, g.Difficulty().Name, g.PlayerID(), e.Duration); err != nil {
				s.logger.Warning(fmt.Sprintf("recording win of game %s: %s", g.ID(), err))
			}
		case game.EventGameLost:
			s.logger.Info(fmt.Sprintf("player %s lost game %s", g.PlayerID(), g.ID()))
		}
	}
}

func (s *GameService) load(ctx context.Context, gameID, playerID uuid.UUID) (*game.Game, error) {
	g, err := s.games.ByID(ctx, gameID)
	if err != nil {
		if !errors.Is(err, i.ErrGameNotFound) {
			s.logger.Error(fmt.Sprintf("loading game %s: %s", gameID, err))
		}
		return nil, err
	}
	if g.PlayerID() != playerID {
		return nil, ErrNotGameOwner
	}
	return g, nil
}
