package service

import (
	"context"
	"time"

	"github.com/beka-birhanu/minesweeper-api/game"
	"github.com/beka-birhanu/minesweeper-api/identity"
	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockGameRepo struct{ mock.Mock }

func (m *mockGameRepo) Save(ctx context.Context, g *game.Game) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockGameRepo) ByID(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*game.Game)
	return g, args.Error(1)
}

func (m *mockGameRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*game.Game, error) {
	args := m.Called(ctx, playerID, limit)
	games, _ := args.Get(0).([]*game.Game)
	return games, args.Error(1)
}

type mockLocker struct {
	mock.Mock
	unlocked int
}

func (m *mockLocker) Lock(ctx context.Context, key string) (i.Unlock, error) {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() error {
		m.unlocked++
		return nil
	}, nil
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, events []game.Event) error {
	return m.Called(ctx, events).Error(0)
}

type mockLeaderboard struct{ mock.Mock }

func (m *mockLeaderboard) Record(ctx context.Context, difficulty string, playerID uuid.UUID, elapsed time.Duration) error {
	return m.Called(ctx, difficulty, playerID, elapsed).Error(0)
}

func (m *mockLeaderboard) Top(ctx context.Context, difficulty string, n int64) ([]i.LeaderboardEntry, error) {
	args := m.Called(ctx, difficulty, n)
	entries, _ := args.Get(0).([]i.LeaderboardEntry)
	return entries, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Save(user *identity.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) ByID(id uuid.UUID) (*identity.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*identity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) ByUsername(username string) (*identity.User, error) {
	args := m.Called(username)
	u, _ := args.Get(0).(*identity.User)
	return u, args.Error(1)
}

type mockTokenizer struct{ mock.Mock }

func (m *mockTokenizer) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	args := m.Called(claims, expTime)
	return args.String(0), args.Error(1)
}

func (m *mockTokenizer) Decode(token string) (map[string]interface{}, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(map[string]interface{})
	return claims, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Debug(string)   {}
func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}
