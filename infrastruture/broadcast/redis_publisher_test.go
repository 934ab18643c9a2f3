package broadcast

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/beka-birhanu/minesweeper-api/game"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel(t *testing.T) {
	id := uuid.MustParse("6f1c1f1e-6a35-4b8b-9d8c-5c8f6f1b2a10")
	assert.Equal(t, "minesweeper:game:6f1c1f1e-6a35-4b8b-9d8c-5c8f6f1b2a10:events", Channel(id))
}

func TestRedisPublisher(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p := NewRedisPublisher(client)
	gameID := uuid.New()
	events, err := p.Subscribe(ctx, gameID)
	require.NoError(t, err)

	sent := []game.Event{
		{Type: game.EventGameStarted, GameID: gameID, OccurredAt: time.Now().UTC()},
		{Type: game.EventCellRevealed, GameID: gameID, Positions: []game.Position{{Row: 1, Col: 2}}},
	}
	require.NoError(t, p.Publish(ctx, sent))
	require.NoError(t, p.Publish(ctx, nil))

	for _, want := range sent {
		got := <-events
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.GameID, got.GameID)
		assert.Equal(t, want.Positions, got.Positions)
	}
}
