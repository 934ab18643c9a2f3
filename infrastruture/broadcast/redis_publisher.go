package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beka-birhanu/minesweeper-api/game"
	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisPublisher sends game events over redis pub/sub, one channel per game.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher on top of client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

var _ i.EventPublisher = &RedisPublisher{}

// Channel is the pub/sub channel carrying the events of a game.
func Channel(gameID uuid.UUID) string {
	return fmt.Sprintf("minesweeper:game:%s:events", gameID)
}

// Publish sends the events in order. Events of one call are pipelined.
func (p *RedisPublisher) Publish(ctx context.Context, events []game.Event) error {
	if len(events) == 0 {
		return nil
	}

	pipe := p.client.Pipeline()
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encoding %s event: %w", e.Type, err)
		}
		pipe.Publish(ctx, Channel(e.GameID), payload)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Subscribe listens for events of a game until ctx is done. The returned
// channel is closed when the subscription ends.
func (p *RedisPublisher) Subscribe(ctx context.Context, gameID uuid.UUID) (<-chan game.Event, error) {
	sub := p.client.Subscribe(ctx, Channel(gameID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan game.Event)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var e game.Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
