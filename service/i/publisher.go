package i

import (
	"context"

	"github.com/beka-birhanu/minesweeper-api/game"
)

// EventPublisher broadcasts game events to whoever listens.
type EventPublisher interface {
	Publish(ctx context.Context, events []game.Event) error
}
