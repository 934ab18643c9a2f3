package game

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a notable change of a game.
type EventType string

// Event types raised by Game.
const (
	EventGameStarted    EventType = "game_started"
	EventCellRevealed   EventType = "cell_revealed"
	EventCellFlagged    EventType = "cell_flagged"
	EventCellQuestioned EventType = "cell_questioned"
	EventGamePaused     EventType = "game_paused"
	EventGameResumed    EventType = "game_resumed"
	EventGameWon        EventType = "game_won"
	EventGameLost       EventType = "game_lost"
)

// Event is a record of a mutation for the surrounding system to persist or
// broadcast. Only the fields relevant to the Type are set.
type Event struct {
	Type       EventType     `json:"type"`
	GameID     uuid.UUID     `json:"game_id"`
	PlayerID   uuid.UUID     `json:"player_id"`
	OccurredAt time.Time     `json:"occurred_at"`
	Positions  []Position    `json:"positions,omitempty"`  // Revealed cells, or the marked cell
	CellState  string        `json:"cell_state,omitempty"` // New state after a flag or question toggle
	Duration   time.Duration `json:"duration,omitempty"`   // Elapsed play time for won and lost games
}
