package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is the complete persisted form of a Game. Restore(g.State()) yields a
// game that behaves exactly like g.
type State struct {
	ID          uuid.UUID     `json:"id" bson:"_id"`
	PlayerID    uuid.UUID     `json:"player_id" bson:"playerId"`
	Difficulty  Difficulty    `json:"difficulty" bson:"difficulty"`
	Status      string        `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"createdAt"`
	StartedAt   time.Time     `json:"started_at" bson:"startedAt"`
	CompletedAt *time.Time    `json:"completed_at,omitempty" bson:"completedAt,omitempty"`
	PausedAt    *time.Time    `json:"paused_at,omitempty" bson:"pausedAt,omitempty"`
	PausedFor   time.Duration `json:"paused_for" bson:"pausedFor"`
	IsFirstMove bool          `json:"is_first_move" bson:"isFirstMove"`
	Cells       []CellRecord  `json:"cells" bson:"cells"` // Row-major, rows*cols entries
}

// CellRecord is the persisted form of a Cell. The position is implied by the
// index in State.Cells.
type CellRecord struct {
	State         string `json:"state" bson:"state"`
	HasMine       bool   `json:"has_mine" bson:"hasMine"`
	AdjacentMines int    `json:"adjacent_mines" bson:"adjacentMines"`
}

// State captures the game for persistence.
func (g *Game) State() State {
	cells := make([]CellRecord, len(g.board.cells))
	for i, c := range g.board.cells {
		cells[i] = CellRecord{
			State:         c.state.String(),
			HasMine:       c.hasMine,
			AdjacentMines: c.adjacentMines,
		}
	}

	return State{
		ID:          g.id,
		PlayerID:    g.playerID,
		Difficulty:  g.board.difficulty,
		Status:      g.status.String(),
		CreatedAt:   g.createdAt,
		StartedAt:   g.startedAt,
		CompletedAt: copyTime(g.completedAt),
		PausedAt:    copyTime(g.pausedAt),
		PausedFor:   g.pausedFor,
		IsFirstMove: g.isFirstMove,
		Cells:       cells,
	}
}

// Restore rebuilds a game from its persisted state. The state is checked
// against the engine invariants and rejected with ErrCorruptState when it
// could not have been produced by a Game.
func Restore(s State, opts ...Option) (*Game, error) {
	status, err := ParseStatus(s.Status)
	if err != nil {
		return nil, corrupt(err.Error())
	}
	if err := s.Difficulty.Validate(); err != nil {
		return nil, corrupt(err.Error())
	}
	if s.ID == uuid.Nil {
		return nil, corrupt("missing game id")
	}

	g := &Game{
		id:          s.ID,
		playerID:    s.PlayerID,
		status:      status,
		createdAt:   s.CreatedAt,
		startedAt:   s.StartedAt,
		completedAt: copyTime(s.CompletedAt),
		pausedAt:    copyTime(s.PausedAt),
		pausedFor:   s.PausedFor,
		isFirstMove: s.IsFirstMove,
	}
	g.apply(opts)
	// The stored id wins over WithID.
	g.id = s.ID

	board, err := NewBoard(s.Difficulty, g.rng)
	if err != nil {
		return nil, corrupt(err.Error())
	}
	if len(s.Cells) != len(board.cells) {
		return nil, corrupt(fmt.Sprintf("expected %d cells, got %d", len(board.cells), len(s.Cells)))
	}

	mines := 0
	for i, rec := range s.Cells {
		state, err := ParseCellState(rec.State)
		if err != nil {
			return nil, corrupt(err.Error())
		}
		cell := &board.cells[i]
		cell.state = state
		cell.hasMine = rec.HasMine
		if err := cell.SetAdjacentMines(rec.AdjacentMines); err != nil {
			return nil, corrupt(err.Error())
		}
		if rec.HasMine {
			mines++
		}
	}
	board.initialized = status != NotStarted
	g.board = board

	if err := g.checkInvariants(mines); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) checkInvariants(mines int) error {
	b := g.board
	if g.status == NotStarted {
		if mines != 0 || b.RevealedCount() != 0 {
			return corrupt("game not started but the board has mines or revealed cells")
		}
		if !g.isFirstMove {
			return corrupt("game not started but the first move is recorded")
		}
		return nil
	}

	if g.isFirstMove {
		return corrupt(fmt.Sprintf("game is %s but no first move is recorded", g.status))
	}
	if mines != b.difficulty.Mines {
		return corrupt(fmt.Sprintf("expected %d mines, got %d", b.difficulty.Mines, mines))
	}
	if g.status.IsTerminal() && g.completedAt == nil {
		return corrupt(fmt.Sprintf("game is %s without a completion time", g.status))
	}
	for i := range b.cells {
		cell := &b.cells[i]
		if cell.hasMine {
			continue
		}
		if want := b.countAdjacentMines(cell.position); cell.adjacentMines != want {
			return corrupt(fmt.Sprintf("cell %s counts %d adjacent mines, board has %d", cell.position, cell.adjacentMines, want))
		}
	}
	return nil
}

func corrupt(msg string) error {
	return newError(ErrCorruptState, msg)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
