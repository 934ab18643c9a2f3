package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Status is the game level state.
type Status int

// Game statuses. Won and Lost are terminal.
const (
	NotStarted Status = iota
	InProgress
	Won
	Lost
	Paused
)

var statusNames = [...]string{
	NotStarted: "not_started",
	InProgress: "in_progress",
	Won:        "won",
	Lost:       "lost",
	Paused:     "paused",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// IsTerminal reports whether no further moves are accepted.
func (s Status) IsTerminal() bool {
	return s == Won || s == Lost
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return Status(status), nil
		}
	}
	return NotStarted, newError(ErrInvalidArgument, fmt.Sprintf("unknown game status %q", s))
}

// Option customizes a Game at construction or restore time.
type Option func(*Game)

// WithID sets the game id instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(g *Game) {
		g.id = id
	}
}

// WithRand sets the random source used for mine placement.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// Game is the aggregate for a single Minesweeper game.
// It enforces the move rules and records events for every visible change.
type Game struct {
	id          uuid.UUID
	playerID    uuid.UUID
	status      Status
	board       *Board
	createdAt   time.Time
	startedAt   time.Time
	completedAt *time.Time
	pausedAt    *time.Time    // Set while Paused
	pausedFor   time.Duration // Total time spent paused so far
	isFirstMove bool
	events      []Event

	rng *rand.Rand
	now func() time.Time
}

// New creates a game that has not started yet. Mines are placed by the first
// reveal.
func New(playerID uuid.UUID, difficulty Difficulty, opts ...Option) (*Game, error) {
	g := &Game{
		playerID:    playerID,
		status:      NotStarted,
		isFirstMove: true,
	}
	g.apply(opts)

	board, err := NewBoard(difficulty, g.rng)
	if err != nil {
		return nil, err
	}
	g.board = board
	g.createdAt = g.now()
	return g, nil
}

func (g *Game) apply(opts []Option) {
	for _, opt := range opts {
		opt(g)
	}
	if g.id == uuid.Nil {
		g.id = uuid.New()
	}
	if g.now == nil {
		g.now = time.Now
	}
}

// ID returns the game id.
func (g *Game) ID() uuid.UUID { return g.id }

// PlayerID returns the owning player.
func (g *Game) PlayerID() uuid.UUID { return g.playerID }

// Status returns the current status.
func (g *Game) Status() Status { return g.status }

// Difficulty returns the board configuration.
func (g *Game) Difficulty() Difficulty { return g.board.difficulty }

// CreatedAt returns when the game was created.
func (g *Game) CreatedAt() time.Time { return g.createdAt }

// StartedAt returns when the first reveal happened. Zero before that.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// CompletedAt returns when the game was won or lost.
func (g *Game) CompletedAt() (time.Time, bool) {
	if g.completedAt == nil {
		return time.Time{}, false
	}
	return *g.completedAt, true
}

// IsFirstMove reports whether no reveal has happened yet.
func (g *Game) IsFirstMove() bool { return g.isFirstMove }

// RevealCell opens a cell. On a game that has not started it first places
// the mines around pos, so the first click is always safe.
func (g *Game) RevealCell(pos Position) ([]Position, error) {
	if g.status == NotStarted {
		if err := g.start(pos); err != nil {
			return nil, err
		}
	}
	if g.status != InProgress {
		return nil, g.invalidState("reveal a cell")
	}

	revealed, err := g.board.RevealCell(pos)
	if err != nil {
		return nil, err
	}
	if len(revealed) > 0 {
		g.record(Event{Type: EventCellRevealed, Positions: revealed})
	}

	switch {
	case g.board.AnyMineRevealed():
		g.board.RevealAllMines()
		g.complete(Lost)
	case g.board.AllSafeCellsRevealed():
		g.complete(Won)
	}
	return revealed, nil
}

// ToggleFlag cycles the flag on a cell. Allowed before the first reveal.
func (g *Game) ToggleFlag(pos Position) (CellState, error) {
	if g.status != NotStarted && g.status != InProgress {
		return Hidden, g.invalidState("flag a cell")
	}
	state, err := g.board.ToggleFlag(pos)
	if err != nil {
		return state, err
	}
	g.record(Event{Type: EventCellFlagged, Positions: []Position{pos}, CellState: state.String()})
	return state, nil
}

// ToggleQuestion cycles the question mark on a cell. Allowed before the first
// reveal.
func (g *Game) ToggleQuestion(pos Position) (CellState, error) {
	if g.status != NotStarted && g.status != InProgress {
		return Hidden, g.invalidState("question a cell")
	}
	state, err := g.board.ToggleQuestion(pos)
	if err != nil {
		return state, err
	}
	g.record(Event{Type: EventCellQuestioned, Positions: []Position{pos}, CellState: state.String()})
	return state, nil
}

// Pause stops the clock of a game in progress.
func (g *Game) Pause() error {
	if g.status != InProgress {
		return g.invalidState("pause")
	}
	now := g.now()
	g.pausedAt = &now
	g.status = Paused
	g.record(Event{Type: EventGamePaused})
	return nil
}

// Resume restarts the clock of a paused game.
func (g *Game) Resume() error {
	if g.status != Paused {
		return g.invalidState("resume")
	}
	if g.pausedAt != nil {
		g.pausedFor += g.now().Sub(*g.pausedAt)
	}
	g.pausedAt = nil
	g.status = InProgress
	g.record(Event{Type: EventGameResumed})
	return nil
}

// RemainingMines is the mine count minus the flags placed. It goes negative
// when the player over-flags.
func (g *Game) RemainingMines() int {
	return g.board.difficulty.Mines - g.board.FlaggedCount()
}

// Elapsed is the play time, excluding pauses.
func (g *Game) Elapsed() time.Duration {
	var end time.Time
	switch {
	case g.status == NotStarted:
		return 0
	case g.completedAt != nil:
		end = *g.completedAt
	case g.pausedAt != nil:
		end = *g.pausedAt
	default:
		end = g.now()
	}

	elapsed := end.Sub(g.startedAt) - g.pausedFor
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Progress is the share of safe cells revealed, in [0,1].
func (g *Game) Progress() float64 {
	safe := g.board.SafeCellCount()
	if safe == 0 {
		return 0
	}
	return float64(g.board.RevealedSafeCount()) / float64(safe)
}

// Board returns the player visible grid, row by row. Mine flags are only
// exposed for revealed cells, or for every cell once the game is lost.
func (g *Game) Board() [][]CellView {
	d := g.board.difficulty
	grid := make([][]CellView, d.Rows)
	for row := 0; row < d.Rows; row++ {
		grid[row] = make([]CellView, d.Cols)
		for col := 0; col < d.Cols; col++ {
			cell := &g.board.cells[row*d.Cols+col]
			view := CellView{
				Row:   row,
				Col:   col,
				State: cell.state.String(),
				Glyph: cell.Glyph(),
			}
			if cell.state == Revealed || g.status == Lost {
				view.HasMine = cell.hasMine
			}
			if cell.state == Revealed && !cell.hasMine {
				view.AdjacentMines = cell.adjacentMines
			}
			grid[row][col] = view
		}
	}
	return grid
}

// String renders the board.
func (g *Game) String() string {
	return g.board.String()
}

// Events returns a copy of the events recorded since the last ClearEvents.
func (g *Game) Events() []Event {
	if len(g.events) == 0 {
		return nil
	}
	return append([]Event(nil), g.events...)
}

// ClearEvents drops the recorded events, typically after they were published.
func (g *Game) ClearEvents() {
	g.events = nil
}

func (g *Game) start(firstClick Position) error {
	if err := g.board.PlaceMines(firstClick); err != nil {
		return err
	}
	g.status = InProgress
	g.startedAt = g.now()
	g.isFirstMove = false
	g.record(Event{Type: EventGameStarted, Positions: []Position{firstClick}})
	return nil
}

func (g *Game) complete(status Status) {
	now := g.now()
	g.completedAt = &now
	g.status = status

	eventType := EventGameWon
	if status == Lost {
		eventType = EventGameLost
	}
	g.record(Event{Type: eventType, Duration: g.Elapsed()})
}

func (g *Game) record(e Event) {
	e.GameID = g.id
	e.PlayerID = g.playerID
	e.OccurredAt = g.now()
	g.events = append(g.events, e)
}

func (g *Game) invalidState(action string) error {
	return newError(ErrInvalidGameState, fmt.Sprintf("cannot %s while the game is %s", action, g.status))
}

// CellView is the player visible state of one cell.
type CellView struct {
	Row           int    `json:"row"`
	Col           int    `json:"col"`
	State         string `json:"state"`
	HasMine       bool   `json:"has_mine"`
	AdjacentMines int    `json:"adjacent_mines"`
	Glyph         string `json:"glyph"`
}
