package game

import (
	"fmt"
	"strconv"
)

// CellState is the visible state of a single square.
type CellState int

// Cell states. Revealed is terminal for a cell.
const (
	Hidden CellState = iota
	Revealed
	Flagged
	Questioned
)

const maxAdjacentMines = 8

var cellStateNames = [...]string{
	Hidden:     "hidden",
	Revealed:   "revealed",
	Flagged:    "flagged",
	Questioned: "questioned",
}

func (s CellState) String() string {
	if s < 0 || int(s) >= len(cellStateNames) {
		return "unknown"
	}
	return cellStateNames[s]
}

// ParseCellState is the inverse of CellState.String.
func ParseCellState(s string) (CellState, error) {
	for state, name := range cellStateNames {
		if name == s {
			return CellState(state), nil
		}
	}
	return Hidden, newError(ErrInvalidArgument, fmt.Sprintf("unknown cell state %q", s))
}

// Cell represents a single square of the board.
// Its position never changes after the board is built.
type Cell struct {
	position      Position
	hasMine       bool
	state         CellState
	adjacentMines int
}

func newCell(pos Position) Cell {
	return Cell{position: pos, state: Hidden}
}

// Position returns the location of the cell on its board.
func (c *Cell) Position() Position {
	return c.position
}

// HasMine returns true if a mine was placed on the cell.
func (c *Cell) HasMine() bool {
	return c.hasMine
}

// State returns the current visible state.
func (c *Cell) State() CellState {
	return c.state
}

// AdjacentMines returns the number of mined neighbors. Only meaningful for
// cells without a mine.
func (c *Cell) AdjacentMines() int {
	return c.adjacentMines
}

// IsRevealed is shorthand for State() == Revealed.
func (c *Cell) IsRevealed() bool {
	return c.state == Revealed
}

// IsFlagged is shorthand for State() == Flagged.
func (c *Cell) IsFlagged() bool {
	return c.state == Flagged
}

// ToggleFlag cycles Hidden->Flagged->Hidden, and Questioned->Flagged.
// It returns false, leaving the cell untouched, when the cell is revealed.
func (c *Cell) ToggleFlag() bool {
	switch c.state {
	case Hidden, Questioned:
		c.state = Flagged
	case Flagged:
		c.state = Hidden
	default:
		return false
	}
	return true
}

// ToggleQuestion cycles Hidden->Questioned->Hidden, and Flagged->Questioned.
// It returns false, leaving the cell untouched, when the cell is revealed.
func (c *Cell) ToggleQuestion() bool {
	switch c.state {
	case Hidden, Flagged:
		c.state = Questioned
	case Questioned:
		c.state = Hidden
	default:
		return false
	}
	return true
}

// Reveal opens a hidden or questioned cell and reports whether anything
// changed. Flagged and already revealed cells are left as they are.
func (c *Cell) Reveal() bool {
	if c.state != Hidden && c.state != Questioned {
		return false
	}
	c.state = Revealed
	return true
}

// PlaceMine arms the cell. Mines are placed before any reveal happens, so
// calling it on a revealed or already mined cell is a bug in the caller.
func (c *Cell) PlaceMine() {
	if c.state == Revealed {
		panic(fmt.Sprintf("game: mine placed on revealed cell %s", c.position))
	}
	if c.hasMine {
		panic(fmt.Sprintf("game: mine placed twice on cell %s", c.position))
	}
	c.hasMine = true
}

// SetAdjacentMines stores the neighbor mine count.
func (c *Cell) SetAdjacentMines(n int) error {
	if n < 0 || n > maxAdjacentMines {
		return newError(ErrOutOfRange, fmt.Sprintf("adjacent mine count %d is outside [0,%d]", n, maxAdjacentMines))
	}
	c.adjacentMines = n
	return nil
}

// expose reveals the cell regardless of flags. Used only when a lost game
// uncovers its mines.
func (c *Cell) expose() {
	c.state = Revealed
}

// Glyph is the one character rendering of the cell as the player sees it.
func (c *Cell) Glyph() string {
	switch c.state {
	case Flagged:
		return "F"
	case Questioned:
		return "?"
	case Revealed:
		if c.hasMine {
			return "*"
		}
		if c.adjacentMines == 0 {
			return "."
		}
		return strconv.Itoa(c.adjacentMines)
	default:
		return "#"
	}
}
