package game

import (
	"fmt"
	"strings"
)

// Difficulty is the board configuration of a game.
type Difficulty struct {
	Name  string `json:"name" bson:"name"`   // Display name, also the leaderboard key for presets
	Rows  int    `json:"rows" bson:"rows"`   // Number of rows
	Cols  int    `json:"cols" bson:"cols"`   // Number of columns
	Mines int    `json:"mines" bson:"mines"` // Number of mines placed on the first reveal
}

// Preset difficulties.
var (
	Beginner     = Difficulty{Name: "Beginner", Rows: 9, Cols: 9, Mines: 10}
	Intermediate = Difficulty{Name: "Intermediate", Rows: 16, Cols: 16, Mines: 40}
	Expert       = Difficulty{Name: "Expert", Rows: 16, Cols: 30, Mines: 99}

	presets = []Difficulty{Beginner, Intermediate, Expert}
)

// NewCustomDifficulty validates a custom configuration. Dimensions are checked
// before the mine count.
func NewCustomDifficulty(name string, rows, cols, mines int) (Difficulty, error) {
	d := Difficulty{Name: name, Rows: rows, Cols: cols, Mines: mines}
	if err := d.Validate(); err != nil {
		return Difficulty{}, err
	}
	return d, nil
}

// DifficultyByName resolves a preset, ignoring case.
func DifficultyByName(name string) (Difficulty, bool) {
	for _, d := range presets {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Difficulty{}, false
}

// MaxDimension bounds rows and columns so that a board always fits in memory.
const MaxDimension = 1000

// Validate checks the configuration invariants.
func (d Difficulty) Validate() error {
	if d.Rows < 1 || d.Cols < 1 {
		return newError(ErrInvalidConfiguration, fmt.Sprintf("dimensions must be positive, got %dx%d", d.Rows, d.Cols))
	}
	if d.Rows > MaxDimension || d.Cols > MaxDimension {
		return newError(ErrInvalidConfiguration, fmt.Sprintf("dimensions must be at most %d, got %dx%d", MaxDimension, d.Rows, d.Cols))
	}
	if d.Mines < 0 {
		return newError(ErrInvalidConfiguration, "mine count cannot be negative")
	}
	if d.Mines >= d.Rows*d.Cols {
		return newError(ErrInvalidConfiguration, fmt.Sprintf("too many mines: %d mines need more than %d cells", d.Mines, d.Rows*d.Cols))
	}
	return nil
}

// CellCount returns rows * cols.
func (d Difficulty) CellCount() int {
	return d.Rows * d.Cols
}

// SafeCellCount returns the number of cells without a mine.
func (d Difficulty) SafeCellCount() int {
	return d.CellCount() - d.Mines
}

// IsPreset reports whether d equals one of the preset difficulties.
func (d Difficulty) IsPreset() bool {
	for _, p := range presets {
		if p == d {
			return true
		}
	}
	return false
}
