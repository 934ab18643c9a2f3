package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	t.Run("rejects negative coordinates", func(t *testing.T) {
		_, err := NewPosition(-1, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = NewPosition(0, -3)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("adjacent positions are the Moore neighborhood", func(t *testing.T) {
		p, err := NewPosition(0, 0)
		require.NoError(t, err)

		adjacent := p.Adjacent()
		assert.Len(t, adjacent, 8)
		assert.NotContains(t, adjacent, p)
		assert.Contains(t, adjacent, Position{Row: -1, Col: -1})
		assert.Contains(t, adjacent, Position{Row: 1, Col: 1})

		// Iterating twice gives the same sequence.
		assert.Equal(t, adjacent, p.Adjacent())
	})

	t.Run("bounds", func(t *testing.T) {
		assert.True(t, Position{Row: 2, Col: 2}.InBounds(3, 3))
		assert.False(t, Position{Row: 3, Col: 0}.InBounds(3, 3))
		assert.False(t, Position{Row: 0, Col: -1}.InBounds(3, 3))
	})
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		mines   int
		wantErr string
	}{
		{name: "valid", rows: 5, cols: 5, mines: 3},
		{name: "no mines", rows: 1, cols: 1, mines: 0},
		{name: "zero rows", rows: 0, cols: 5, mines: 1, wantErr: "dimensions must be positive"},
		{name: "dimension check wins over mines", rows: -1, cols: 5, mines: 100, wantErr: "dimensions must be positive"},
		{name: "board full of mines", rows: 3, cols: 3, mines: 9, wantErr: "too many mines"},
		{name: "negative mines", rows: 3, cols: 3, mines: -1, wantErr: "cannot be negative"},
		{name: "cell count overflow", rows: 1<<62 + 1, cols: 4, mines: 0, wantErr: "must be at most"},
		{name: "too many rows", rows: MaxDimension + 1, cols: 1, mines: 0, wantErr: "must be at most"},
		{name: "size check wins over mines", rows: 100000, cols: 100000, mines: -1, wantErr: "must be at most"},
		{name: "largest board", rows: MaxDimension, cols: MaxDimension, mines: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewCustomDifficulty("X", tt.rows, tt.cols, tt.mines)
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.rows*tt.cols-tt.mines, d.SafeCellCount())
		})
	}

	t.Run("oversized board cannot start a game", func(t *testing.T) {
		_, err := New(uuid.New(), Difficulty{Name: "X", Rows: 1<<62 + 1, Cols: 4})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("presets", func(t *testing.T) {
		for _, p := range []Difficulty{Beginner, Intermediate, Expert} {
			assert.NoError(t, p.Validate())
			assert.True(t, p.IsPreset())
		}
		assert.Equal(t, 10, Beginner.Mines)
		assert.Equal(t, 99, Expert.Mines)

		d, ok := DifficultyByName("expert")
		assert.True(t, ok)
		assert.Equal(t, Expert, d)

		_, ok = DifficultyByName("impossible")
		assert.False(t, ok)
	})
}

func TestCellTransitions(t *testing.T) {
	t.Run("flag cycle", func(t *testing.T) {
		c := newCell(Position{})
		assert.True(t, c.ToggleFlag())
		assert.Equal(t, Flagged, c.State())
		assert.True(t, c.ToggleFlag())
		assert.Equal(t, Hidden, c.State())

		assert.True(t, c.ToggleQuestion())
		assert.True(t, c.ToggleFlag())
		assert.Equal(t, Flagged, c.State())
	})

	t.Run("question cycle", func(t *testing.T) {
		c := newCell(Position{})
		assert.True(t, c.ToggleQuestion())
		assert.Equal(t, Questioned, c.State())
		assert.True(t, c.ToggleQuestion())
		assert.Equal(t, Hidden, c.State())

		assert.True(t, c.ToggleFlag())
		assert.True(t, c.ToggleQuestion())
		assert.Equal(t, Questioned, c.State())
	})

	t.Run("revealed cell rejects marks", func(t *testing.T) {
		c := newCell(Position{})
		assert.True(t, c.Reveal())
		assert.False(t, c.ToggleFlag())
		assert.False(t, c.ToggleQuestion())
		assert.Equal(t, Revealed, c.State())
	})

	t.Run("reveal is idempotent and skips flags", func(t *testing.T) {
		c := newCell(Position{})
		c.ToggleFlag()
		assert.False(t, c.Reveal())
		assert.Equal(t, Flagged, c.State())

		c.ToggleQuestion()
		assert.True(t, c.Reveal())
		assert.False(t, c.Reveal())
		assert.Equal(t, Revealed, c.State())
	})

	t.Run("mine placement on revealed cell panics", func(t *testing.T) {
		c := newCell(Position{})
		c.Reveal()
		assert.Panics(t, c.PlaceMine)
	})

	t.Run("mine placement twice panics", func(t *testing.T) {
		c := newCell(Position{})
		c.PlaceMine()
		assert.True(t, c.HasMine())
		assert.Panics(t, c.PlaceMine)
	})

	t.Run("adjacent mine range", func(t *testing.T) {
		c := newCell(Position{})
		assert.NoError(t, c.SetAdjacentMines(8))
		assert.ErrorIs(t, c.SetAdjacentMines(9), ErrOutOfRange)
		assert.ErrorIs(t, c.SetAdjacentMines(-1), ErrOutOfRange)
		assert.Equal(t, 8, c.AdjacentMines())
	})
}

func TestCellGlyph(t *testing.T) {
	c := newCell(Position{})
	assert.Equal(t, "#", c.Glyph())
	c.ToggleFlag()
	assert.Equal(t, "F", c.Glyph())
	c.ToggleQuestion()
	assert.Equal(t, "?", c.Glyph())

	c.Reveal()
	assert.Equal(t, ".", c.Glyph())
	_ = c.SetAdjacentMines(3)
	assert.Equal(t, "3", c.Glyph())

	mine := newCell(Position{})
	mine.PlaceMine()
	mine.Reveal()
	assert.Equal(t, "*", mine.Glyph())
}
