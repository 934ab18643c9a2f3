package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRestore(t *testing.T) {
	t.Run("round trip keeps behavior", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
		g := newTestGame(t, Intermediate, clock)
		_, err := g.ToggleFlag(Position{Row: 15, Col: 15})
		require.NoError(t, err)
		_, err = g.RevealCell(Position{Row: 0, Col: 0})
		require.NoError(t, err)
		clock.Advance(20 * time.Second)
		if g.Status() == InProgress {
			require.NoError(t, g.Pause())
		}

		restored, err := Restore(g.State(), WithClock(clock.Now))
		require.NoError(t, err)

		assert.Equal(t, g.State(), restored.State())
		assert.Equal(t, g.String(), restored.String())
		assert.Equal(t, g.Elapsed(), restored.Elapsed())
		assert.Equal(t, g.RemainingMines(), restored.RemainingMines())
		assert.Equal(t, g.ID(), restored.ID())
		assert.Equal(t, g.PlayerID(), restored.PlayerID())
		assert.Empty(t, restored.Events())
	})

	t.Run("not started game", func(t *testing.T) {
		clock := &fakeClock{now: time.Now()}
		g := newTestGame(t, Beginner, clock)

		restored, err := Restore(g.State(), WithRand(seededRand(2)), WithClock(clock.Now))
		require.NoError(t, err)
		assert.Equal(t, NotStarted, restored.Status())
		assert.True(t, restored.IsFirstMove())

		_, err = restored.RevealCell(Position{Row: 4, Col: 4})
		require.NoError(t, err)
		assert.True(t, restored.board.IsInitialized())
	})

	t.Run("rejects corrupt state", func(t *testing.T) {
		clock := &fakeClock{now: time.Now()}
		g := startedGame(t, clock, 3, 3, Position{Row: 0, Col: 0})
		_, err := g.RevealCell(Position{Row: 2, Col: 2})
		require.NoError(t, err)
		valid := g.State()

		tests := []struct {
			name   string
			mutate func(s *State)
		}{
			{name: "unknown status", mutate: func(s *State) { s.Status = "sleeping" }},
			{name: "bad difficulty", mutate: func(s *State) { s.Difficulty.Rows = 0 }},
			{name: "missing cells", mutate: func(s *State) { s.Cells = s.Cells[:4] }},
			{name: "unknown cell state", mutate: func(s *State) { s.Cells[1].State = "exploded" }},
			{name: "extra mine", mutate: func(s *State) { s.Cells[8].HasMine = true }},
			{name: "wrong adjacency", mutate: func(s *State) { s.Cells[4].AdjacentMines = 3 }},
			{name: "adjacency out of range", mutate: func(s *State) { s.Cells[4].AdjacentMines = 9 }},
			{name: "won without completion", mutate: func(s *State) { s.Status = Won.String(); s.CompletedAt = nil }},
			{name: "started without first move", mutate: func(s *State) { s.IsFirstMove = true }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := valid
				s.Cells = append([]CellRecord(nil), valid.Cells...)
				tt.mutate(&s)

				_, err := Restore(s)
				assert.ErrorIs(t, err, ErrCorruptState)
			})
		}
	})
}
