// Package gameapi exposes minesweeper games over HTTP.
package gameapi

import (
	"time"

	"github.com/beka-birhanu/minesweeper-api/game"
	"github.com/beka-birhanu/minesweeper-api/service/i"
)

// CreateGameRequest selects a preset by name, or a custom board when
// Difficulty is "custom" or empty.
type CreateGameRequest struct {
	Difficulty string `json:"difficulty"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	Mines      int    `json:"mines"`
}

// MoveRequest addresses one cell. Pointers let row and column 0 pass the
// required check.
type MoveRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

// GameResponse is the full view of a game.
type GameResponse struct {
	GameSummaryResponse
	Board [][]game.CellView `json:"board"`
}

// RevealResponse is the game after a reveal with the cells it opened. An
// empty list means the reveal changed nothing.
type RevealResponse struct {
	GameResponse
	Revealed []game.Position `json:"revealed"`
}

// GameSummaryResponse describes a game without its board.
type GameSummaryResponse struct {
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	Difficulty     game.Difficulty `json:"difficulty"`
	RemainingMines int             `json:"remaining_mines"`
	ElapsedSeconds float64         `json:"elapsed_seconds"`
	Progress       float64         `json:"progress"`
	CreatedAt      time.Time       `json:"created_at"`
	StartedAt      *time.Time      `json:"started_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// LeaderboardEntryResponse is one ranked win.
type LeaderboardEntryResponse struct {
	Rank           int64   `json:"rank"`
	PlayerID       string  `json:"player_id"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

func newGameSummary(g *game.Game) GameSummaryResponse {
	res := GameSummaryResponse{
		ID:             g.ID().String(),
		Status:         g.Status().String(),
		Difficulty:     g.Difficulty(),
		RemainingMines: g.RemainingMines(),
		ElapsedSeconds: g.Elapsed().Seconds(),
		Progress:       g.Progress(),
		CreatedAt:      g.CreatedAt(),
	}
	if !g.IsFirstMove() {
		started := g.StartedAt()
		res.StartedAt = &started
	}
	if completed, ok := g.CompletedAt(); ok {
		res.CompletedAt = &completed
	}
	return res
}

func newGameResponse(g *game.Game) *GameResponse {
	return &GameResponse{
		GameSummaryResponse: newGameSummary(g),
		Board:               g.Board(),
	}
}

func newRevealResponse(g *game.Game, revealed []game.Position) *RevealResponse {
	return &RevealResponse{
		GameResponse: *newGameResponse(g),
		Revealed:     revealed,
	}
}

func newLeaderboardResponse(entries []i.LeaderboardEntry) []LeaderboardEntryResponse {
	res := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, LeaderboardEntryResponse{
			Rank:           e.Rank,
			PlayerID:       e.PlayerID.String(),
			ElapsedSeconds: e.Elapsed.Seconds(),
		})
	}
	return res
}
