package i

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is one ranked win.
type LeaderboardEntry struct {
	Rank     int64
	PlayerID uuid.UUID
	Elapsed  time.Duration
}

// Leaderboard keeps the fastest win per player for each difficulty.
type Leaderboard interface {
	// Record stores elapsed for the player unless a faster win is already kept.
	Record(ctx context.Context, difficulty string, playerID uuid.UUID, elapsed time.Duration) error

	// Top returns up to n entries, fastest first.
	Top(ctx context.Context, difficulty string, n int64) ([]LeaderboardEntry, error)
}
