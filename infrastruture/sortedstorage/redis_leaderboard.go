package sortedstorage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLeaderboard keeps the fastest win per player in a sorted set per
// difficulty. Scores are elapsed milliseconds, so the lowest score ranks first.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	size   int64
}

// NewRedisLeaderboard initializes a leaderboard that keeps at most size
// entries per difficulty.
func NewRedisLeaderboard(client *redis.Client, size int64) *RedisLeaderboard {
	pool := goredis.NewPool(client)
	return &RedisLeaderboard{
		client: client,
		locker: redsync.New(pool),
		size:   size,
	}
}

var _ i.Leaderboard = &RedisLeaderboard{}

// Key is the sorted set holding the board of a difficulty.
func Key(difficulty string) string {
	return "minesweeper:leaderboard:" + strings.ToLower(difficulty)
}

// Record adds the win, keeping the better of the new and stored times.
func (lb *RedisLeaderboard) Record(ctx context.Context, difficulty string, playerID uuid.UUID, elapsed time.Duration) error {
	key := Key(difficulty)
	mutex := lb.locker.NewMutex(key + ":lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	// Released with a fresh context so a cancelled request still unlocks.
	defer func() {
		_, _ = mutex.UnlockContext(context.Background())
	}()

	// LT only updates an existing member when the new score is lower.
	err := lb.client.ZAddLT(ctx, key, redis.Z{
		Score:  float64(elapsed.Milliseconds()),
		Member: playerID.String(),
	}).Err()
	if err != nil {
		return err
	}

	if lb.size > 0 {
		return lb.client.ZRemRangeByRank(ctx, key, lb.size, -1).Err()
	}
	return nil
}

// Top returns the n fastest entries.
func (lb *RedisLeaderboard) Top(ctx context.Context, difficulty string, n int64) ([]i.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	zs, err := lb.client.ZRangeWithScores(ctx, Key(difficulty), 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]i.LeaderboardEntry, 0, len(zs))
	for rank, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected leaderboard member %v", z.Member)
		}
		playerID, err := uuid.Parse(member)
		if err != nil {
			return nil, fmt.Errorf("parsing leaderboard member %q: %w", member, err)
		}
		entries = append(entries, i.LeaderboardEntry{
			Rank:     int64(rank) + 1,
			PlayerID: playerID,
			Elapsed:  time.Duration(z.Score) * time.Millisecond,
		})
	}
	return entries, nil
}
