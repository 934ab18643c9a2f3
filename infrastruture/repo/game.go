package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/minesweeper-api/game"
	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GameRepo stores each game as one document holding its full engine state.
type GameRepo struct {
	collection *mongo.Collection
}

// NewGameRepo creates a GameRepo on the given database and collection.
func NewGameRepo(client *mongo.Client, dbName, collectionName string) *GameRepo {
	return &GameRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

var _ i.GameRepo = &GameRepo{}

// EnsureIndexes creates the index used to list a player's games.
func (r *GameRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

// Save replaces the stored game, inserting it when new.
func (r *GameRepo) Save(ctx context.Context, g *game.Game) error {
	state := g.State()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": state.ID}, state, opts); err != nil {
		return fmt.Errorf("saving game %s: %w", state.ID, err)
	}
	return nil
}

// ByID loads and restores a game.
func (r *GameRepo) ByID(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	var state game.State
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&state); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrGameNotFound
		}
		return nil, fmt.Errorf("loading game %s: %w", id, err)
	}
	return game.Restore(state)
}

// ByPlayer lists the player's games, newest first.
func (r *GameRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*game.Game, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing games of %s: %w", playerID, err)
	}
	defer cursor.Close(ctx)

	var states []game.State
	if err := cursor.All(ctx, &states); err != nil {
		return nil, fmt.Errorf("decoding games of %s: %w", playerID, err)
	}

	games := make([]*game.Game, 0, len(states))
	for _, s := range states {
		g, err := game.Restore(s)
		if err != nil {
			return nil, fmt.Errorf("restoring game %s: %w", s.ID, err)
		}
		games = append(games, g)
	}
	return games, nil
}
