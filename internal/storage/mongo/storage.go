// Package mongo provides a MongoDB-backed player storage implementation.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
	"github.com/mcoot/playerroster/internal/storage"
)

const (
	playersCollection  = "players"
	countersCollection = "counters"
	playerSequence     = "players"
)

// Config holds MongoDB connection settings
type Config struct {
	URI      string
	Database string
}

// DefaultConfig returns settings for a local MongoDB
func DefaultConfig() Config {
	return Config{
		URI:      "mongodb://localhost:27017",
		Database: "roster",
	}
}

// Storage keeps players in one collection keyed by a numeric _id drawn
// from a counters collection.
type Storage struct {
	client   *mongo.Client
	players  *mongo.Collection
	counters *mongo.Collection
}

// New connects to MongoDB and verifies the connection
func New(ctx context.Context, cfg Config) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return NewWithClient(client, cfg.Database), nil
}

// NewWithClient creates a store on an existing client
func NewWithClient(client *mongo.Client, database string) *Storage {
	db := client.Database(database)
	return &Storage{
		client:   client,
		players:  db.Collection(playersCollection),
		counters: db.Collection(countersCollection),
	}
}

// Close disconnects the client
func (s *Storage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) FindAll(ctx context.Context, pred filter.Predicate) ([]*model.Player, error) {
	query, err := Filter(pred)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.find(ctx, query, opts)
}

func (s *Storage) FindPage(ctx context.Context, pred filter.Predicate, req model.PageRequest) (*model.Page, error) {
	req = req.Normalize()
	query, err := Filter(pred)
	if err != nil {
		return nil, err
	}

	total, err := s.players.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count players: %w", err)
	}

	opts := options.Find().
		SetSort(sortDoc(req.Sort)).
		SetSkip(int64(req.Offset())).
		SetLimit(int64(req.Size))
	players, err := s.find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	return &model.Page{
		Players: players,
		Total:   int(total),
		Number:  req.Number,
		Size:    req.Size,
	}, nil
}

func (s *Storage) FindByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var doc document
	err := s.players.FindOne(ctx, bson.D{{Key: "_id", Value: int64(id)}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return doc.player(), nil
}

func (s *Storage) Save(ctx context.Context, player *model.Player) (*model.Player, error) {
	stored := player.Clone()
	if stored.ID == 0 {
		id, err := s.nextID(ctx)
		if err != nil {
			return nil, err
		}
		stored.ID = id
	}

	doc := toDocument(stored)
	_, err := s.players.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.ID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("save player %d: %w", stored.ID, err)
	}
	return doc.player(), nil
}

func (s *Storage) DeleteByID(ctx context.Context, id model.PlayerID) error {
	if _, err := s.players.DeleteOne(ctx, bson.D{{Key: "_id", Value: int64(id)}}); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	return nil
}

// nextID atomically increments the player sequence
func (s *Storage) nextID(ctx context.Context) (model.PlayerID, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: playerSequence}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate player id: %w", err)
	}
	return model.PlayerID(counter.Seq), nil
}

func (s *Storage) find(ctx context.Context, query bson.D, opts *options.FindOptions) ([]*model.Player, error) {
	cursor, err := s.players.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find players: %w", err)
	}
	defer cursor.Close(ctx)

	players := []*model.Player{}
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode player: %w", err)
		}
		players = append(players, doc.player())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}
