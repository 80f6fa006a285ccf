package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
	"github.com/mcoot/playerroster/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Each player is a JSON string; a sorted set scored by ID indexes them.
// Redis has no query language for these predicates, so reads load the
// indexed players and filter them with filter.Match.
type Storage struct {
	client *redis.Client
	cfg    Config
	keys   keyspace
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   keyspace{prefix: prefix},
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) FindAll(ctx context.Context, pred filter.Predicate) ([]*model.Player, error) {
	return s.loadMatching(ctx, pred)
}

func (s *Storage) FindPage(ctx context.Context, pred filter.Predicate, req model.PageRequest) (*model.Page, error) {
	matches, err := s.loadMatching(ctx, pred)
	if err != nil {
		return nil, err
	}
	return storage.Paginate(matches, req), nil
}

func (s *Storage) FindByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, s.keys.player(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return decodePlayer(data)
}

func (s *Storage) Save(ctx context.Context, player *model.Player) (*model.Player, error) {
	stored := player.Clone()
	if stored.ID == 0 {
		next, err := s.client.Incr(ctx, s.keys.sequence()).Result()
		if err != nil {
			return nil, fmt.Errorf("allocate player id: %w", err)
		}
		stored.ID = model.PlayerID(next)
	}

	data, err := encodePlayer(stored)
	if err != nil {
		return nil, err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.keys.player(stored.ID), data, 0)
	pipe.ZAdd(ctx, s.keys.index(), redis.Z{Score: float64(stored.ID), Member: int64(stored.ID)})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Storage) DeleteByID(ctx context.Context, id model.PlayerID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.keys.player(id))
	pipe.ZRem(ctx, s.keys.index(), int64(id))
	_, err := pipe.Exec(ctx)
	return err
}

// loadMatching reads every indexed player and keeps those matching pred
func (s *Storage) loadMatching(ctx context.Context, pred filter.Predicate) ([]*model.Player, error) {
	members, err := s.client.ZRange(ctx, s.keys.index(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	result := []*model.Player{}
	if len(members) == 0 {
		return result, nil
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt player index entry %q: %w", m, err)
		}
		keys = append(keys, s.keys.player(model.PlayerID(id)))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		if v == nil {
			continue // Deleted between ZRANGE and MGET
		}
		str, ok := v.(string)
		if !ok {
			continue
		}
		player, err := decodePlayer([]byte(str))
		if err != nil {
			return nil, err
		}
		if filter.Match(pred, player) {
			result = append(result, player)
		}
	}
	return result, nil
}
