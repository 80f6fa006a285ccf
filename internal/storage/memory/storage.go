package memory

import (
	"context"
	"sync"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
	"github.com/mcoot/playerroster/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	nextID  model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
		nextID:  1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) FindAll(ctx context.Context, pred filter.Predicate) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matching(pred), nil
}

func (s *Storage) FindPage(ctx context.Context, pred filter.Predicate, req model.PageRequest) (*model.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Paginate(s.matching(pred), req), nil
}

func (s *Storage) FindByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) Save(ctx context.Context, player *model.Player) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := player.Clone()
	if stored.ID == 0 {
		stored.ID = s.nextID
		s.nextID++
	} else if stored.ID >= s.nextID {
		s.nextID = stored.ID + 1
	}
	s.players[stored.ID] = stored
	return stored.Clone(), nil
}

func (s *Storage) DeleteByID(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}

// matching returns copies of the players matching pred; callers hold mu
func (s *Storage) matching(pred filter.Predicate) []*model.Player {
	result := []*model.Player{}
	for _, p := range s.players {
		if filter.Match(pred, p) {
			result = append(result, p.Clone())
		}
	}
	return result
}
