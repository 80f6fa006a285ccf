package storage

import (
	"context"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
)

// Storage defines the interface for player persistence
type Storage interface {
	// FindAll returns every player matching pred, in no particular order
	FindAll(ctx context.Context, pred filter.Predicate) ([]*model.Player, error)

	// FindPage returns one sorted page of the players matching pred
	FindPage(ctx context.Context, pred filter.Predicate, req model.PageRequest) (*model.Page, error)

	// FindByID returns model.ErrPlayerNotFound when no player has id
	FindByID(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Save inserts the player when its ID is zero (assigning one) and
	// overwrites the stored record otherwise
	Save(ctx context.Context, player *model.Player) (*model.Player, error)

	// DeleteByID removes the player; callers check existence first
	DeleteByID(ctx context.Context, id model.PlayerID) error

	Close() error
}
