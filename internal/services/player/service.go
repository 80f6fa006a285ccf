package player

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/metrics"
	"github.com/mcoot/playerroster/internal/model"
	"github.com/mcoot/playerroster/internal/storage"
)

// Validation limits applied on create
const (
	MaxNameLength  = 12
	MaxTitleLength = 30
	MaxExperience  = 10_000_000
	MinBirthYear   = 2000
	MaxBirthYear   = 3000
)

// Service reads and writes players through a storage backend
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new player Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// List returns every player matching criteria, in no guaranteed order
func (s *Service) List(ctx context.Context, criteria filter.Criteria) ([]*model.Player, error) {
	return s.ListMatching(ctx, criteria.Predicate())
}

// ListMatching returns every player matching pred
func (s *Service) ListMatching(ctx context.Context, pred filter.Predicate) ([]*model.Player, error) {
	players, err := s.storage.FindAll(ctx, pred)
	metrics.ObservePlayerOperation("list", err)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// ListPage returns one page of players matching criteria
func (s *Service) ListPage(ctx context.Context, criteria filter.Criteria, req model.PageRequest) (*model.Page, error) {
	return s.ListPageMatching(ctx, criteria.Predicate(), req)
}

// ListPageMatching returns one page of players matching pred.
// The sort in req is passed through to storage as-is.
func (s *Service) ListPageMatching(ctx context.Context, pred filter.Predicate, req model.PageRequest) (*model.Page, error) {
	page, err := s.storage.FindPage(ctx, pred, req.Normalize())
	metrics.ObservePlayerOperation("list_page", err)
	if err != nil {
		return nil, fmt.Errorf("list player page: %w", err)
	}
	return page, nil
}

// Count returns how many players match criteria
func (s *Service) Count(ctx context.Context, criteria filter.Criteria) (int, error) {
	return s.CountMatching(ctx, criteria.Predicate())
}

// CountMatching returns how many players match pred. It reads the total
// from a one-record page so backends can count without loading every match.
func (s *Service) CountMatching(ctx context.Context, pred filter.Predicate) (int, error) {
	page, err := s.storage.FindPage(ctx, pred, model.PageRequest{Size: 1}.Normalize())
	metrics.ObservePlayerOperation("count", err)
	if err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return page.Total, nil
}

// Get returns the player with id, or model.ErrPlayerNotFound
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	p, err := s.storage.FindByID(ctx, id)
	metrics.ObservePlayerOperation("get", err)
	if err != nil {
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return p, nil
}

// Create validates input and stores a new player with an assigned ID
func (s *Service) Create(ctx context.Context, input model.PlayerInput) (*model.Player, error) {
	p, err := s.create(ctx, input)
	metrics.ObservePlayerOperation("create", err)
	return p, err
}

func (s *Service) create(ctx context.Context, input model.PlayerInput) (*model.Player, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	p := &model.Player{
		Name:       *input.Name,
		Title:      *input.Title,
		Race:       *input.Race,
		Profession: *input.Profession,
		Birthday:   input.Birthday.UTC(),
		Experience: *input.Experience,
	}
	if input.Banned != nil {
		p.Banned = *input.Banned
	}
	p.ApplyProgression()

	saved, err := s.storage.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("save player: %w", err)
	}

	s.logger.Info("player created", "player_id", saved.ID, "name", saved.Name)
	return saved, nil
}

// Update overwrites the provided fields of an existing player and
// recomputes its level. Provided values are not validated.
func (s *Service) Update(ctx context.Context, id model.PlayerID, input model.PlayerInput) (*model.Player, error) {
	p, err := s.update(ctx, id, input)
	metrics.ObservePlayerOperation("update", err)
	return p, err
}

func (s *Service) update(ctx context.Context, id model.PlayerID, input model.PlayerInput) (*model.Player, error) {
	p, err := s.storage.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update player %d: %w", id, err)
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Race != nil {
		p.Race = *input.Race
	}
	if input.Profession != nil {
		p.Profession = *input.Profession
	}
	if input.Birthday != nil {
		p.Birthday = input.Birthday.UTC()
	}
	if input.Experience != nil {
		p.Experience = *input.Experience
	}
	if input.Banned != nil {
		p.Banned = *input.Banned
	}
	p.ApplyProgression()

	saved, err := s.storage.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update player %d: %w", id, err)
	}

	s.logger.Info("player updated", "player_id", saved.ID)
	return saved, nil
}

// Delete removes the player with id, or returns model.ErrPlayerNotFound
func (s *Service) Delete(ctx context.Context, id model.PlayerID) error {
	err := s.delete(ctx, id)
	metrics.ObservePlayerOperation("delete", err)
	return err
}

func (s *Service) delete(ctx context.Context, id model.PlayerID) error {
	if _, err := s.storage.FindByID(ctx, id); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	if err := s.storage.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}

	s.logger.Info("player deleted", "player_id", id)
	return nil
}

// validate checks presence first, then ranges
func validate(input model.PlayerInput) error {
	switch {
	case input.Name == nil:
		return &model.ValidationError{Field: "name", Reason: "is required"}
	case input.Title == nil:
		return &model.ValidationError{Field: "title", Reason: "is required"}
	case input.Race == nil:
		return &model.ValidationError{Field: "race", Reason: "is required"}
	case input.Profession == nil:
		return &model.ValidationError{Field: "profession", Reason: "is required"}
	case input.Birthday == nil:
		return &model.ValidationError{Field: "birthday", Reason: "is required"}
	case input.Experience == nil:
		return &model.ValidationError{Field: "experience", Reason: "is required"}
	}

	if n := utf8.RuneCountInString(*input.Name); n < 1 || n > MaxNameLength {
		return &model.ValidationError{Field: "name", Reason: fmt.Sprintf("must be 1 to %d characters", MaxNameLength)}
	}
	if utf8.RuneCountInString(*input.Title) > MaxTitleLength {
		return &model.ValidationError{Field: "title", Reason: fmt.Sprintf("must be at most %d characters", MaxTitleLength)}
	}
	if exp := *input.Experience; exp < 0 || exp > MaxExperience {
		return &model.ValidationError{Field: "experience", Reason: fmt.Sprintf("must be between 0 and %d", MaxExperience)}
	}

	birthday := input.Birthday.UTC()
	if birthday.Before(time.Unix(0, 0)) {
		return &model.ValidationError{Field: "birthday", Reason: "must not be before the epoch"}
	}
	if y := birthday.Year(); y < MinBirthYear || y > MaxBirthYear {
		return &model.ValidationError{Field: "birthday", Reason: fmt.Sprintf("year must be between %d and %d", MinBirthYear, MaxBirthYear)}
	}
	return nil
}
