// Package sqlite provides a SQLite-backed player storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
	"github.com/mcoot/playerroster/internal/storage"
	"github.com/mcoot/playerroster/internal/storage/sqlite/migrations"
)

const selectColumns = `SELECT id, name, title, race, profession, birthday,
       experience, level, until_next_level, banned
  FROM players`

// Storage persists players in a single SQLite table
type Storage struct {
	db *sql.DB
}

// Open opens a SQLite database at path and applies embedded migrations
func Open(ctx context.Context, path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the SQLite handle
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) FindAll(ctx context.Context, pred filter.Predicate) ([]*model.Player, error) {
	cond, err := Condition(pred)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, selectColumns+cond.where()+" ORDER BY id ASC", cond.Params...)
}

func (s *Storage) FindPage(ctx context.Context, pred filter.Predicate, req model.PageRequest) (*model.Page, error) {
	req = req.Normalize()
	cond, err := Condition(pred)
	if err != nil {
		return nil, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players"+cond.where(), cond.Params...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count players: %w", err)
	}

	query := selectColumns + cond.where() + orderBy(req.Sort) + " LIMIT ? OFFSET ?"
	params := append(append([]any{}, cond.Params...), req.Size, req.Offset())
	players, err := s.query(ctx, query, params...)
	if err != nil {
		return nil, err
	}

	return &model.Page{
		Players: players,
		Total:   total,
		Number:  req.Number,
		Size:    req.Size,
	}, nil
}

func (s *Storage) FindByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", int64(id))
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return player, nil
}

func (s *Storage) Save(ctx context.Context, player *model.Player) (*model.Player, error) {
	stored := player.Clone()
	args := []any{
		stored.Name,
		stored.Title,
		string(stored.Race),
		string(stored.Profession),
		model.Millis(stored.Birthday),
		stored.Experience,
		stored.Level,
		stored.UntilNextLevel,
		stored.Banned,
	}

	if stored.ID == 0 {
		res, err := s.db.ExecContext(ctx, `INSERT INTO players (
		   name, title, race, profession, birthday,
		   experience, level, until_next_level, banned
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
		if err != nil {
			return nil, fmt.Errorf("insert player: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("insert player: %w", err)
		}
		stored.ID = model.PlayerID(id)
		return stored, nil
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO players (
	   id, name, title, race, profession, birthday,
	   experience, level, until_next_level, banned
	 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	 ON CONFLICT(id) DO UPDATE SET
	   name = excluded.name,
	   title = excluded.title,
	   race = excluded.race,
	   profession = excluded.profession,
	   birthday = excluded.birthday,
	   experience = excluded.experience,
	   level = excluded.level,
	   until_next_level = excluded.until_next_level,
	   banned = excluded.banned`,
		append([]any{int64(stored.ID)}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("save player %d: %w", stored.ID, err)
	}
	return stored, nil
}

func (s *Storage) DeleteByID(ctx context.Context, id model.PlayerID) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", int64(id)); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	return nil
}

func (s *Storage) query(ctx context.Context, query string, args ...any) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	players := []*model.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (*model.Player, error) {
	var (
		p          model.Player
		id         int64
		race, prof string
		birthday   int64
	)
	if err := row.Scan(
		&id, &p.Name, &p.Title, &race, &prof, &birthday,
		&p.Experience, &p.Level, &p.UntilNextLevel, &p.Banned,
	); err != nil {
		return nil, err
	}
	p.ID = model.PlayerID(id)
	p.Race = model.Race(race)
	p.Profession = model.Profession(prof)
	p.Birthday = model.FromMillis(birthday)
	return &p, nil
}
