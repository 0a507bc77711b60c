package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound indicates that the entity hasn't been found in the database.
var ErrNotFound = errors.New("not found")

// Store provides methods to store/load data.
type Store struct {
	db *sqlx.DB
}

// New prepares the database.
func New(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE COLLATE NOCASE,
			position TEXT NOT NULL,
			overall INTEGER NOT NULL DEFAULT 0,
			pace INTEGER NOT NULL DEFAULT 0,
			shooting INTEGER NOT NULL DEFAULT 0,
			passing INTEGER NOT NULL DEFAULT 0,
			dribbling INTEGER NOT NULL DEFAULT 0,
			defending INTEGER NOT NULL DEFAULT 0,
			physical INTEGER NOT NULL DEFAULT 0,
			club TEXT,
			nationality TEXT,
			age INTEGER,
			photo TEXT
		);
	`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Update updates a bunch of players in the storage, matched by id.
func (s *Store) Update(ctx context.Context, players ...Player) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `UPDATE players SET
						name = :name,
						position = :position,
						overall = :overall,
						pace = :pace,
						shooting = :shooting,
						passing = :passing,
						dribbling = :dribbling,
						defending = :defending,
						physical = :physical,
						club = :club,
						nationality = :nationality,
						age = :age,
						photo = :photo
					WHERE id = :id`

	for _, pl := range players {
		res, err := tx.NamedExecContext(ctx, query, pl)
		if err != nil {
			return fmt.Errorf("update player %s: %w", pl.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("update player %s: %w", pl.Name, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Create inserts a new player into the storage.
func (s *Store) Create(ctx context.Context, pl Player) error {
	const query = `INSERT INTO players (
			id, name, position, overall,
			pace, shooting, passing, dribbling, defending, physical,
			club, nationality, age, photo
		) VALUES (
			:id, :name, :position, :overall,
			:pace, :shooting, :passing, :dribbling, :defending, :physical,
			:club, :nationality, :age, :photo
		)`

	if _, err := s.db.NamedExecContext(ctx, query, pl); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

// List returns players with the given ids, all players if no ids given.
func (s *Store) List(ctx context.Context, ids []string) ([]Player, error) {
	return s.selectIn(ctx, "id", ids)
}

// ListByNames returns players with the given names, case-insensitive.
func (s *Store) ListByNames(ctx context.Context, names []string) ([]Player, error) {
	return s.selectIn(ctx, "name", names)
}

func (s *Store) selectIn(ctx context.Context, column string, values []string) ([]Player, error) {
	var players []Player

	query, args := `SELECT * FROM players ORDER BY name`, []any{}
	if len(values) > 0 {
		var err error
		query, args, err = sqlx.In(fmt.Sprintf(`SELECT * FROM players WHERE %s IN (?) ORDER BY name`, column), values)
		if err != nil {
			return nil, fmt.Errorf("build query: %w", err)
		}
		query = s.db.Rebind(query)
	}

	if err := s.db.SelectContext(ctx, &players, query, args...); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return players, nil
}

// Get returns a player by the given name.
func (s *Store) Get(ctx context.Context, name string) (Player, error) {
	var pl Player
	if err := s.db.GetContext(ctx, &pl, `SELECT * FROM players WHERE name = ?`, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Player{}, ErrNotFound
		}
		return Player{}, fmt.Errorf("get player: %w", err)
	}
	return pl, nil
}

// Delete removes a player by the given name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
