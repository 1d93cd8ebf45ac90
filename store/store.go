// Package store persists unit cells in SQLite (modernc.org/sqlite, no cgo).
// Each row holds one cell as a msgpack blob produced by persist.MarshalBinary.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/tightbind/lattice"
	"github.com/katalvlaran/tightbind/persist"
)

// ErrNotFound indicates no stored cell matches.
var ErrNotFound = errors.New("store: cell not found")

const schema = `
CREATE TABLE IF NOT EXISTS cells (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	data       BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS cells_name ON cells(name);`

// Entry is one row of List.
type Entry struct {
	ID        lattice.ID
	Name      string
	UpdatedAt time.Time
}

// Store is a SQLite-backed cell repository.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dsn. ":memory:" gives a
// private in-memory store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	// one connection: SQLite serializes writers anyway, and :memory: is per connection
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("Open: schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Put inserts or replaces a cell.
func (s *Store) Put(ctx context.Context, c *lattice.UnitCell) error {
	blob, err := persist.MarshalBinary(c)
	if err != nil {
		return fmt.Errorf("Put: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO cells (id, name, updated_at, data) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at, data = excluded.data`,
		c.ID().String(), c.Name(), time.Now().UnixNano(), blob)
	if err != nil {
		return fmt.Errorf("Put: %w", err)
	}

	return nil
}

// Get loads the cell with the given id.
func (s *Store) Get(ctx context.Context, id lattice.ID) (*lattice.UnitCell, error) {
	return s.load(ctx, "Get", `SELECT data FROM cells WHERE id = ?`, id.String())
}

// Find loads the cell whose id or name equals key; the most recently updated
// wins when names collide.
func (s *Store) Find(ctx context.Context, key string) (*lattice.UnitCell, error) {
	return s.load(ctx, "Find",
		`SELECT data FROM cells WHERE id = ? OR name = ? ORDER BY updated_at DESC LIMIT 1`, key, key)
}

func (s *Store) load(ctx context.Context, op, query string, args ...any) (*lattice.UnitCell, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %v: %w", op, args[0], ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c, err := persist.UnmarshalBinary(blob)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// List returns all stored cells ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, updated_at FROM cells ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			idText string
			e      Entry
			nanos  int64
		)
		if err := rows.Scan(&idText, &e.Name, &nanos); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		if e.ID, err = lattice.ParseID(idText); err != nil {
			return nil, fmt.Errorf("List: row %q: %w", idText, err)
		}
		e.UpdatedAt = time.Unix(0, nanos)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	return out, nil
}

// Delete removes a cell. Errors: ErrNotFound.
func (s *Store) Delete(ctx context.Context, id lattice.ID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cells WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: %s: %w", id, ErrNotFound)
	}

	return nil
}
