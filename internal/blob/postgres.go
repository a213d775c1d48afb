package blob

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Postgres stores blobs in a PostgreSQL table. It uses the same single-table
// layout as the SQLite backend so the two are interchangeable.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to the database at url and ensures the schema.
func OpenPostgres(url string) (*Postgres, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return p, nil
}

func (p *Postgres) migrate() error {
	_, err := p.db.Exec(`
CREATE TABLE IF NOT EXISTS blobs (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func (p *Postgres) Get(key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow(`SELECT value FROM blobs WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return value, true, nil
}

func (p *Postgres) Set(key, value string) error {
	_, err := p.db.Exec(
		`INSERT INTO blobs (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
