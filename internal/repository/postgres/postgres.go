// Package postgres implements the repository interfaces on PostgreSQL.
//
// It is the drop-in alternative to the sqlite package, selected at
// startup when DATABASE_URL is set. Queries are the same shape with $n
// placeholders and RETURNING id instead of LastInsertId; behavior is
// identical from the service layer's point of view.
//
// The user table is quoted throughout because "user" is a reserved word
// in PostgreSQL.
package postgres

import (
	"database/sql"
	"fmt"

	// Registers the "postgres" driver with database/sql.
	_ "github.com/lib/pq"
)

// DB wraps a sql.DB connection pool and hands out the per-entity
// repository views.
type DB struct {
	conn *sql.DB
}

// New connects to PostgreSQL with the given DSN and creates the schema.
func New(dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: creating schema: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// createSchema issues the idempotent table creation statements. Failure
// is fatal to startup, same contract as the sqlite backend.
func (db *DB) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS "user" (
			id       BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email    TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role     TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin'))
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id         BIGSERIAL PRIMARY KEY,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL UNIQUE,
			user_id    BIGINT NOT NULL REFERENCES "user"(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id         BIGSERIAL PRIMARY KEY,
			content    TEXT NOT NULL,
			user_id    BIGINT NOT NULL REFERENCES "user"(id),
			post_id    BIGINT NOT NULL REFERENCES posts(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("running %q: %w", stmt[:30], err)
		}
	}
	return nil
}
