// Package sqlite implements the repository interfaces on SQLite.
//
// modernc.org/sqlite is a pure Go translation of SQLite — no C compiler
// needed, and ":memory:" gives tests a throwaway database. The schema is
// established at open time with idempotent CREATE TABLE IF NOT EXISTS
// statements; any failure there aborts startup, because the server must
// not come up without its tables.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces for users, posts, and comments.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath and creates the schema.
//
// dbPath may be a file path (persistent) or ":memory:" (tests).
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// A single shared connection serializes all access, and keeps
	// ":memory:" databases coherent — every pooled connection would
	// otherwise get its own empty in-memory database.
	conn.SetMaxOpenConns(1)

	// sql.Open doesn't touch the file; Ping surfaces a bad path or
	// permissions problem now instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — the default
	// journal mode locks the whole file per write.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite. The posts→user and
	// comments→posts references need them enforced.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: creating schema: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// createSchema issues the idempotent table creation statements.
//
// SQLite has no ENUM, so the role column is a TEXT with a CHECK
// constraint; the effect is the same two-value domain with a 'user'
// default.
func (db *DB) createSchema() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS user (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email    TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role     TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin'))
		);
	`)
	if err != nil {
		return fmt.Errorf("creating user table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS posts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL UNIQUE,
			user_id    INTEGER NOT NULL REFERENCES user(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating posts table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			content    TEXT NOT NULL,
			user_id    INTEGER NOT NULL REFERENCES user(id),
			post_id    INTEGER NOT NULL REFERENCES posts(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	return nil
}
