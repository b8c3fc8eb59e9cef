package model

import "time"

// Post is a blog post owned by a single user.
//
// Content carries a UNIQUE constraint in the schema, so inserting the
// same content twice fails at the database, not in application code.
// CreatedAt is set once at insert and never updated.
type Post struct {
	ID        int64     `json:"id"         db:"id"`
	Title     string    `json:"title"      db:"title"`
	Content   string    `json:"content"    db:"content"`
	UserID    int64     `json:"user_id"    db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
