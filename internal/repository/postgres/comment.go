package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/repository"
)

// CommentDB implements repository.CommentRepository over the shared
// connection.
type CommentDB struct {
	conn *sql.DB
}

// Comments returns the comment repository view of the database.
func (db *DB) Comments() *CommentDB {
	return &CommentDB{conn: db.conn}
}

var _ repository.CommentRepository = (*CommentDB)(nil)

// Create inserts a comment; the post-existence check happens in the
// service layer, with the foreign key as backstop.
func (r *CommentDB) Create(ctx context.Context, comment *model.Comment) error {
	err := r.conn.QueryRowContext(ctx,
		`INSERT INTO comments (content, user_id, post_id)
		 VALUES ($1, $2, $3) RETURNING id, created_at`,
		comment.Content,
		comment.UserID,
		comment.PostID,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: inserting comment: %w", err)
	}

	return nil
}

// ListByPost returns the post's comments newest-first, each joined with
// the commenting user's username.
func (r *CommentDB) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT comments.id, comments.content, comments.user_id, comments.post_id,
		        comments.created_at, "user".username
		 FROM comments
		 JOIN "user" ON comments.user_id = "user".id
		 WHERE comments.post_id = $1
		 ORDER BY comments.created_at DESC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing comments for post %d: %w", postID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.UserID, &c.PostID, &c.CreatedAt, &c.Username); err != nil {
			return nil, fmt.Errorf("postgres: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating comments: %w", err)
	}

	return comments, nil
}
