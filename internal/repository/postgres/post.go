package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tanvir/blog-api/internal/apperror"
	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/repository"
)

// PostDB implements repository.PostRepository over the shared connection.
type PostDB struct {
	conn *sql.DB
}

// Posts returns the post repository view of the database.
func (db *DB) Posts() *PostDB {
	return &PostDB{conn: db.conn}
}

var _ repository.PostRepository = (*PostDB)(nil)

// Create inserts a new post owned by post.UserID. created_at is assigned
// by the database and read back together with the ID.
func (r *PostDB) Create(ctx context.Context, post *model.Post) error {
	err := r.conn.QueryRowContext(ctx,
		`INSERT INTO posts (title, content, user_id)
		 VALUES ($1, $2, $3) RETURNING id, created_at`,
		post.Title,
		post.Content,
		post.UserID,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: inserting post: %w", err)
	}

	return nil
}

// GetByIDForOwner fetches a post only when it belongs to ownerID.
func (r *PostDB) GetByIDForOwner(ctx context.Context, id, ownerID int64) (*model.Post, error) {
	return r.getPost(ctx,
		`SELECT id, title, content, user_id, created_at FROM posts WHERE id = $1 AND user_id = $2`,
		id, ownerID)
}

// GetByID fetches a post regardless of who owns it.
func (r *PostDB) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	return r.getPost(ctx,
		`SELECT id, title, content, user_id, created_at FROM posts WHERE id = $1`,
		id)
}

func (r *PostDB) getPost(ctx context.Context, query string, args ...any) (*model.Post, error) {
	var p model.Post

	err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.UserID,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: "Post not found",
			}
		}
		return nil, fmt.Errorf("postgres: getting post: %w", err)
	}

	return &p, nil
}

// ListByOwner returns every post owned by ownerID.
func (r *PostDB) ListByOwner(ctx context.Context, ownerID int64) ([]model.Post, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, title, content, user_id, created_at FROM posts WHERE user_id = $1`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListPageByOwner returns one page of the owner's posts filtered by a
// title substring.
func (r *PostDB) ListPageByOwner(ctx context.Context, ownerID int64, opts repository.ListOptions) ([]model.Post, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, title, content, user_id, created_at
		 FROM posts
		 WHERE user_id = $1 AND title LIKE $2
		 LIMIT $3 OFFSET $4`,
		ownerID,
		"%"+opts.Search+"%",
		opts.Limit,
		opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing posts page: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating posts: %w", err)
	}
	return posts, nil
}

// Update rewrites title and content, constrained to rows owned by
// ownerID; zero rows matched is a silent no-op.
func (r *PostDB) Update(ctx context.Context, id, ownerID int64, title, content string) error {
	_, err := r.conn.ExecContext(ctx,
		`UPDATE posts SET title = $1, content = $2 WHERE id = $3 AND user_id = $4`,
		title, content, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("postgres: updating post %d: %w", id, err)
	}
	return nil
}

// Delete removes the post, constrained to the owner; zero rows matched
// is a silent no-op.
func (r *PostDB) Delete(ctx context.Context, id, ownerID int64) error {
	_, err := r.conn.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("postgres: deleting post %d: %w", id, err)
	}
	return nil
}
