package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

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

// compile-time check that *PostDB implements repository.PostRepository
var _ repository.PostRepository = (*PostDB)(nil)

// Create inserts a new post owned by post.UserID.
//
// The content column is UNIQUE across all posts; a duplicate is a
// constraint violation returned as a wrapped driver error, which the
// HTTP layer reports generically.
func (r *PostDB) Create(ctx context.Context, post *model.Post) error {
	post.CreatedAt = time.Now().UTC()

	result, err := r.conn.ExecContext(ctx,
		`INSERT INTO posts (title, content, user_id, created_at) VALUES (?, ?, ?, ?)`,
		post.Title,
		post.Content,
		post.UserID,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new post id: %w", err)
	}
	post.ID = id

	return nil
}

// GetByIDForOwner fetches a post only when it belongs to ownerID. A post
// that exists but belongs to someone else is indistinguishable from one
// that doesn't exist — both are ErrNotFound.
func (r *PostDB) GetByIDForOwner(ctx context.Context, id, ownerID int64) (*model.Post, error) {
	return r.getPost(ctx,
		`SELECT id, title, content, user_id, created_at FROM posts WHERE id = ? AND user_id = ?`,
		id, ownerID)
}

// GetByID fetches a post regardless of who owns it. The comment routes
// use this: any authenticated user may comment on any existing post.
func (r *PostDB) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	return r.getPost(ctx,
		`SELECT id, title, content, user_id, created_at FROM posts WHERE id = ?`,
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
		return nil, fmt.Errorf("sqlite: getting post: %w", err)
	}

	return &p, nil
}

// ListByOwner returns every post owned by ownerID.
func (r *PostDB) ListByOwner(ctx context.Context, ownerID int64) ([]model.Post, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, title, content, user_id, created_at FROM posts WHERE user_id = ?`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListPageByOwner returns one page of the owner's posts, filtered by a
// title substring. Limit and offset are bound as query parameters, same
// as the search pattern.
func (r *PostDB) ListPageByOwner(ctx context.Context, ownerID int64, opts repository.ListOptions) ([]model.Post, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, title, content, user_id, created_at
		 FROM posts
		 WHERE user_id = ? AND title LIKE ?
		 LIMIT ? OFFSET ?`,
		ownerID,
		"%"+opts.Search+"%",
		opts.Limit,
		opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts page: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}
	return posts, nil
}

// Update rewrites title and content, constrained to rows owned by
// ownerID. Zero rows matched is a silent no-op: the caller can't tell a
// missing post from someone else's post, and gets a success either way.
func (r *PostDB) Update(ctx context.Context, id, ownerID int64, title, content string) error {
	_, err := r.conn.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ? WHERE id = ? AND user_id = ?`,
		title, content, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating post %d: %w", id, err)
	}
	return nil
}

// Delete removes the post, constrained to the owner; zero rows matched
// is a silent no-op.
func (r *PostDB) Delete(ctx context.Context, id, ownerID int64) error {
	_, err := r.conn.ExecContext(ctx,
		`DELETE FROM posts WHERE id = ? AND user_id = ?`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %d: %w", id, err)
	}
	return nil
}
