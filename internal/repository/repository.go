// Package repository declares the storage interfaces the service layer
// programs against. Two backends implement them: sqlite (the default)
// and postgres (selected with DATABASE_URL).
package repository

import (
	"context"

	"github.com/tanvir/blog-api/internal/model"
)

// ListOptions controls the paginated, search-filtered post listing used
// by the dashboard. Search matches the title by substring; Limit/Offset
// are passed straight through to the query.
type ListOptions struct {
	Search string
	Limit  int
	Offset int
}

type UserRepository interface {
	// Create inserts a new user and fills in the assigned ID. The email
	// column is UNIQUE; a duplicate surfaces as a plain driver error.
	Create(ctx context.Context, user *model.User) error
	// GetByEmail returns the user registered under the given email, or
	// apperror.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type PostRepository interface {
	// Create inserts a post and fills in the assigned ID and creation time.
	Create(ctx context.Context, post *model.Post) error
	// GetByIDForOwner fetches a post only if it belongs to ownerID.
	GetByIDForOwner(ctx context.Context, id, ownerID int64) (*model.Post, error)
	// GetByID fetches a post regardless of owner (used by comment routes).
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	// ListByOwner returns every post owned by ownerID.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Post, error)
	// ListPageByOwner returns one dashboard page of the owner's posts.
	ListPageByOwner(ctx context.Context, ownerID int64, opts ListOptions) ([]model.Post, error)
	// Update rewrites title and content of the post, constrained to the
	// owner. Matching zero rows is not an error — the caller can't tell a
	// missing post from someone else's post, and doesn't need to.
	Update(ctx context.Context, id, ownerID int64, title, content string) error
	// Delete removes the post, constrained to the owner. Zero rows matched
	// is, as with Update, a silent no-op.
	Delete(ctx context.Context, id, ownerID int64) error
}

type CommentRepository interface {
	// Create inserts a comment and fills in the assigned ID and creation
	// time. The caller is responsible for checking the post exists first.
	Create(ctx context.Context, comment *model.Comment) error
	// ListByPost returns the post's comments newest-first, each joined
	// with the author's username.
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
}
