package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/repository"
)

// DashboardPageSize is the fixed number of posts per dashboard page.
const DashboardPageSize = 5

// PostService handles the owner-scoped post operations.
//
// Every operation takes the caller's user ID explicitly. Ownership is
// enforced by the repository's WHERE clauses, not by post-hoc checks:
// reads scoped to the owner simply don't see other users' rows, and
// writes against other users' rows match nothing and succeed as no-ops.
type PostService struct {
	posts  repository.PostRepository
	logger *slog.Logger
}

// NewPostService creates a PostService.
func NewPostService(posts repository.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{
		posts:  posts,
		logger: logger,
	}
}

// Dashboard returns one page of the caller's posts, filtered by a title
// substring. Pages are 1-based; anything below 1 is treated as page 1.
func (s *PostService) Dashboard(ctx context.Context, ownerID int64, page int, search string) ([]model.Post, error) {
	if page < 1 {
		page = 1
	}

	posts, err := s.posts.ListPageByOwner(ctx, ownerID, repository.ListOptions{
		Search: search,
		Limit:  DashboardPageSize,
		Offset: (page - 1) * DashboardPageSize,
	})
	if err != nil {
		s.logger.Error("failed to list dashboard posts",
			slog.Int64("userID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/post: listing dashboard: %w", err)
	}
	return posts, nil
}

// Create inserts a post owned by the caller. No field validation — empty
// titles are accepted; a duplicate content value fails the UNIQUE
// constraint and surfaces as an infrastructure error.
func (s *PostService) Create(ctx context.Context, ownerID int64, title, content string) (*model.Post, error) {
	post := &model.Post{
		Title:   title,
		Content: content,
		UserID:  ownerID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			slog.Int64("userID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/post: creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.Int64("postID", post.ID),
		slog.Int64("userID", ownerID),
	)
	return post, nil
}

// Get fetches the caller's post by ID. Posts owned by other users are
// reported as not found, never as forbidden.
func (s *PostService) Get(ctx context.Context, ownerID, id int64) (*model.Post, error) {
	return s.posts.GetByIDForOwner(ctx, id, ownerID)
}

// List returns all of the caller's posts.
func (s *PostService) List(ctx context.Context, ownerID int64) ([]model.Post, error) {
	posts, err := s.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list posts",
			slog.Int64("userID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/post: listing posts: %w", err)
	}
	return posts, nil
}

// Update rewrites title and content of the caller's post. Updating a
// post the caller doesn't own (or that doesn't exist) matches no rows
// and succeeds without effect.
func (s *PostService) Update(ctx context.Context, ownerID, id int64, title, content string) error {
	if err := s.posts.Update(ctx, id, ownerID, title, content); err != nil {
		s.logger.Error("failed to update post",
			slog.Int64("postID", id),
			slog.Int64("userID", ownerID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("service/post: updating post: %w", err)
	}

	s.logger.Info("post updated", slog.Int64("postID", id), slog.Int64("userID", ownerID))
	return nil
}

// Delete removes the caller's post; same no-op semantics as Update for
// rows the caller doesn't own.
func (s *PostService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.posts.Delete(ctx, id, ownerID); err != nil {
		s.logger.Error("failed to delete post",
			slog.Int64("postID", id),
			slog.Int64("userID", ownerID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("service/post: deleting post: %w", err)
	}

	s.logger.Info("post deleted", slog.Int64("postID", id), slog.Int64("userID", ownerID))
	return nil
}
