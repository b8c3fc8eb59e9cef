package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tanvir/blog-api/internal/apperror"
	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/repository"
)

// CommentService handles comment creation and the combined post-plus-
// comments read. Comments cross ownership boundaries: any authenticated
// user can comment on, and read comments of, any existing post.
type CommentService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(posts repository.PostRepository, comments repository.CommentRepository, logger *slog.Logger) *CommentService {
	return &CommentService{
		posts:    posts,
		comments: comments,
		logger:   logger,
	}
}

// Create verifies the target post exists, then inserts the comment.
//
// The existence check and the insert are two independent statements with
// no transaction around them. A post deleted between the two would slip
// through to the foreign key constraint; that narrow race is accepted
// rather than guarded against.
func (s *CommentService) Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, apperror.ValidationFailed("content", "Content is required")
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content: content,
		UserID:  userID,
		PostID:  postID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			slog.Int64("postID", postID),
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/comment: creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.Int64("commentID", comment.ID),
		slog.Int64("postID", postID),
		slog.Int64("userID", userID),
	)
	return comment, nil
}

// PostWithComments fetches a post (any owner) together with its
// comments, newest first, each annotated with the author's username.
func (s *CommentService) PostWithComments(ctx context.Context, postID int64) (*model.Post, []model.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		s.logger.Error("failed to list comments",
			slog.Int64("postID", postID),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("service/comment: listing comments: %w", err)
	}

	return post, comments, nil
}
