package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tanvir/blog-api/internal/auth"
	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/service"
)

// CommentHandler serves the two comment routes. Unlike the post routes,
// these see posts from every owner, and their not-found case is a
// proper 404.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

type commentRequest struct {
	Content string `json:"content"`
}

// HandleCreate adds a comment to an existing post.
//
// HTTP: POST /comment/post/{id}
// 400 when content is empty, 404 when the post doesn't exist.
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("create comment: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	if _, err := h.comments.Create(r.Context(), user.ID, postID, req.Content); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Comment created successfully")
}

// postWithCommentsResponse is the combined body for the post-plus-
// comments read.
type postWithCommentsResponse struct {
	Post     *model.Post     `json:"post"`
	Comments []model.Comment `json:"comments"`
}

// HandleGetPostWithComments returns a post together with its comments,
// newest first, each carrying the commenting user's username.
//
// HTTP: GET /comment/posts/{id}
func (h *CommentHandler) HandleGetPostWithComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	post, comments, err := h.comments.PostWithComments(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postWithCommentsResponse{
		Post:     post,
		Comments: comments,
	})
}
