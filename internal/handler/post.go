package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tanvir/blog-api/internal/apperror"
	"github.com/tanvir/blog-api/internal/auth"
	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/service"
)

// PostHandler serves the owner-scoped post routes. All of them sit
// behind the RequireAuth gate, so the session user is always present in
// the request context.
//
// Two quirks of the API contract are preserved on purpose:
//   - the read endpoints answer 201, not 200
//   - a missing post on GET /posts and GET /posts/{id} answers 401 with
//     "Post not found", not 404
//
// Existing clients depend on both.
type PostHandler struct {
	posts  *service.PostService
	logger *slog.Logger
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(posts *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger}
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HandleDashboard returns one page of the caller's posts.
//
// HTTP: GET /dashboard?page=N&search=term
// Page size is fixed at 5; search matches the title by substring. An
// unparseable or missing page parameter means page 1.
func (h *PostHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}
	search := r.URL.Query().Get("search")

	posts, err := h.posts.Dashboard(r.Context(), user.ID, page, search)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, posts)
}

// HandleCreate inserts a post owned by the caller.
//
// HTTP: POST /posts
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("create post: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	if _, err := h.posts.Create(r.Context(), user.ID, req.Title, req.Content); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Post created successfully")
}

// HandleUpdate rewrites title and content of the caller's post.
//
// HTTP: PUT /posts/edit/{id}
// Updating a post the caller doesn't own matches no rows and still
// returns 200 — the response doesn't distinguish matched from not.
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("update post: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	if err := h.posts.Update(r.Context(), user.ID, id, req.Title, req.Content); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Post updated successfully")
}

// HandleGet fetches one of the caller's posts by ID.
//
// HTTP: GET /posts/{id}
// Success is 201 with a single-element array, and a missing post is 401,
// both per the preserved contract. The body shape matches HandleList so
// clients parse both the same way.
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.posts.Get(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error:   "not_found",
				Message: "Post not found",
			})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, []model.Post{*post})
}

// HandleList fetches all of the caller's posts.
//
// HTTP: GET /posts
// An empty result is reported as 401 "Post not found" (preserved
// contract), a non-empty one as 201 with the rows.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	posts, err := h.posts.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	if len(posts) == 0 {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "not_found",
			Message: "Post not found",
		})
		return
	}

	writeJSON(w, http.StatusCreated, posts)
}

// HandleDelete removes the caller's post.
//
// HTTP: DELETE /posts/delete/{post_id}
// Same no-op semantics as HandleUpdate for posts the caller doesn't own.
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	id, ok := pathID(w, r, "post_id")
	if !ok {
		return
	}

	if err := h.posts.Delete(r.Context(), user.ID, id); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Post deleted successfully")
}

// pathID parses the named URL parameter as an int64, answering 400 and
// returning ok=false when it's missing or not a number.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid post id",
			Field:   name,
		})
		return 0, false
	}
	return id, true
}
