// Package handler contains the HTTP layer: request parsing, session
// cookie management, and translation of service results to responses.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tanvir/blog-api/internal/service"
	"github.com/tanvir/blog-api/internal/session"
)

// AuthHandler serves the three public routes: register, login, logout.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		logger:   logger,
	}
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /register
// Success: 201. Validation failures: 400 with the failing field.
// A duplicate email fails the UNIQUE constraint and is reported as a
// generic 500 like any other database error.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("register: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	if err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin authenticates the caller and starts a session.
//
// HTTP: POST /login
// On success the session cookie is set and the response is 200. Unknown
// email and wrong password are both 401 with the same message.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("login: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.sessions.Create(r.Context(), w, user); err != nil {
		h.logger.Error("login: creating session", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Login successful")
}

// HandleLogout destroys the caller's session and clears the cookie.
//
// HTTP: POST /logout
// No auth gate: logging out without a session is a harmless no-op that
// still clears the cookie and returns 200.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.logger.Error("logout: destroying session", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Logged out")
}
