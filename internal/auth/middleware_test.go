package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/session"
)

// newSessionManager returns a Manager over a janitor-less memory store.
func newSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	store := session.NewMemoryStore(0)
	t.Cleanup(store.Close)
	return session.NewManager(store, time.Hour)
}

// loginAs creates a session for user and returns the session cookie.
func loginAs(t *testing.T, sessions *session.Manager, user *model.User) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := sessions.Create(context.Background(), rec, user); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 session cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestRequireAuth(t *testing.T) {
	sessions := newSessionManager(t)

	var gotUser *session.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := RequireAuth(sessions)(next)

	t.Run("no cookie gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("unknown session id gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "bogus"})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("valid session passes and exposes the user", func(t *testing.T) {
		cookie := loginAs(t, sessions, &model.User{
			ID: 7, Username: "alice", Email: "alice@example.com", Role: model.RoleUser,
		})

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if gotUser == nil {
			t.Fatal("handler did not receive a session user")
		}
		if gotUser.ID != 7 || gotUser.Username != "alice" {
			t.Errorf("session user = %+v, want ID 7 / alice", gotUser)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	sessions := newSessionManager(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	adminOnly := RequireAdmin(sessions)(next)

	t.Run("anonymous gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("regular user gets 401, not 403", func(t *testing.T) {
		cookie := loginAs(t, sessions, &model.User{ID: 1, Username: "bob", Role: model.RoleUser})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		cookie := loginAs(t, sessions, &model.User{ID: 2, Username: "root", Role: model.RoleAdmin})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestUserFromContext_Absent(t *testing.T) {
	if user, ok := UserFromContext(context.Background()); ok || user != nil {
		t.Errorf("UserFromContext() on a bare context = (%v, %v), want (nil, false)", user, ok)
	}
}
