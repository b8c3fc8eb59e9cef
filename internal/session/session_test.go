package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tanvir/blog-api/internal/model"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore(0) // no janitor; expiry is checked on Get
	t.Cleanup(store.Close)
	return store
}

func TestMemoryStorePutGetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := &User{ID: 1, Username: "alice", Email: "alice@example.com", Role: model.RoleUser}

	if err := store.Put(ctx, "sid-1", user, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != 1 || got.Username != "alice" {
		t.Errorf("Get() = %+v, want the stored user", got)
	}

	// The returned record is a copy; mutating it must not poison the store.
	got.Username = "mallory"
	again, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if again.Username != "alice" {
		t.Errorf("stored Username = %q after caller mutation, want %q", again.Username, "alice")
	}

	if err := store.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "sid-1"); err != ErrNoSession {
		t.Errorf("Get() after delete error = %v, want ErrNoSession", err)
	}
}

func TestMemoryStoreRejectsExpired(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Put(ctx, "old", &User{ID: 1}, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if _, err := store.Get(ctx, "old"); err != ErrNoSession {
		t.Errorf("Get() of expired session error = %v, want ErrNoSession", err)
	}
}

func TestMemoryStoreDeleteUnknownID(t *testing.T) {
	store := newTestStore(t)

	if err := store.Delete(context.Background(), "never-existed"); err != nil {
		t.Errorf("Delete() of unknown id error = %v, want nil", err)
	}
}

func TestManagerCreateSetsCookie(t *testing.T) {
	store := newTestStore(t)
	m := NewManager(store, time.Hour)

	rec := httptest.NewRecorder()
	user := &model.User{
		ID:       5,
		Username: "carol",
		Email:    "carol@example.com",
		Password: "$2a$10$secret-hash",
		Role:     model.RoleUser,
	}
	if err := m.Create(context.Background(), rec, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	cookie := cookies[0]

	if cookie.Name != "session_id" {
		t.Errorf("cookie name = %q, want %q", cookie.Name, "session_id")
	}
	if cookie.Value == "" {
		t.Error("cookie value is empty")
	}
	if !cookie.HttpOnly {
		t.Error("cookie is not HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie SameSite = %v, want Lax", cookie.SameSite)
	}

	// The stored record must not carry the password hash anywhere.
	stored, err := store.Get(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Username != "carol" || stored.Email != "carol@example.com" {
		t.Errorf("stored user = %+v, want carol's fields", stored)
	}
}

func TestManagerCurrent(t *testing.T) {
	store := newTestStore(t)
	m := NewManager(store, time.Hour)

	rec := httptest.NewRecorder()
	if err := m.Create(context.Background(), rec, &model.User{ID: 9, Username: "dave"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	cookie := rec.Result().Cookies()[0]

	t.Run("round trip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)

		user, err := m.Current(context.Background(), req)
		if err != nil {
			t.Fatalf("Current() error = %v", err)
		}
		if user.ID != 9 || user.Username != "dave" {
			t.Errorf("Current() = %+v, want ID 9 / dave", user)
		}
	})

	t.Run("no cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, err := m.Current(context.Background(), req); err != ErrNoSession {
			t.Errorf("Current() without cookie error = %v, want ErrNoSession", err)
		}
	})

	t.Run("unknown session id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "forged"})
		if _, err := m.Current(context.Background(), req); err != ErrNoSession {
			t.Errorf("Current() with forged cookie error = %v, want ErrNoSession", err)
		}
	})
}

func TestManagerCurrentRenewsExpiry(t *testing.T) {
	store := newTestStore(t)
	m := NewManager(store, time.Hour)

	// Seed a session that is about to expire.
	err := store.Put(context.Background(), "renew-me", &User{ID: 3}, time.Now().Add(time.Second))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "renew-me"})
	if _, err := m.Current(context.Background(), req); err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	// The lookup pushed the expiry a full TTL out.
	store.mu.RLock()
	entry := store.sessions["renew-me"]
	store.mu.RUnlock()
	if time.Until(entry.expiresAt) < 59*time.Minute {
		t.Errorf("expiry %v from now, want about an hour", time.Until(entry.expiresAt))
	}
}

func TestManagerDestroy(t *testing.T) {
	store := newTestStore(t)
	m := NewManager(store, time.Hour)

	rec := httptest.NewRecorder()
	if err := m.Create(context.Background(), rec, &model.User{ID: 4, Username: "erin"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	destroyRec := httptest.NewRecorder()
	if err := m.Destroy(context.Background(), destroyRec, req); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}

	// Session record gone.
	if _, err := store.Get(context.Background(), cookie.Value); err != ErrNoSession {
		t.Errorf("Get() after Destroy() error = %v, want ErrNoSession", err)
	}

	// Browser told to drop the cookie.
	cleared := destroyRec.Result().Cookies()
	if len(cleared) != 1 {
		t.Fatalf("got %d cookies on logout response, want 1", len(cleared))
	}
	if cleared[0].MaxAge != -1 {
		t.Errorf("logout cookie MaxAge = %d, want -1", cleared[0].MaxAge)
	}

	// Logging out twice is fine.
	again := httptest.NewRequest(http.MethodPost, "/logout", nil)
	again.AddCookie(cookie)
	if err := m.Destroy(context.Background(), httptest.NewRecorder(), again); err != nil {
		t.Errorf("second Destroy() error = %v, want nil", err)
	}
}

func TestUserFromModelOmitsPassword(t *testing.T) {
	u := UserFromModel(&model.User{
		ID:       1,
		Username: "frank",
		Email:    "frank@example.com",
		Password: "$2a$10$do-not-leak",
		Role:     model.RoleAdmin,
	})

	if u.ID != 1 || u.Username != "frank" || u.Email != "frank@example.com" || u.Role != model.RoleAdmin {
		t.Errorf("UserFromModel() = %+v, lost a field", u)
	}
}
