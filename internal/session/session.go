// Package session implements cookie-backed server-side sessions.
//
// A session is a server-side record of the logged-in user, referenced by
// the client through an unguessable ID carried in an HttpOnly cookie. The
// Manager owns the cookie lifecycle (issue on login, clear on logout) and
// delegates persistence to a Store, so the in-memory store can later be
// swapped for an external backend without touching any handler.
//
// Sessions expire on inactivity: every successful lookup pushes the
// expiry forward by the configured TTL.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/xid"

	"github.com/tanvir/blog-api/internal/model"
)

// ErrNoSession is returned by Store.Get when the ID is unknown or expired.
var ErrNoSession = errors.New("session: no such session")

// DefaultTTL is the inactivity window before a session expires.
const DefaultTTL = 24 * time.Hour

// cookieName is the name of the session cookie issued to clients.
const cookieName = "session_id"

// User is the serialized form of a logged-in user kept in the store.
//
// It deliberately omits the password hash — the session record is the one
// copy of the user that outlives a request, and there is no reason for it
// to carry credentials.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserFromModel strips a full user row down to its session representation.
func UserFromModel(u *model.User) *User {
	return &User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Store persists session records keyed by session ID.
//
// Implementations must be safe for concurrent use. Operations take a
// context so an external backend (Postgres, memcached) can honour
// cancellation; the in-memory store ignores it.
type Store interface {
	Get(ctx context.Context, id string) (*User, error)
	Put(ctx context.Context, id string, user *User, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// Manager ties a Store to the HTTP cookie protocol.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager creates a Manager over the given store. A non-positive ttl
// falls back to DefaultTTL.
func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl}
}

// Create starts a new session for the given user and sets the session
// cookie on the response.
//
// The session ID is a fresh xid — unguessable and single-purpose. The
// cookie is HttpOnly (JavaScript cannot read it) with SameSite=Lax.
// Secure is left unset so the cookie works over plain HTTP in local
// development; put a TLS terminator in front for production.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, user *model.User) error {
	id := xid.New().String()
	if err := m.store.Put(ctx, id, UserFromModel(user), time.Now().Add(m.ttl)); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Current returns the user attached to the request's session cookie, or
// ErrNoSession if the request carries no valid session.
//
// A hit renews the expiry, so the TTL measures inactivity rather than
// absolute session age. The renewal is a separate Put with no locking
// across the two calls; concurrent requests from the same session may
// race on the expiry, which only ever extends it.
func (m *Manager) Current(ctx context.Context, r *http.Request) (*User, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}

	user, err := m.store.Get(ctx, cookie.Value)
	if err != nil {
		return nil, err
	}

	if err := m.store.Put(ctx, cookie.Value, user, time.Now().Add(m.ttl)); err != nil {
		return nil, err
	}
	return user, nil
}

// Destroy deletes the request's session record and tells the browser to
// drop the cookie. Destroying an absent session is not an error — logout
// is idempotent.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		if err := m.store.Delete(ctx, cookie.Value); err != nil {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // tells the browser to delete the cookie immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
