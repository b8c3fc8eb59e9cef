package auth

import (
	"context"
	"net/http"

	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/session"
)

// contextKey is an unexported type used for context keys in this package.
// A package-private key type means only this package can read or write
// the session user in a request context — no collisions with other
// packages using string keys.
type contextKey string

const sessionUserKey contextKey = "sessionUser"

// RequireAuth enforces a logged-in session on protected routes.
//
// It resolves the session cookie through the Manager and stores the
// session user in the request context for handlers to read. Requests
// without a valid session are answered with 401 and never reach the
// handler.
func RequireAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessions.Current(r.Context(), r)
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin enforces a logged-in session whose user has the admin role.
//
// No route currently mounts this gate — it exists as capability for
// future admin-only endpoints. Non-admin and anonymous requests both get
// the same 401 as RequireAuth rather than a 403, so the response does not
// reveal whether an admin area exists.
func RequireAdmin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessions.Current(r.Context(), r)
			if err != nil || user.Role != model.RoleAdmin {
				http.Error(w, `{"error":"unauthorized","message":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the session user stored by RequireAuth or
// RequireAdmin. Returns (nil, false) on routes without an auth gate.
func UserFromContext(ctx context.Context) (*session.User, bool) {
	user, ok := ctx.Value(sessionUserKey).(*session.User)
	return user, ok && user != nil
}
