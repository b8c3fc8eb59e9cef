// Package model defines the data structures used throughout the application.
package model

// Role values stored in the user table. The column is constrained to
// exactly these two values; new accounts default to RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
//
// Password holds the bcrypt hash, never the plaintext. The json:"-" tag
// keeps the hash out of every serialized response — authenticated users
// are exposed to handlers only through session.User, which does not carry
// the hash at all.
type User struct {
	ID       int64  `json:"id"       db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email"    db:"email"`
	Password string `json:"-"        db:"password"` // bcrypt hash
	Role     string `json:"role"     db:"role"`     // "user" or "admin"
}
