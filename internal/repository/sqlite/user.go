package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tanvir/blog-api/internal/apperror"
	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/repository"
)

// UserDB implements repository.UserRepository over the shared connection.
type UserDB struct {
	conn *sql.DB
}

// Users returns the user repository view of the database.
func (db *DB) Users() *UserDB {
	return &UserDB{conn: db.conn}
}

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// Create inserts a new user row.
//
// The role column falls back to its 'user' default when the model leaves
// Role empty. A duplicate email violates the UNIQUE constraint and comes
// back as a wrapped driver error — deliberately not translated to a
// domain error, so the handler reports it as a generic 500 with the
// detail kept in the server log.
func (r *UserDB) Create(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	result, err := r.conn.ExecContext(ctx,
		`INSERT INTO user (username, email, password, role) VALUES (?, ?, ?, ?)`,
		user.Username,
		user.Email,
		user.Password,
		user.Role,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByEmail returns the user registered under the given email address.
// Returns apperror.ErrNotFound when no such user exists — the login path
// folds that into its generic invalid-credentials response.
func (r *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password, role FROM user WHERE email = ?`,
		email,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password,
		&u.Role,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: "user not found",
			}
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}

	return &u, nil
}
