package postgres

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

var _ repository.UserRepository = (*UserDB)(nil)

// Create inserts a new user row. lib/pq does not support LastInsertId,
// so the assigned ID comes back through RETURNING.
func (r *UserDB) Create(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	err := r.conn.QueryRowContext(ctx,
		`INSERT INTO "user" (username, email, password, role)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Username,
		user.Email,
		user.Password,
		user.Role,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("postgres: inserting user %q: %w", user.Username, err)
	}

	return nil
}

// GetByEmail returns the user registered under the given email address,
// or apperror.ErrNotFound.
func (r *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password, role FROM "user" WHERE email = $1`,
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
		return nil, fmt.Errorf("postgres: getting user by email: %w", err)
	}

	return &u, nil
}
