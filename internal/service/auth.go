// Package service contains the business logic layer.
//
// Services accept primitives and return models or domain errors; they
// know nothing about HTTP. Handlers translate the results to status
// codes, and repositories handle the SQL underneath.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/tanvir/blog-api/internal/apperror"
	"github.com/tanvir/blog-api/internal/auth"
	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/repository"
)

// MinPasswordLength is the registration minimum.
const MinPasswordLength = 6

// emailPattern is a shape check, not RFC 5322 validation: something
// before an @, something after, and a dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles registration and login.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register validates the registration fields, hashes the password, and
// inserts the user.
//
// The validation chain stops at the first failing rule and reports it as
// a field-tagged validation error. Registration is the only operation
// with structured field validation — the other endpoints keep presence
// checks at most. A duplicate email is NOT validated here; it fails the
// UNIQUE constraint on insert and propagates as an infrastructure error.
func (s *AuthService) Register(ctx context.Context, username, email, password, confirmPassword string) error {
	if username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if !emailPattern.MatchString(email) {
		return apperror.ValidationFailed("email", "a valid email address is required")
	}
	if len(password) < MinPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if confirmPassword != password {
		return apperror.ValidationFailed("confirmPassword", "Password confirmation does not match password")
	}

	hashed, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to register user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("service/auth: registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)
	return nil
}

// Login checks the email/password pair and returns the matching user.
//
// Unknown email and wrong password both come back as the same
// apperror.ErrUnauthorized with the same message, so responses don't
// reveal which emails have accounts. Any other lookup failure is an
// infrastructure error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid email or password")
		}
		s.logger.Error("login lookup failed",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	s.logger.Info("user logged in",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}
