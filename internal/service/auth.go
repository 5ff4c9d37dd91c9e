// Package service contains the business logic layer: validation, access
// rules, and orchestration. Handlers parse HTTP and delegate here; services
// talk to the repository interfaces and return apperror values, never status
// codes. The layering is the usual chain —
//
//	Handler (HTTP) → Service (rules) → Repository (SQL)
//
// wired together once in internal/server.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/twitter-clone/internal/apperror"
	"github.com/sakif/twitter-clone/internal/auth"
	"github.com/sakif/twitter-clone/internal/model"
	"github.com/sakif/twitter-clone/internal/repository"
)

// AuthService handles registration and login.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account.
//
// Failure modes are both Validation errors, surfaced as 400s: a taken
// username and a password under six characters. The username pre-check is an
// optimization for a friendly message — the UNIQUE index is the real guard,
// so a conflict from the INSERT reports the same duplicate-user error.
func (s *AuthService) Register(ctx context.Context, username, name, password, gender string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if len(password) < auth.MinPasswordLength {
		return apperror.ValidationFailed("password", "password is too short")
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return apperror.ValidationFailed("username", "user already exists")
	case !errors.Is(err, apperror.ErrNotFound):
		return fmt.Errorf("service/auth: checking username %q: %w", username, err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return apperror.ValidationFailed("password", "password is invalid")
	}

	user := &model.User{
		Username:     username,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Gender:       gender,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost a race with a concurrent registration of the same
			// username; same outcome as the pre-check.
			return apperror.ValidationFailed("username", "user already exists")
		}
		return fmt.Errorf("service/auth: creating user %q: %w", username, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// Login verifies credentials and issues a session token.
//
// Unknown username and wrong password are both Validation errors; the bcrypt
// comparison is constant-time, so neither the response nor its timing says
// which character of the password was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.ValidationFailed("username", "invalid user")
		}
		return "", fmt.Errorf("service/auth: fetching user %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.ValidationFailed("password", "invalid password")
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}
