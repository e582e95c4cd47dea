// Package service contains the business logic layer: validation and
// orchestration, with no knowledge of HTTP or SQL. Handlers sit above it,
// repositories below.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/readability-analyzer/internal/apperror"
	"github.com/sakif/readability-analyzer/internal/auth"
	"github.com/sakif/readability-analyzer/internal/model"
	"github.com/sakif/readability-analyzer/internal/repository"
)

// AuthService handles registration, login, and profile management.
//
// Dependencies are injected: the repository interface (not the concrete
// sqlite type), the token and password services, and a logger. Tests swap
// in a fake repository and a low-cost password service.
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

// Register creates a new account from an email and password.
//
// The password is bcrypt-hashed before it goes anywhere near storage.
// Registering an email that already exists returns apperror.ErrConflict
// and leaves the existing record untouched.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info("account registered", slog.String("email", email))
	return nil
}

// Login verifies credentials and issues a session token.
//
// The two failure modes are distinguished so the UI can guide the next
// action: apperror.ErrNotFound means "no such account, register instead";
// apperror.ErrUnauthorized means "account exists, wrong password".
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Propagates ErrNotFound for a missing account.
		return "", err
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("login rejected", slog.String("email", email))
		return "", apperror.Unauthorized("incorrect password")
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("service/auth: issuing token for %s: %w", email, err)
	}

	s.logger.Info("user logged in", slog.String("email", email))
	return token, nil
}

// GetUser returns the full record for the given email.
// Used by /api/me after the middleware has verified the session token.
func (s *AuthService) GetUser(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	return s.users.GetByEmail(ctx, email)
}

// Profile returns the profile fields for email, with empty-string defaults.
func (s *AuthService) Profile(ctx context.Context, email string) (model.Profile, error) {
	if email == "" {
		return model.Profile{}, apperror.ValidationFailed("email", "email is required")
	}
	return s.users.GetProfile(ctx, email)
}

// SaveProfile overwrites the three mutable profile fields after validating
// the age-group and language enumerations.
func (s *AuthService) SaveProfile(ctx context.Context, email string, profile model.Profile) error {
	if email == "" {
		return apperror.ValidationFailed("email", "email is required")
	}

	profile.Name = strings.TrimSpace(profile.Name)
	if !model.ValidAgeGroup(profile.AgeGroup) {
		return apperror.ValidationFailed("ageGroup",
			fmt.Sprintf("age group must be one of %v", model.AgeGroups[1:]))
	}
	if !model.ValidLanguage(profile.Language) {
		return apperror.ValidationFailed("language",
			fmt.Sprintf("language must be one of %v", model.Languages[1:]))
	}

	if err := s.users.UpdateProfile(ctx, email, profile); err != nil {
		s.logger.Error("failed to save profile",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("saving profile: %w", err)
	}

	s.logger.Info("profile saved", slog.String("email", email))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if email == "" {
		return apperror.ValidationFailed("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return apperror.ValidationFailed("email", "email must contain @")
	}
	if password == "" {
		return apperror.ValidationFailed("password", "password is required")
	}
	return nil
}
