// Package repository defines the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/sakif/readability-analyzer/internal/model"
)

// UserRepository is the credential store: email-keyed user records with a
// password hash and three optional profile fields.
type UserRepository interface {
	// Create inserts a new user. Returns apperror.ErrConflict (wrapped) if
	// the email is already registered; the existing record is untouched.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail returns the user for the given email, or an error wrapping
	// apperror.ErrNotFound if no such account exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateProfile unconditionally overwrites the three mutable profile
	// fields. Updating an absent email is a silent no-op, not an error.
	UpdateProfile(ctx context.Context, email string, profile model.Profile) error

	// GetProfile returns the profile fields with empty-string defaults for
	// anything unset, including the case where the email is unknown.
	GetProfile(ctx context.Context, email string) (model.Profile, error)
}
