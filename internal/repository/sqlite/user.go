package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/readability-analyzer/internal/apperror"
	"github.com/sakif/readability-analyzer/internal/model"
	"github.com/sakif/readability-analyzer/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user record.
//
// INSERT OR IGNORE makes the duplicate check atomic: if a row with this
// email already exists, the statement affects zero rows and the existing
// record (including its hash) is left exactly as it was. A prior
// SELECT-then-INSERT would race under concurrent registrations.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %s: %w", user.Email, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking insert result for %s: %w", user.Email, err)
	}
	if affected == 0 {
		return apperror.Conflict("account", user.Email)
	}

	return nil
}

// GetByEmail retrieves a user by email.
// Returns apperror.ErrNotFound (wrapped) if no account exists.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var (
		u                        model.User
		name, ageGroup, language sql.NullString
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT email, password_hash, name, age_group, language, created_at, updated_at
		 FROM users WHERE email = ?`,
		email,
	).Scan(
		&u.Email,
		&u.PasswordHash,
		&name,
		&ageGroup,
		&language,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("account", email)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", email, err)
	}

	// NULL profile columns come back as empty strings.
	u.Name = name.String
	u.AgeGroup = ageGroup.String
	u.Language = language.String

	return &u, nil
}

// UpdateProfile overwrites the three mutable profile fields.
// Updating an email that doesn't exist affects zero rows and is not an
// error; the profile editor only ever targets the logged-in account.
func (db *DB) UpdateProfile(ctx context.Context, email string, profile model.Profile) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, age_group = ?, language = ?, updated_at = ?
		 WHERE email = ?`,
		profile.Name,
		profile.AgeGroup,
		profile.Language,
		time.Now(),
		email,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating profile for %s: %w", email, err)
	}

	return nil
}

// GetProfile returns the profile fields for email with empty-string
// defaults for anything unset, including an unknown email.
func (db *DB) GetProfile(ctx context.Context, email string) (model.Profile, error) {
	var name, ageGroup, language sql.NullString

	err := db.conn.QueryRowContext(ctx,
		`SELECT name, age_group, language FROM users WHERE email = ?`,
		email,
	).Scan(&name, &ageGroup, &language)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Profile{}, nil
		}
		return model.Profile{}, fmt.Errorf("sqlite: getting profile for %s: %w", email, err)
	}

	return model.Profile{
		Name:     name.String,
		AgeGroup: ageGroup.String,
		Language: language.String,
	}, nil
}
