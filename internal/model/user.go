// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// The email address is the primary identifier and never changes after
// registration. PasswordHash is a bcrypt hash; the plaintext password is
// never stored anywhere. The three profile fields are optional and default
// to the empty string until the user saves their profile.
type User struct {
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password_hash"` // never serialized
	Name         string    `json:"name"      db:"name"`
	AgeGroup     string    `json:"ageGroup"  db:"age_group"`
	Language     string    `json:"language"  db:"language"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Profile is the mutable slice of a User: the fields the profile editor may
// overwrite. Unset fields are empty strings, never nulls.
type Profile struct {
	Name     string `json:"name"`
	AgeGroup string `json:"ageGroup"`
	Language string `json:"language"`
}

// AgeGroups is the closed set of accepted age buckets. The empty string
// means "not provided".
var AgeGroups = []string{"", "<18", "18-25", "26-35", "36-50", "50+"}

// Languages is the closed set of accepted language preferences. The empty
// string means "not provided".
var Languages = []string{"", "English", "Tamil", "Hindi"}

// ValidAgeGroup reports whether v is one of the accepted age buckets.
func ValidAgeGroup(v string) bool {
	for _, g := range AgeGroups {
		if v == g {
			return true
		}
	}
	return false
}

// ValidLanguage reports whether v is one of the accepted languages.
func ValidLanguage(v string) bool {
	for _, l := range Languages {
		if v == l {
			return true
		}
	}
	return false
}
