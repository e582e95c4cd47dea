// Package auth provides session-token issuance, password hashing, and the
// authentication middleware.
//
// Sessions are stateless: the server keeps no session table. A login issues
// a signed JWT carrying the account email and an expiry 12 hours out, stored
// in an HttpOnly cookie. Every protected request validates the signature and
// expiry; no DB lookup needed. There is no refresh mechanism and no
// server-side revocation list; expiry forces a full re-login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 12 * time.Hour

const issuer = "readability-analyzer"

// Verification failures are classified so callers can tell the user the
// right thing: an expired session means "log in again", anything else means
// the token was tampered with or malformed.
var (
	ErrTokenExpired = errors.New("auth: token expired")
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// TokenService signs and verifies session tokens with an HMAC secret.
// The same secret must be used for both operations.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: SESSION_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The account email goes in the standard "sub"
// (Subject) claim; "iat" and "exp" carry issued-at and expiry.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs a session token for the given email, valid for
// TokenTTL from now. Signing algorithm is HS256 (HMAC-SHA256, symmetric).
func (s *TokenService) Issue(email string) (string, error) {
	return s.IssueWithDuration(email, TokenTTL)
}

// IssueWithDuration creates a token with a custom validity window.
// Used by tests to produce already-expired tokens.
func (s *TokenService) IssueWithDuration(email string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and checks a token string and returns the embedded email.
//
// Failures are classified: ErrTokenExpired when the expiry has passed,
// ErrTokenInvalid for a bad signature, wrong algorithm, wrong issuer, or a
// structurally malformed token. Restricting the accepted algorithms to
// HS256 blocks algorithm-confusion attacks ("none", RS256-with-public-key).
func (s *TokenService) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}

	if c.Subject == "" {
		return "", fmt.Errorf("%w: no subject", ErrTokenInvalid)
	}

	return c.Subject, nil
}
