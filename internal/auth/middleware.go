package auth

import (
	"context"
	"errors"
	"net/http"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the values we store.
type contextKey string

const emailKey contextKey = "email"

// CookieName is the session cookie holding the JWT.
const CookieName = "token"

// RequireAuth enforces authentication on protected routes.
//
// It reads the JWT from the session cookie, verifies it, and stores the
// account email in the request context. Missing or invalid tokens get a
// 401; an expired token gets a 401 with a distinct error code so clients
// can prompt a re-login rather than showing a generic failure.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := extractEmail(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				if errors.Is(err, ErrTokenExpired) {
					w.Write([]byte(`{"error":"token_expired","message":"session expired, please log in again"}`))
				} else {
					w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				}
				return
			}

			ctx := context.WithValue(r.Context(), emailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext retrieves the authenticated account email from the
// request context. Returns ("", false) for anonymous requests.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok && email != ""
}

// extractEmail reads the session cookie and verifies the JWT inside it.
func extractEmail(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}

	return tokens.Verify(cookie.Value)
}
