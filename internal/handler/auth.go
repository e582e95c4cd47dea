package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/readability-analyzer/internal/auth"
	"github.com/sakif/readability-analyzer/internal/service"
)

// AuthHandler manages registration, login, logout, and the /api/me lookup.
//
// The session token never travels in a response body: login sets it as an
// HttpOnly cookie so page scripts cannot read it, and logout clears the
// cookie. The token stays technically valid until its 12-hour expiry
// (there is no server-side revocation), but without the cookie the browser
// can't send it.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// credentials is the request body for register and login.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/auth/register
// Body: {"email": "...", "password": "..."}
//
// 201 on success, 409 if the account already exists. Registration does not
// log the user in; the client follows up with a login request.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.logger.Warn("invalid register body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	if err := h.svc.Register(r.Context(), creds.Email, creds.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "account created"})
}

// HandleLogin verifies credentials and sets the session cookie.
//
// HTTP: POST /api/auth/login
// Body: {"email": "...", "password": "..."}
//
// Failure modes are distinct: 404 means the account doesn't exist (the
// client should suggest registering), 401 means the password is wrong.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.logger.Warn("invalid login body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	token, err := h.svc.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	// HttpOnly so scripts can't read it; SameSite=Lax so it isn't sent on
	// cross-site POSTs. Secure should be enabled behind HTTPS.
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged in"})
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /api/auth/logout
//
// POST rather than GET: logout is state-changing, and GET would be open to
// CSRF and browser prefetching.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // delete immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the currently authenticated user's record.
//
// HTTP: GET /api/me
// Auth: required (RequireAuth puts the email in the context)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	user, err := h.svc.GetUser(r.Context(), email)
	if err != nil {
		h.logger.Error("HandleMe: lookup failed", slog.String("email", email))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
