package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/readability-analyzer/internal/auth"
	"github.com/sakif/readability-analyzer/internal/model"
	"github.com/sakif/readability-analyzer/internal/service"
)

// ProfileHandler manages the profile editor endpoints. Both routes sit
// behind RequireAuth and always operate on the logged-in account; the
// email comes from the verified session, never from the request body.
type ProfileHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc *service.AuthService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, logger: logger}
}

// HandleGet returns the profile fields, empty strings for anything unset.
//
// HTTP: GET /api/profile
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	profile, err := h.svc.Profile(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleSave overwrites the profile fields.
//
// HTTP: PUT /api/profile
// Body: {"name": "...", "ageGroup": "18-25", "language": "English"}
//
// The save is an unconditional overwrite of all three fields, so a client
// should send the full profile, not a diff.
func (h *ProfileHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	var profile model.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.logger.Warn("invalid profile body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	if err := h.svc.SaveProfile(r.Context(), email, profile); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "profile saved"})
}
