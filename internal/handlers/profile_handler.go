package handlers

import (
	"net/http"

	"hindipath/internal/logger"
	"hindipath/internal/models"
	"hindipath/internal/service"
)

// ProfileHandler serves the signed-in learner's account and preferences
type ProfileHandler struct {
	profileService *service.ProfileService
	log            *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, log: log}
}

type settingsRequest struct {
	MyLang     *string `json:"my_lang"`
	TeachLevel *string `json:"teach_level"`
	Onboarded  *bool   `json:"onboarded"`
}

type badgesResponse struct {
	OK        bool           `json:"ok"`
	NewBadges []models.Badge `json:"new_badges"`
}

// Me handles GET /api/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GetUserFromContext(r.Context()))
}

// UpdateSettings handles POST /api/settings
func (h *ProfileHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	newBadges, err := h.profileService.UpdateSettings(r.Context(), GetUserFromContext(r.Context()), service.SettingsUpdate{
		MyLang:     req.MyLang,
		TeachLevel: req.TeachLevel,
		Onboarded:  req.Onboarded,
	})
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, badgesResponse{OK: true, NewBadges: newBadges})
}
