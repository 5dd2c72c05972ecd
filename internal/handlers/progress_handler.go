package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hindipath/internal/logger"
	"hindipath/internal/service"
)

// ProgressHandler serves progress, badges and vocabulary
type ProgressHandler struct {
	progressService *service.ProgressService
	log             *logger.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, log: log}
}

type completeLessonRequest struct {
	LessonID string `json:"lesson_id"`
}

// Progress handles GET /api/progress
func (h *ProgressHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	summary, err := h.progressService.Summary(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// CompleteLesson handles POST /api/progress/complete_lesson
func (h *ProgressHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	var req completeLessonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	newBadges, err := h.progressService.CompleteLesson(r.Context(), GetUserFromContext(r.Context()), req.LessonID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, badgesResponse{OK: true, NewBadges: newBadges})
}

// Vocabulary handles GET /api/vocabulary
func (h *ProgressHandler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	words, err := h.progressService.Vocabulary(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"words": words})
}

// ExportVocabulary handles GET /api/vocabulary/export
func (h *ProgressHandler) ExportVocabulary(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	// Buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.progressService.ExportVocabulary(r.Context(), user.ID, &buf); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	filename := fmt.Sprintf("hindipath-vocabulary-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
