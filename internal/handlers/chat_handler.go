package handlers

import (
	"net/http"

	"hindipath/internal/logger"
	"hindipath/internal/models"
	"hindipath/internal/service"
)

// ChatHandler exposes the tutor conversation
type ChatHandler struct {
	tutorService *service.TutorService
	log          *logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(tutorService *service.TutorService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{tutorService: tutorService, log: log}
}

type chatRequest struct {
	Message  string `json:"message"`
	LessonID string `json:"lesson_id"`
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	result, err := h.tutorService.Chat(r.Context(), GetUserFromContext(r.Context()), req.Message, req.LessonID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// History handles GET /api/chat/history
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	history, err := h.tutorService.History(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	if history == nil {
		history = []models.ConversationTurn{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

// Clear handles POST /api/chat/clear
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if err := h.tutorService.Clear(r.Context(), user.ID); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeOK(w)
}
