package handlers

import (
	"context"
	"net/http"
	"strconv"

	"hindipath/internal/logger"
)

// Synthesizer turns text into audio bytes
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// TTSHandler serves spoken audio for tutor text
type TTSHandler struct {
	synthesizer Synthesizer
	log         *logger.Logger
}

// NewTTSHandler creates a new TTS handler
func NewTTSHandler(synthesizer Synthesizer, log *logger.Logger) *TTSHandler {
	return &TTSHandler{synthesizer: synthesizer, log: log}
}

type ttsRequest struct {
	Text string `json:"text"`
}

// Speak handles POST /api/tts
func (h *TTSHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	audio, err := h.synthesizer.Synthesize(r.Context(), req.Text)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
