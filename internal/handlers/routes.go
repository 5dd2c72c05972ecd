package handlers

import (
	"net/http"

	"hindipath/internal/logger"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Middleware *Middleware
	Auth       *AuthHandler
	Profile    *ProfileHandler
	Chat       *ChatHandler
	Progress   *ProgressHandler
	TTS        *TTSHandler
	Health     *HealthHandler
}

// NewRouter registers every route and wraps the mux with access logging
func NewRouter(h Handlers, staticPath string, log *logger.Logger) http.Handler {
	mw := h.Middleware
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticPath))))
	mux.HandleFunc("GET /healthz", h.Health.Health)

	// Pages
	mux.HandleFunc("GET /", h.Auth.Index)
	mux.HandleFunc("GET /home", h.Auth.PublicPage("home.html"))
	mux.HandleFunc("GET /login", h.Auth.PublicPage("login.html"))
	mux.HandleFunc("GET /register", h.Auth.PublicPage("register.html"))
	mux.HandleFunc("GET /app", mw.RequireAuth(h.Auth.App))
	mux.HandleFunc("GET /logout", h.Auth.Logout)

	// Auth API
	mux.HandleFunc("POST /api/register", mw.RateLimit(h.Auth.Register))
	mux.HandleFunc("POST /api/login", mw.RateLimit(h.Auth.Login))
	mux.HandleFunc("POST /api/logout", h.Auth.APILogout)

	// Learner API
	mux.HandleFunc("GET /api/me", mw.RequireAPIAuth(h.Profile.Me))
	mux.HandleFunc("POST /api/settings", mw.RequireAPIAuth(h.Profile.UpdateSettings))
	mux.HandleFunc("POST /api/chat", mw.RequireAPIAuth(h.Chat.Chat))
	mux.HandleFunc("GET /api/chat/history", mw.RequireAPIAuth(h.Chat.History))
	mux.HandleFunc("POST /api/chat/clear", mw.RequireAPIAuth(h.Chat.Clear))
	mux.HandleFunc("GET /api/progress", mw.RequireAPIAuth(h.Progress.Progress))
	mux.HandleFunc("POST /api/progress/complete_lesson", mw.RequireAPIAuth(h.Progress.CompleteLesson))
	mux.HandleFunc("GET /api/vocabulary", mw.RequireAPIAuth(h.Progress.Vocabulary))
	mux.HandleFunc("GET /api/vocabulary/export", mw.RequireAPIAuth(h.Progress.ExportVocabulary))
	mux.HandleFunc("POST /api/tts", mw.RequireAPIAuth(h.TTS.Speak))

	return Logging(log, mux)
}
