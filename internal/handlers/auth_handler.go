package handlers

import (
	"net/http"
	"path/filepath"

	"hindipath/internal/logger"
	"hindipath/internal/security"
	"hindipath/internal/service"
)

// AuthHandler handles authentication-related HTTP requests and the static
// pages around them
type AuthHandler struct {
	authService *service.AuthService
	staticPath  string
	log         *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, staticPath string, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		staticPath:  staticPath,
		log:         log,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	token, _, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, token.Value, token.ExpiresAt))
	writeOK(w)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	token, _, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, token.Value, token.ExpiresAt))
	writeOK(w)
}

func (h *AuthHandler) endSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			h.log.Warn("logout failed", "error", err)
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
}

// APILogout handles POST /api/logout
func (h *AuthHandler) APILogout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	writeOK(w)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// Index redirects the bare root to the landing page
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// PublicPage serves a static page to signed-out visitors. Signed-in users go
// straight to the app.
func (h *AuthHandler) PublicPage(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if _, err := h.authService.ValidateSession(r.Context(), cookie.Value); err == nil {
				http.Redirect(w, r, "/app", http.StatusSeeOther)
				return
			}
		}
		http.ServeFile(w, r, filepath.Join(h.staticPath, file))
	}
}

// App serves the learning app page; wrap with RequireAuth
func (h *AuthHandler) App(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.staticPath, "app.html"))
}
