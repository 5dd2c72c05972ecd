package handlers

import (
	"context"
	"net/http"
	"time"

	"hindipath/internal/apperr"
	"hindipath/internal/logger"
	"hindipath/internal/models"
	"hindipath/internal/security"
	"hindipath/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
	trustProxy  bool
	log         *logger.Logger
}

// NewMiddleware creates a new middleware instance
// trustProxy makes the rate limiter key on proxy headers instead of the peer address
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter, trustProxy bool, log *logger.Logger) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
		trustProxy:  trustProxy,
		log:         log,
	}
}

// sessionUser resolves the session cookie. A cookie the auth service rejects
// is cleared; store failures leave it in place.
func (m *Middleware) sessionUser(w http.ResponseWriter, r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, apperr.Auth(service.MsgAuthRequired)
	}

	user, err := m.authService.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		if apperr.Is(err, apperr.KindAuth) {
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
		}
		return nil, err
	}
	return user, nil
}

// RequireAuth is middleware for pages; visitors without a session are sent to /login
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := m.sessionUser(w, r)
		if err != nil {
			if !apperr.Is(err, apperr.KindAuth) {
				m.log.Error("session lookup failed", "error", err)
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireAPIAuth is middleware for the JSON API; it answers 401 instead of redirecting
func (m *Middleware) RequireAPIAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := m.sessionUser(w, r)
		if err != nil {
			respondWithError(w, m.log, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that exceed the per-IP request budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r, m.trustProxy)
		if !m.limiter.Allow(ip) {
			m.log.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			respondWithError(w, m.log, apperr.RateLimited(MsgTooManyRequests))
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// Logging middleware logs HTTP requests
func Logging(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
