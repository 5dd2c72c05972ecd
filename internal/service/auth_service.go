package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hindipath/internal/apperr"
	"hindipath/internal/logger"
	"hindipath/internal/models"
	"hindipath/internal/repository"
	"hindipath/internal/security"
	"hindipath/internal/validation"
)

// Messages shown for authentication failures
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgAuthRequired       = "Authentication required"
	MsgUsernameTaken      = "Username already taken"
	MsgEmailTaken         = "Email already registered"
)

// WelcomeMailer sends the post-registration email
type WelcomeMailer interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
}

// SessionToken is the signed cookie value for a server-side session
type SessionToken struct {
	Value     string
	ExpiresAt time.Time
}

// AuthService handles registration, login and session validation
type AuthService struct {
	userRepo        *repository.UserRepository
	signer          *security.TokenSigner
	sessionDuration time.Duration
	mailer          WelcomeMailer
	log             *logger.Logger
}

// NewAuthService creates a new auth service. mailer may be nil.
func NewAuthService(userRepo *repository.UserRepository, signer *security.TokenSigner, sessionDuration time.Duration, mailer WelcomeMailer, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		signer:          signer,
		sessionDuration: sessionDuration,
		mailer:          mailer,
		log:             log.With("component", "auth"),
	}
}

// Register creates a new account with default preferences and signs it in.
// Input is validated before anything is written.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*SessionToken, *models.User, error) {
	username = strings.TrimSpace(username)
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateRegistration(username, email, password); err != nil {
		return nil, nil, err
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing username: %w", err)
	}
	if existing != nil {
		return nil, nil, apperr.Conflict("username", MsgUsernameTaken)
	}
	existing, err = s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, nil, apperr.Conflict("email", MsgEmailTaken)
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The lookups above can race with a concurrent sign-up; the unique keys
	// have the final word.
	user, err := s.userRepo.CreateUser(ctx, username, email, passwordHash)
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return nil, nil, apperr.Conflict("username", MsgUsernameTaken)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return nil, nil, apperr.Conflict("email", MsgEmailTaken)
	case err != nil:
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user registered", "user_id", user.ID)

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.Username); err != nil {
			s.log.Warn("welcome email failed", "user_id", user.ID, "error", err)
		}
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return token, user, nil
}

// Login authenticates a user and creates a session. Unknown email and wrong
// password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*SessionToken, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, apperr.Auth(MsgInvalidCredentials)
	}

	if err := s.userRepo.DeleteExpiredSessions(ctx, user.ID); err != nil {
		s.log.Warn("failed to purge expired sessions", "user_id", user.ID, "error", err)
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return token, user, nil
}

func (s *AuthService) startSession(ctx context.Context, userID int64) (*SessionToken, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	if _, err := s.userRepo.CreateSession(ctx, sessionID, userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	value, err := s.signer.Sign(sessionID, userID, expiresAt)
	if err != nil {
		return nil, err
	}
	return &SessionToken{Value: value, ExpiresAt: expiresAt}, nil
}

// ValidateSession resolves a cookie value to its user
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	sessionID, userID, err := s.signer.Parse(token)
	if err != nil {
		return nil, apperr.Auth(MsgAuthRequired)
	}

	session, err := s.userRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, apperr.Auth(MsgAuthRequired)
	}

	if session.IsExpired() {
		if err := s.userRepo.DeleteSession(ctx, sessionID); err != nil {
			s.log.Warn("failed to delete expired session", "user_id", userID, "error", err)
		}
		return nil, apperr.Auth(MsgAuthRequired)
	}

	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperr.Auth(MsgAuthRequired)
	}
	return user, nil
}

// Logout invalidates a session. Tokens that do not verify are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sessionID, _, err := s.signer.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.userRepo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}
