package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"hindipath/internal/apperr"
	"hindipath/internal/completion"
	"hindipath/internal/database"
	"hindipath/internal/logger"
	"hindipath/internal/models"
	"hindipath/internal/prompt"
	"hindipath/internal/repository"
)

const (
	// ContextTurns is how many recent turns are sent upstream with each message
	ContextTurns = 20
	// maxLoggedWords caps the vocabulary picked from a single reply
	maxLoggedWords = 10

	MsgEmptyMessage  = "Empty message"
	MsgNotConfigured = "Service not configured. Please contact admin."
)

var devanagariWord = regexp.MustCompile(`[\x{0900}-\x{097F}]+`)

// Completer produces the tutor's reply for a system prompt and conversation
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, system string, history []completion.Message) (string, error)
}

// ChatResult is the outcome of one learner message
type ChatResult struct {
	Reply     string         `json:"reply"`
	NewBadges []models.Badge `json:"new_badges"`
}

// TutorService runs the conversation with the tutor and records what the
// learner was taught
type TutorService struct {
	db            *database.DB
	conversations *repository.ConversationRepository
	vocabulary    *repository.VocabularyRepository
	completer     Completer
	badges        *BadgeService
	log           *logger.Logger
}

// NewTutorService creates a new tutor service
func NewTutorService(db *database.DB, completer Completer, badgeService *BadgeService, log *logger.Logger) *TutorService {
	return &TutorService{
		db:            db,
		conversations: repository.NewConversationRepository(db),
		vocabulary:    repository.NewVocabularyRepository(db),
		completer:     completer,
		badges:        badgeService,
		log:           log.With("component", "tutor"),
	}
}

// Chat sends the learner's message to the tutor and returns the reply.
// The learner's turn is stored before the upstream call, so it survives an
// upstream failure.
func (s *TutorService) Chat(ctx context.Context, user *models.User, message, lessonID string) (*ChatResult, error) {
	message = strings.TrimSpace(message)
	lessonID = strings.TrimSpace(lessonID)
	if message == "" {
		return nil, apperr.Validation(MsgEmptyMessage)
	}
	if !s.completer.Configured() {
		return nil, apperr.Unavailable(MsgNotConfigured)
	}

	if _, err := s.conversations.AddTurn(ctx, user.ID, models.RoleUser, message); err != nil {
		return nil, err
	}

	recent, err := s.conversations.RecentTurns(ctx, user.ID, ContextTurns)
	if err != nil {
		return nil, err
	}
	history := make([]completion.Message, len(recent))
	for i, turn := range recent {
		history[i] = completion.Message{Role: turn.Role, Content: turn.Content}
	}

	reply, err := s.completer.Complete(ctx, prompt.Build(prompt.ForUser(user)), history)
	if err != nil {
		return nil, err
	}

	err = s.db.InTx(ctx, func(tx *database.Tx) error {
		if _, err := repository.NewConversationRepository(tx).AddTurn(ctx, user.ID, models.RoleAssistant, reply); err != nil {
			return err
		}
		if lessonID == "" {
			return nil
		}
		return repository.NewProgressRepository(tx).RecordWordSeen(ctx, user.ID, lessonID, user.Level())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}

	s.logVocabulary(ctx, user.ID, reply, lessonID)

	newBadges, err := s.badges.Evaluate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if newBadges == nil {
		newBadges = []models.Badge{}
	}
	return &ChatResult{Reply: reply, NewBadges: newBadges}, nil
}

// logVocabulary records the Hindi words of a reply. A word that cannot be
// stored is logged and skipped.
func (s *TutorService) logVocabulary(ctx context.Context, userID int64, reply, lessonID string) {
	tag := lessonID
	if tag == "" {
		tag = models.DefaultLessonTag
	}
	for _, word := range ExtractHindiWords(reply) {
		if _, err := s.vocabulary.LogWord(ctx, userID, word, tag); err != nil {
			s.log.Warn("vocabulary word not logged", "user_id", userID, "word", word, "lesson_id", tag, "error", err)
		}
	}
}

// ExtractHindiWords returns the distinct Devanagari words among the first
// ten Devanagari runs of text in first-seen order, dropping single characters
func ExtractHindiWords(text string) []string {
	var words []string
	seen := make(map[string]bool)
	for _, w := range devanagariWord.FindAllString(text, maxLoggedWords) {
		if utf8.RuneCountInString(w) > 1 && !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}

// History returns the user's full conversation, oldest first
func (s *TutorService) History(ctx context.Context, userID int64) ([]models.ConversationTurn, error) {
	return s.conversations.History(ctx, userID)
}

// Clear deletes the user's conversation
func (s *TutorService) Clear(ctx context.Context, userID int64) error {
	return s.conversations.Clear(ctx, userID)
}
