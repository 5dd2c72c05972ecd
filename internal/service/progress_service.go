package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"hindipath/internal/apperr"
	"hindipath/internal/export"
	"hindipath/internal/models"
	"hindipath/internal/repository"
)

// MsgLessonRequired is returned when a lesson completion names no lesson
const MsgLessonRequired = "lesson_id required"

// ProgressSummary is the learner's dashboard data
type ProgressSummary struct {
	WordCount int                     `json:"word_count"`
	MsgCount  int                     `json:"msg_count"`
	Lessons   []models.LessonProgress `json:"lessons"`
	Badges    []models.EarnedBadge    `json:"badges"`
	AllBadges []models.Badge          `json:"all_badges"`
}

// ProgressService reports learning progress and records completed lessons
type ProgressService struct {
	progress      *repository.ProgressRepository
	vocabulary    *repository.VocabularyRepository
	conversations *repository.ConversationRepository
	badges        *BadgeService
}

// NewProgressService creates a new progress service
func NewProgressService(progress *repository.ProgressRepository, vocabulary *repository.VocabularyRepository, conversations *repository.ConversationRepository, badgeService *BadgeService) *ProgressService {
	return &ProgressService{
		progress:      progress,
		vocabulary:    vocabulary,
		conversations: conversations,
		badges:        badgeService,
	}
}

// Summary gathers counts, lessons and badges for a user
func (s *ProgressService) Summary(ctx context.Context, userID int64) (*ProgressSummary, error) {
	words, err := s.vocabulary.CountDistinctWords(ctx, userID)
	if err != nil {
		return nil, err
	}
	turns, err := s.conversations.CountUserTurns(ctx, userID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.progress.ListLessons(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned, err := s.badges.Earned(ctx, userID)
	if err != nil {
		return nil, err
	}

	if lessons == nil {
		lessons = []models.LessonProgress{}
	}
	return &ProgressSummary{
		WordCount: words,
		MsgCount:  turns,
		Lessons:   lessons,
		Badges:    earned,
		AllBadges: s.badges.Catalog().All(),
	}, nil
}

// CompleteLesson marks a lesson completed and returns any badges it earned
func (s *ProgressService) CompleteLesson(ctx context.Context, user *models.User, lessonID string) ([]models.Badge, error) {
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return nil, apperr.Validation(MsgLessonRequired)
	}
	if err := s.progress.MarkCompleted(ctx, user.ID, lessonID, user.Level()); err != nil {
		return nil, err
	}

	newBadges, err := s.badges.Evaluate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if newBadges == nil {
		newBadges = []models.Badge{}
	}
	return newBadges, nil
}

// Vocabulary returns the words logged for a user, newest first
func (s *ProgressService) Vocabulary(ctx context.Context, userID int64) ([]models.VocabularyEntry, error) {
	words, err := s.vocabulary.ListWords(ctx, userID)
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []models.VocabularyEntry{}
	}
	return words, nil
}

// ExportVocabulary writes the user's vocabulary and lessons as a spreadsheet
func (s *ProgressService) ExportVocabulary(ctx context.Context, userID int64, w io.Writer) error {
	words, err := s.vocabulary.ListWords(ctx, userID)
	if err != nil {
		return err
	}
	lessons, err := s.progress.ListLessons(ctx, userID)
	if err != nil {
		return err
	}
	if err := export.WriteWorkbook(w, words, lessons); err != nil {
		return fmt.Errorf("failed to export vocabulary: %w", err)
	}
	return nil
}
