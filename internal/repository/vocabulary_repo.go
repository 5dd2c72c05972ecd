package repository

import (
	"context"
	"fmt"

	"hindipath/internal/database"
	"hindipath/internal/models"
)

// VocabularyRepository handles the log of Hindi words shown to each user
type VocabularyRepository struct {
	db database.DBTX
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db database.DBTX) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

// LogWord records a word under a lesson. A (user, word, lesson) triple that is
// already logged is ignored; the return value reports whether a row was added.
func (r *VocabularyRepository) LogWord(ctx context.Context, userID int64, word, lessonID string) (bool, error) {
	query := r.db.GetDialect().InsertIgnore("word_log", "user_id", "word_hi", "lesson_id")
	result, err := r.db.ExecContext(ctx, query, userID, word, lessonID)
	if err != nil {
		return false, fmt.Errorf("failed to log word: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to log word: %w", err)
	}
	return n > 0, nil
}

// CountDistinctWords counts distinct words regardless of lesson
func (r *VocabularyRepository) CountDistinctWords(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(DISTINCT word_hi) FROM word_log WHERE user_id = ?", userID); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// ListWords returns the user's vocabulary log, newest first
func (r *VocabularyRepository) ListWords(ctx context.Context, userID int64) ([]models.VocabularyEntry, error) {
	words := []models.VocabularyEntry{}
	query := "SELECT id, user_id, word_hi, lesson_id, logged_at FROM word_log WHERE user_id = ? ORDER BY id DESC"
	if err := r.db.SelectContext(ctx, &words, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return words, nil
}
