package repository

import (
	"context"
	"fmt"

	"hindipath/internal/database"
	"hindipath/internal/models"
)

const progressColumns = "id, user_id, level, lesson_id, completed, words_seen, last_at"

// ProgressRepository handles per-lesson progress rows. There is at most one
// row per (user, lesson); every write is an upsert.
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// RecordWordSeen bumps words_seen for the lesson, creating the row with
// words_seen = 1 at the given level if it does not exist yet
func (r *ProgressRepository) RecordWordSeen(ctx context.Context, userID int64, lessonID, level string) error {
	update := "UPDATE progress SET words_seen = words_seen + 1, last_at = CURRENT_TIMESTAMP WHERE user_id = ? AND lesson_id = ?"
	insert := "INSERT INTO progress (user_id, level, lesson_id, completed, words_seen) VALUES (?, ?, ?, ?, ?)"
	if err := r.upsert(ctx, update, []interface{}{userID, lessonID}, insert, []interface{}{userID, level, lessonID, false, 1}); err != nil {
		return fmt.Errorf("failed to record word seen: %w", err)
	}
	return nil
}

// MarkCompleted flags the lesson as completed, creating the row at the given
// level if it does not exist yet
func (r *ProgressRepository) MarkCompleted(ctx context.Context, userID int64, lessonID, level string) error {
	update := "UPDATE progress SET completed = ?, last_at = CURRENT_TIMESTAMP WHERE user_id = ? AND lesson_id = ?"
	insert := "INSERT INTO progress (user_id, level, lesson_id, completed, words_seen) VALUES (?, ?, ?, ?, ?)"
	if err := r.upsert(ctx, update, []interface{}{true, userID, lessonID}, insert, []interface{}{userID, level, lessonID, true, 0}); err != nil {
		return fmt.Errorf("failed to mark lesson completed: %w", err)
	}
	return nil
}

// upsert tries the update first and inserts when no row matched. A concurrent
// insert that wins the race trips the unique key; the update is then retried
// once so the caller's change still lands on the existing row.
func (r *ProgressRepository) upsert(ctx context.Context, update string, updateArgs []interface{}, insert string, insertArgs []interface{}) error {
	updated, err := r.execAffected(ctx, update, updateArgs...)
	if err != nil {
		return err
	}
	if updated > 0 {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, insert, insertArgs...); err != nil {
		if _, ok := r.db.GetDialect().UniqueViolation(err); !ok {
			return err
		}
		_, err = r.execAffected(ctx, update, updateArgs...)
		return err
	}
	return nil
}

func (r *ProgressRepository) execAffected(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// GetLesson returns the progress row for one lesson, or nil
func (r *ProgressRepository) GetLesson(ctx context.Context, userID int64, lessonID string) (*models.LessonProgress, error) {
	var lessons []models.LessonProgress
	query := "SELECT " + progressColumns + " FROM progress WHERE user_id = ? AND lesson_id = ?"
	if err := r.db.SelectContext(ctx, &lessons, query, userID, lessonID); err != nil {
		return nil, fmt.Errorf("failed to get lesson progress: %w", err)
	}
	if len(lessons) == 0 {
		return nil, nil
	}
	return &lessons[0], nil
}

// ListLessons returns every lesson the user has touched, oldest row first
func (r *ProgressRepository) ListLessons(ctx context.Context, userID int64) ([]models.LessonProgress, error) {
	lessons := []models.LessonProgress{}
	query := "SELECT " + progressColumns + " FROM progress WHERE user_id = ? ORDER BY id ASC"
	if err := r.db.SelectContext(ctx, &lessons, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list lesson progress: %w", err)
	}
	return lessons, nil
}

// CountCompleted counts the user's completed lessons
func (r *ProgressRepository) CountCompleted(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM progress WHERE user_id = ? AND completed = ?", userID, true); err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}
	return count, nil
}
