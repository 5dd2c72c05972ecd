package repository

import (
	"context"
	"fmt"

	"hindipath/internal/database"
	"hindipath/internal/models"
)

// BadgeRepository persists badge awards; the catalog itself is configuration
type BadgeRepository struct {
	db database.DBTX
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db database.DBTX) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// Award records a badge for a user and reports whether it was newly earned.
// Awarding a badge the user already holds is a no-op.
func (r *BadgeRepository) Award(ctx context.Context, userID int64, badgeID string) (bool, error) {
	query := r.db.GetDialect().InsertIgnore("achievements", "user_id", "badge_id")
	result, err := r.db.ExecContext(ctx, query, userID, badgeID)
	if err != nil {
		return false, fmt.Errorf("failed to award badge %s: %w", badgeID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to award badge %s: %w", badgeID, err)
	}
	return n > 0, nil
}

// ListAwards returns the user's awards in the order they were earned
func (r *BadgeRepository) ListAwards(ctx context.Context, userID int64) ([]models.BadgeAward, error) {
	awards := []models.BadgeAward{}
	query := "SELECT id, user_id, badge_id, earned_at FROM achievements WHERE user_id = ? ORDER BY earned_at ASC, id ASC"
	if err := r.db.SelectContext(ctx, &awards, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list badge awards: %w", err)
	}
	return awards, nil
}

// ActivityCounters are the per-user counts badge thresholds are checked against
type ActivityCounters struct {
	DistinctWords    int `db:"distinct_words"`
	CompletedLessons int `db:"completed_lessons"`
	UserTurns        int `db:"user_turns"`
}

// Counters loads all three badge counters in one round trip
func (r *BadgeRepository) Counters(ctx context.Context, userID int64) (ActivityCounters, error) {
	query := `
		SELECT
			(SELECT COUNT(DISTINCT word_hi) FROM word_log WHERE user_id = ?) AS distinct_words,
			(SELECT COUNT(*) FROM progress WHERE user_id = ? AND completed = ?) AS completed_lessons,
			(SELECT COUNT(*) FROM conversations WHERE user_id = ? AND role = ?) AS user_turns
	`
	var c ActivityCounters
	if err := r.db.GetContext(ctx, &c, query, userID, userID, true, userID, models.RoleUser); err != nil {
		return c, fmt.Errorf("failed to load activity counters: %w", err)
	}
	return c, nil
}
