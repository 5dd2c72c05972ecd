package repository

import (
	"context"
	"fmt"

	"hindipath/internal/database"
	"hindipath/internal/models"
)

// ConversationRepository stores the turns exchanged with the tutor
type ConversationRepository struct {
	db database.DBTX
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db database.DBTX) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// AddTurn appends a turn to the user's conversation
func (r *ConversationRepository) AddTurn(ctx context.Context, userID int64, role, content string) (int64, error) {
	query := "INSERT INTO conversations (user_id, role, content) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, userID, role, content)
	if err != nil {
		return 0, fmt.Errorf("failed to add conversation turn: %w", err)
	}
	return id, nil
}

// RecentTurns returns the latest limit turns, oldest first
func (r *ConversationRepository) RecentTurns(ctx context.Context, userID int64, limit int) ([]models.ConversationTurn, error) {
	query := `
		SELECT id, user_id, role, content, created_at FROM conversations
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?
	`
	var turns []models.ConversationTurn
	if err := r.db.SelectContext(ctx, &turns, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to query recent turns: %w", err)
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// History returns the whole conversation in order
func (r *ConversationRepository) History(ctx context.Context, userID int64) ([]models.ConversationTurn, error) {
	query := "SELECT id, user_id, role, content, created_at FROM conversations WHERE user_id = ? ORDER BY id ASC"
	turns := []models.ConversationTurn{}
	if err := r.db.SelectContext(ctx, &turns, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query conversation history: %w", err)
	}
	return turns, nil
}

// Clear deletes every turn of the user's conversation
func (r *ConversationRepository) Clear(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM conversations WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}
	return nil
}

// CountUserTurns counts the messages the learner has sent
func (r *ConversationRepository) CountUserTurns(ctx context.Context, userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM conversations WHERE user_id = ? AND role = ?"
	if err := r.db.GetContext(ctx, &count, query, userID, models.RoleUser); err != nil {
		return 0, fmt.Errorf("failed to count user turns: %w", err)
	}
	return count, nil
}
