package models

import "time"

// Speaker roles of a conversation turn
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message exchanged with the tutor
type ConversationTurn struct {
	ID        int64     `db:"id" json:"-"`
	UserID    int64     `db:"user_id" json:"-"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
