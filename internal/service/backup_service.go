package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"hindipath/internal/database"
	"hindipath/internal/logger"
)

// BackupVersion is written to every snapshot and required on import
const BackupVersion = "1.0"

// BackupData represents the complete database backup structure. Sessions
// are not included; restored users sign in again.
type BackupData struct {
	Version       string               `json:"version"`
	ExportedAt    time.Time            `json:"exported_at"`
	DatabaseType  string               `json:"database_type"`
	Users         []UserBackup         `json:"users"`
	Conversations []ConversationBackup `json:"conversations"`
	Progress      []ProgressBackup     `json:"progress"`
	Achievements  []AchievementBackup  `json:"achievements"`
	Words         []WordBackup         `json:"words"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"password_hash"`
	MyLang       string    `db:"my_lang" json:"my_lang"`
	TeachLevel   string    `db:"teach_level" json:"teach_level"`
	Onboarded    bool      `db:"onboarded" json:"onboarded"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ConversationBackup represents a conversation turn for backup
type ConversationBackup struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProgressBackup represents a lesson progress row for backup
type ProgressBackup struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Level     string    `db:"level" json:"level"`
	LessonID  string    `db:"lesson_id" json:"lesson_id"`
	Completed bool      `db:"completed" json:"completed"`
	WordsSeen int       `db:"words_seen" json:"words_seen"`
	LastAt    time.Time `db:"last_at" json:"last_at"`
}

// AchievementBackup represents an awarded badge for backup
type AchievementBackup struct {
	ID       int64     `db:"id" json:"id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	BadgeID  string    `db:"badge_id" json:"badge_id"`
	EarnedAt time.Time `db:"earned_at" json:"earned_at"`
}

// WordBackup represents a vocabulary log row for backup
type WordBackup struct {
	ID       int64     `db:"id" json:"id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	WordHi   string    `db:"word_hi" json:"word_hi"`
	LessonID string    `db:"lesson_id" json:"lesson_id"`
	LoggedAt time.Time `db:"logged_at" json:"logged_at"`
}

// Tables in dependency order; clearing runs in reverse
var backupTables = []string{"users", "conversations", "progress", "achievements", "word_log"}

// BackupService handles database backup and restore operations
type BackupService struct {
	db  *database.DB
	log *logger.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, log *logger.Logger) *BackupService {
	return &BackupService{db: db, log: log.With("component", "backup")}
}

// Export writes a JSON snapshot of every table to w
func (s *BackupService) Export(ctx context.Context, w io.Writer) (*BackupData, error) {
	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.GetDialect().DriverName(),
	}

	queries := []struct {
		table string
		dest  interface{}
		query string
	}{
		{"users", &backup.Users, "SELECT id, username, email, password_hash, my_lang, teach_level, onboarded, created_at FROM users ORDER BY id"},
		{"conversations", &backup.Conversations, "SELECT id, user_id, role, content, created_at FROM conversations ORDER BY id"},
		{"progress", &backup.Progress, "SELECT id, user_id, level, lesson_id, completed, words_seen, last_at FROM progress ORDER BY id"},
		{"achievements", &backup.Achievements, "SELECT id, user_id, badge_id, earned_at FROM achievements ORDER BY id"},
		{"word_log", &backup.Words, "SELECT id, user_id, word_hi, lesson_id, logged_at FROM word_log ORDER BY id"},
	}
	for _, q := range queries {
		if err := s.db.SelectContext(ctx, q.dest, q.query); err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", q.table, err)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info("database exported",
		"users", len(backup.Users),
		"conversations", len(backup.Conversations),
		"progress", len(backup.Progress),
		"achievements", len(backup.Achievements),
		"words", len(backup.Words))
	return backup, nil
}

// Import restores a snapshot from r in a single transaction. With clear set,
// every table is emptied first; otherwise rows are added to existing data and
// any id collision aborts the whole import.
func (s *BackupService) Import(ctx context.Context, r io.Reader, clear bool) (*BackupData, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return nil, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.log.Info("importing backup", "version", backup.Version, "exported_at", backup.ExportedAt, "source", backup.DatabaseType)

	err := s.db.InTx(ctx, func(tx *database.Tx) error {
		if clear {
			if err := clearTables(ctx, tx); err != nil {
				return err
			}
		}
		if err := importRows(ctx, tx, &backup); err != nil {
			return err
		}
		for _, table := range backupTables {
			if q := tx.GetDialect().SyncSequenceQuery(table); q != "" {
				if _, err := tx.ExecContext(ctx, q); err != nil {
					return fmt.Errorf("failed to sync %s id sequence: %w", table, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("database import completed", "users", len(backup.Users), "cleared", clear)
	return &backup, nil
}

func clearTables(ctx context.Context, tx *database.Tx) error {
	tables := append([]string{"sessions"}, backupTables...)
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+tables[i]); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", tables[i], err)
		}
	}
	return nil
}

func importRows(ctx context.Context, tx *database.Tx, b *BackupData) error {
	for _, u := range b.Users {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO users (id, username, email, password_hash, my_lang, teach_level, onboarded, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			u.ID, u.Username, u.Email, u.PasswordHash, u.MyLang, u.TeachLevel, u.Onboarded, u.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	for _, c := range b.Conversations {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO conversations (id, user_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.UserID, c.Role, c.Content, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import conversation turn %d: %w", c.ID, err)
		}
	}
	for _, p := range b.Progress {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO progress (id, user_id, level, lesson_id, completed, words_seen, last_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			p.ID, p.UserID, p.Level, p.LessonID, p.Completed, p.WordsSeen, p.LastAt)
		if err != nil {
			return fmt.Errorf("failed to import progress %d: %w", p.ID, err)
		}
	}
	for _, a := range b.Achievements {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO achievements (id, user_id, badge_id, earned_at) VALUES (?, ?, ?, ?)",
			a.ID, a.UserID, a.BadgeID, a.EarnedAt)
		if err != nil {
			return fmt.Errorf("failed to import achievement %d: %w", a.ID, err)
		}
	}
	for _, w := range b.Words {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO word_log (id, user_id, word_hi, lesson_id, logged_at) VALUES (?, ?, ?, ?, ?)",
			w.ID, w.UserID, w.WordHi, w.LessonID, w.LoggedAt)
		if err != nil {
			return fmt.Errorf("failed to import word %d: %w", w.ID, err)
		}
	}
	return nil
}
