package models

import "time"

// DefaultLessonTag tags vocabulary picked up outside any lesson
const DefaultLessonTag = "chat"

// LessonProgress tracks a user's activity within one lesson
type LessonProgress struct {
	ID        int64     `db:"id" json:"-"`
	UserID    int64     `db:"user_id" json:"-"`
	Level     string    `db:"level" json:"level"`
	LessonID  string    `db:"lesson_id" json:"lesson_id"`
	Completed bool      `db:"completed" json:"completed"`
	WordsSeen int       `db:"words_seen" json:"words_seen"`
	LastAt    time.Time `db:"last_at" json:"last_at"`
}

// VocabularyEntry is a Hindi word the learner has been shown
type VocabularyEntry struct {
	ID       int64     `db:"id" json:"-"`
	UserID   int64     `db:"user_id" json:"-"`
	Word     string    `db:"word_hi" json:"word"`
	LessonID string    `db:"lesson_id" json:"lesson_id"`
	LoggedAt time.Time `db:"logged_at" json:"logged_at"`
}
