package models

import "time"

// Native languages a learner can pick
const (
	LangTamil   = "tamil"
	LangEnglish = "english"
	LangBoth    = "both"
)

// Proficiency levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// User represents a learner account
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	MyLang       string    `db:"my_lang" json:"my_lang"`
	TeachLevel   string    `db:"teach_level" json:"teach_level"`
	Onboarded    bool      `db:"onboarded" json:"onboarded"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Level returns the user's proficiency level, defaulting to beginner
func (u *User) Level() string {
	if u.TeachLevel == "" {
		return LevelBeginner
	}
	return u.TeachLevel
}

// Session represents an authenticated session
type Session struct {
	ID        string    `db:"id"`
	UserID    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValidLang reports whether lang is a supported native language
func IsValidLang(lang string) bool {
	switch lang {
	case LangTamil, LangEnglish, LangBoth:
		return true
	}
	return false
}

// IsValidLevel reports whether level is a supported proficiency level
func IsValidLevel(level string) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}
