package models

import "time"

// Badge is a catalog entry
type Badge struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"desc"`
}

// BadgeAward records that a user holds a badge
type BadgeAward struct {
	ID       int64     `db:"id"`
	UserID   int64     `db:"user_id"`
	BadgeID  string    `db:"badge_id"`
	EarnedAt time.Time `db:"earned_at"`
}

// EarnedBadge is a catalog entry joined with the time it was earned
type EarnedBadge struct {
	Badge
	EarnedAt time.Time `json:"earned_at"`
}
