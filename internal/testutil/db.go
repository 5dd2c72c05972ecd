// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"hindipath/internal/database"
	"hindipath/internal/models"
	"hindipath/internal/repository"
)

// NewDB opens a migrated SQLite database in a temp dir, closed on cleanup.
func NewDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "hindipath_test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	if _, err := db.RunMigrations(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// CreateUser inserts a user with default preferences. The password hash is a
// placeholder; use the auth service when a real login is needed.
func CreateUser(t *testing.T, db *database.DB, username string) *models.User {
	t.Helper()

	user, err := repository.NewUserRepository(db).CreateUser(context.Background(), username, username+"@example.com", "not-a-real-hash")
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}
