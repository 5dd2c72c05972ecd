package service

import (
	"context"
	"errors"
	"testing"

	"hindipath/internal/apperr"
	"hindipath/internal/badges"
	"hindipath/internal/completion"
	"hindipath/internal/database"
	"hindipath/internal/models"
)

type fakeCompleter struct {
	configured bool
	reply      string
	err        error
	calls      int
	system     string
	history    []completion.Message
}

func (f *fakeCompleter) Configured() bool { return f.configured }

func (f *fakeCompleter) Complete(ctx context.Context, system string, history []completion.Message) (string, error) {
	f.calls++
	f.system = system
	f.history = history
	return f.reply, f.err
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	f.sent = append(f.sent, toEmail)
	return f.err
}

func newBadgeService(db *database.DB) *BadgeService {
	return NewBadgeService(db, badges.DefaultCatalog())
}

func badgeIDs(list []models.Badge) []string {
	ids := make([]string, len(list))
	for i, b := range list {
		ids[i] = b.ID
	}
	return ids
}

func requireKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected %v error, got %v", kind, err)
	}
	if appErr.Kind != kind {
		t.Fatalf("error kind = %v, want %v (%v)", appErr.Kind, kind, err)
	}
	return appErr
}
