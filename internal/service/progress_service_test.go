package service

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"hindipath/internal/apperr"
	"hindipath/internal/database"
	"hindipath/internal/models"
	"hindipath/internal/repository"
	"hindipath/internal/testutil"
)

func newProgressService(db *database.DB) *ProgressService {
	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewVocabularyRepository(db),
		repository.NewConversationRepository(db),
		newBadgeService(db),
	)
}

func TestCompleteLesson(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "asha")
	svc := newProgressService(db)

	earned, err := svc.CompleteLesson(ctx, user, "greetings")
	if err != nil {
		t.Fatalf("CompleteLesson() error = %v", err)
	}
	if got := badgeIDs(earned); !reflect.DeepEqual(got, []string{"first_lesson"}) {
		t.Errorf("first completion badges = %v", got)
	}

	earned, err = svc.CompleteLesson(ctx, user, "greetings")
	if err != nil {
		t.Fatal(err)
	}
	if len(earned) != 0 {
		t.Errorf("second completion badges = %v, want none", badgeIDs(earned))
	}

	lessons, err := repository.NewProgressRepository(db).ListLessons(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(lessons) != 1 || !lessons[0].Completed {
		t.Errorf("lessons = %+v, want one completed row", lessons)
	}

	_, err = svc.CompleteLesson(ctx, user, "  ")
	appErr := requireKind(t, err, apperr.KindValidation)
	if appErr.Message != MsgLessonRequired {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "asha")
	svc := newProgressService(db)

	empty, err := svc.Summary(ctx, user.ID)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if empty.WordCount != 0 || empty.MsgCount != 0 || len(empty.Lessons) != 0 || len(empty.Badges) != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
	if empty.Lessons == nil || empty.Badges == nil {
		t.Error("empty lists should encode as [] not null")
	}
	if len(empty.AllBadges) != 11 {
		t.Errorf("AllBadges has %d entries, want 11", len(empty.AllBadges))
	}

	vocab := repository.NewVocabularyRepository(db)
	for _, w := range []string{"पानी", "पानी", "खाना"} {
		if _, err := vocab.LogWord(ctx, user.ID, w, "food"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := vocab.LogWord(ctx, user.ID, "पानी", "chat"); err != nil {
		t.Fatal(err)
	}
	if _, err := repository.NewConversationRepository(db).AddTurn(ctx, user.ID, models.RoleUser, "hi"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CompleteLesson(ctx, user, "food"); err != nil {
		t.Fatal(err)
	}

	summary, err := svc.Summary(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if summary.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2 distinct words", summary.WordCount)
	}
	if summary.MsgCount != 1 {
		t.Errorf("MsgCount = %d, want 1", summary.MsgCount)
	}
	if len(summary.Lessons) != 1 || summary.Lessons[0].LessonID != "food" {
		t.Errorf("Lessons = %+v", summary.Lessons)
	}
	ids := make([]string, len(summary.Badges))
	for i, b := range summary.Badges {
		ids[i] = b.ID
		if b.EarnedAt.IsZero() {
			t.Errorf("badge %s has no earned_at", b.ID)
		}
	}
	if !reflect.DeepEqual(ids, []string{"first_word", "first_lesson"}) {
		t.Errorf("Badges = %v", ids)
	}

	words, err := svc.Vocabulary(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 3 {
		t.Errorf("Vocabulary() has %d entries, want 3", len(words))
	}
}

func TestExportVocabulary(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "asha")
	svc := newProgressService(db)

	if _, err := repository.NewVocabularyRepository(db).LogWord(ctx, user.ID, "पानी", "chat"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := svc.ExportVocabulary(ctx, user.ID, &buf); err != nil {
		t.Fatalf("ExportVocabulary() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("export is not an xlsx (zip) file")
	}
}
