package service

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"hindipath/internal/apperr"
	"hindipath/internal/database"
	"hindipath/internal/logger"
	"hindipath/internal/models"
	"hindipath/internal/repository"
	"hindipath/internal/testutil"
)

const twoWordReply = "नमस्ते | Namaste | Hello | வணக்கம்\n(na-mas-tay)\nधन्यवाद | Dhanyavaad | Thank you | நன்றி\nShabash! What does नमस्ते mean?"

func newTutor(t *testing.T, completer Completer) (*TutorService, *database.DB, *models.User) {
	t.Helper()
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "asha")
	return NewTutorService(db, completer, newBadgeService(db), logger.Nop()), db, user
}

func TestChatHelloScenario(t *testing.T) {
	ctx := context.Background()
	completer := &fakeCompleter{configured: true, reply: twoWordReply}
	tutor, db, user := newTutor(t, completer)

	result, err := tutor.Chat(ctx, user, "Hello", "")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Reply != twoWordReply {
		t.Errorf("Reply = %q", result.Reply)
	}
	if got := badgeIDs(result.NewBadges); !reflect.DeepEqual(got, []string{"first_word"}) {
		t.Errorf("NewBadges = %v, want [first_word]", got)
	}

	history, err := tutor.History(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d turns, want 2", len(history))
	}
	if history[0].Role != models.RoleUser || history[0].Content != "Hello" {
		t.Errorf("first turn = %+v", history[0])
	}
	if history[1].Role != models.RoleAssistant || history[1].Content != twoWordReply {
		t.Errorf("second turn = %+v", history[1])
	}

	words, err := repository.NewVocabularyRepository(db).ListWords(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 {
		t.Fatalf("logged %d words, want 2", len(words))
	}
	for _, w := range words {
		if w.LessonID != models.DefaultLessonTag {
			t.Errorf("word %q tagged %q, want %q", w.Word, w.LessonID, models.DefaultLessonTag)
		}
	}

	if len(completer.history) != 1 || completer.history[0].Content != "Hello" {
		t.Errorf("upstream context = %+v", completer.history)
	}
	if completer.system == "" {
		t.Error("system prompt was empty")
	}

	// Same reply again: nothing new to award
	result, err = tutor.Chat(ctx, user, "Hello again", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.NewBadges) != 0 {
		t.Errorf("second chat NewBadges = %v, want none", badgeIDs(result.NewBadges))
	}
}

func TestChatRejectsBeforeWriting(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		completer *fakeCompleter
		message   string
		kind      apperr.Kind
	}{
		{"empty message", &fakeCompleter{configured: true, reply: "x"}, "", apperr.KindValidation},
		{"whitespace message", &fakeCompleter{configured: true, reply: "x"}, "   \n", apperr.KindValidation},
		{"not configured", &fakeCompleter{configured: false}, "Hello", apperr.KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tutor, _, user := newTutor(t, tt.completer)
			_, err := tutor.Chat(ctx, user, tt.message, "")
			requireKind(t, err, tt.kind)

			if tt.completer.calls != 0 {
				t.Errorf("completer called %d times", tt.completer.calls)
			}
			history, err := tutor.History(ctx, user.ID)
			if err != nil {
				t.Fatal(err)
			}
			if len(history) != 0 {
				t.Errorf("history has %d turns, want 0", len(history))
			}
		})
	}
}

func TestChatUpstreamFailureKeepsUserTurn(t *testing.T) {
	ctx := context.Background()
	completer := &fakeCompleter{configured: true, err: apperr.Upstream(429, "quota exceeded", nil)}
	tutor, _, user := newTutor(t, completer)

	_, err := tutor.Chat(ctx, user, "Hello", "")
	appErr := requireKind(t, err, apperr.KindUpstream)
	if appErr.Status != 429 || appErr.Message != "quota exceeded" {
		t.Errorf("got %d %q", appErr.Status, appErr.Message)
	}

	history, err := tutor.History(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Role != models.RoleUser {
		t.Errorf("history = %+v, want the user turn only", history)
	}
}

func TestChatLessonProgress(t *testing.T) {
	ctx := context.Background()
	tutor, db, user := newTutor(t, &fakeCompleter{configured: true, reply: "बहुत अच्छा"})

	for i := 0; i < 2; i++ {
		if _, err := tutor.Chat(ctx, user, "next", "greetings"); err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
	}

	lesson, err := repository.NewProgressRepository(db).GetLesson(ctx, user.ID, "greetings")
	if err != nil {
		t.Fatal(err)
	}
	if lesson == nil {
		t.Fatal("expected a progress row")
	}
	if lesson.WordsSeen != 2 || lesson.Completed || lesson.Level != models.LevelBeginner {
		t.Errorf("lesson = %+v", lesson)
	}

	words, err := repository.NewVocabularyRepository(db).ListWords(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range words {
		if w.LessonID != "greetings" {
			t.Errorf("word %q tagged %q", w.Word, w.LessonID)
		}
	}
}

func TestChatContextWindow(t *testing.T) {
	ctx := context.Background()
	completer := &fakeCompleter{configured: true, reply: "ok"}
	tutor, _, user := newTutor(t, completer)

	for i := 0; i < 15; i++ {
		if _, err := tutor.Chat(ctx, user, fmt.Sprintf("message %d", i), ""); err != nil {
			t.Fatal(err)
		}
	}

	if len(completer.history) != ContextTurns {
		t.Fatalf("sent %d turns, want %d", len(completer.history), ContextTurns)
	}
	last := completer.history[len(completer.history)-1]
	if last.Role != models.RoleUser || last.Content != "message 14" {
		t.Errorf("last context turn = %+v", last)
	}
}

func TestChatVocabularyFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "asha")

	core, logs := observer.New(zapcore.WarnLevel)
	tutor := NewTutorService(db, &fakeCompleter{configured: true, reply: twoWordReply}, newBadgeService(db), logger.FromCore(core))

	_, err := db.ExecContext(ctx, `CREATE TRIGGER reject_words BEFORE INSERT ON word_log
		BEGIN SELECT RAISE(ABORT, 'word_log is read-only'); END`)
	if err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}

	result, err := tutor.Chat(ctx, user, "Hello", "")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Reply != twoWordReply {
		t.Errorf("Reply = %q", result.Reply)
	}

	entries := logs.FilterMessage("vocabulary word not logged").All()
	if len(entries) != 2 {
		t.Fatalf("logged %d warnings, want 2", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["word"] != "नमस्ते" || fields["lesson_id"] != models.DefaultLessonTag || fields["user_id"] != user.ID {
		t.Errorf("warning fields = %v", fields)
	}
}

func TestExtractHindiWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no hindi", "Hello there", nil},
		{"pipe line", "पानी | Paani | Water | தண்ணீர்", []string{"पानी"}},
		{"single characters dropped", "क ख गाना", []string{"गाना"}},
		{"only first ten runs", "क ख ग घ ङ च छ ज झ ञ नमस्ते", nil},
		{"mixed", "Say नमस्ते and धन्यवाद.", []string{"नमस्ते", "धन्यवाद"}},
		{"repeated word kept once", twoWordReply, []string{"नमस्ते", "धन्यवाद"}},
		{"repeats count toward first ten", "क क क क क क क क क नमस्ते नमस्ते धन्यवाद", []string{"नमस्ते"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractHindiWords(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractHindiWords() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClearHistory(t *testing.T) {
	ctx := context.Background()
	tutor, _, user := newTutor(t, &fakeCompleter{configured: true, reply: "ok"})
	if _, err := tutor.Chat(ctx, user, "Hello", ""); err != nil {
		t.Fatal(err)
	}
	if err := tutor.Clear(ctx, user.ID); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	history, err := tutor.History(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Errorf("history has %d turns after clear", len(history))
	}
}
