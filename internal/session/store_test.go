package session

import (
	"strings"
	"testing"
	"unicode/utf8"

	"nexprep/interview/internal/models"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore()

	sess := store.Create(Config{
		TrackID:   "software-engineering",
		RoleID:    "backend-engineer",
		QuinnMode: models.ModeSupportive,
		Policy:    models.ScoringImmediate,
		Total:     models.TotalDynamicQuestions,
	})

	if sess.ID == "" {
		t.Fatal("expected a generated session id")
	}

	got, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != sess {
		t.Fatal("Get should return the same session instance")
	}
	if store.Size() != 1 {
		t.Fatalf("expected one live session, got %d", store.Size())
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore()
	if _, err := store.Get("nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStoreTruncatesResume(t *testing.T) {
	store := NewStore()
	long := strings.Repeat("x", models.MaxResumeContextChars+200)

	sess := store.Create(Config{
		TrackID:    "general",
		RoleID:     "general-hr",
		QuinnMode:  models.ModeDirect,
		ResumeText: long,
	})

	if len(sess.ResumeContext) != models.MaxResumeContextChars {
		t.Fatalf("expected resume truncated to %d chars, got %d", models.MaxResumeContextChars, len(sess.ResumeContext))
	}
}

func TestStoreTruncatesResumeOnRuneBoundary(t *testing.T) {
	store := NewStore()
	// 3-byte runes, so the byte cap lands mid-rune.
	long := strings.Repeat("日", models.MaxResumeContextChars)

	sess := store.Create(Config{
		TrackID:    "general",
		RoleID:     "general-hr",
		QuinnMode:  models.ModeDirect,
		ResumeText: long,
	})

	if len(sess.ResumeContext) > models.MaxResumeContextChars {
		t.Fatalf("expected resume capped at %d bytes, got %d", models.MaxResumeContextChars, len(sess.ResumeContext))
	}
	if !utf8.ValidString(sess.ResumeContext) {
		t.Fatal("truncation must not split a multi-byte rune")
	}
}

func TestSessionQuestionLookup(t *testing.T) {
	sess := &Session{}
	sess.AppendQuestion(models.Question{ID: "q-1", Text: "Tell me about yourself."})

	q, err := sess.Question("q-1")
	if err != nil {
		t.Fatalf("expected question to resolve, got %v", err)
	}
	if q.Text != "Tell me about yourself." {
		t.Fatalf("unexpected question text %q", q.Text)
	}

	if _, err := sess.Question("q-2"); err != ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestSessionCompleted(t *testing.T) {
	sess := &Session{TotalQuestions: 2}
	if sess.Completed() {
		t.Fatal("fresh session must not be complete")
	}

	sess.AppendAnswer(models.Answer{QuestionID: "q-1", Text: "a"})
	if sess.Completed() {
		t.Fatal("one of two answers must not complete the session")
	}

	sess.AppendAnswer(models.Answer{QuestionID: "q-2", Text: "b"})
	if !sess.Completed() {
		t.Fatal("session should be complete after the final answer")
	}
}
