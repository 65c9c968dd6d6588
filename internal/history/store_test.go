package history

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nexprep/interview/internal/models"
	"nexprep/interview/internal/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

func testSession(id string) *session.Session {
	return &session.Session{
		ID:        id,
		TrackID:   "general",
		RoleID:    "general-hr",
		QuinnMode: models.ModeSupportive,
	}
}

func TestSaveResultAndLeaderboard(t *testing.T) {
	store := newTestStore(t)

	scores := map[string]int{"s-low": 40, "s-high": 90, "s-mid": 70}
	for id, score := range scores {
		report := &models.Report{OverallScore: score, Summary: "done"}
		if err := store.SaveResult(testSession(id), report); err != nil {
			t.Fatalf("SaveResult(%s) failed: %v", id, err)
		}
	}

	entries, err := store.Leaderboard(2)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].SessionID != "s-high" || entries[1].SessionID != "s-mid" {
		t.Fatalf("expected descending score order, got %+v", entries)
	}
}

func TestLeaderboardExcludesFailedScoring(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveResult(testSession("s-ok"), &models.Report{OverallScore: 50}); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if err := store.SaveResult(testSession("s-failed"), &models.Report{OverallScore: models.ScoreUnavailable}); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	entries, err := store.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 1 || entries[0].SessionID != "s-ok" {
		t.Fatalf("sentinel-score sessions must not rank, got %+v", entries)
	}
}

func TestSaveResultIdempotent(t *testing.T) {
	store := newTestStore(t)
	report := &models.Report{OverallScore: 66}

	if err := store.SaveResult(testSession("s-1"), report); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := store.SaveResult(testSession("s-1"), report); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("duplicate save must not create a second row, got %d", count)
	}
}

func TestExportBookkeeping(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		sess := testSession(fmt.Sprintf("s-%d", i))
		if err := store.SaveResult(sess, &models.Report{OverallScore: 60 + i}); err != nil {
			t.Fatalf("SaveResult failed: %v", err)
		}
	}

	unexported, err := store.GetUnexported(0)
	if err != nil {
		t.Fatalf("GetUnexported failed: %v", err)
	}
	if len(unexported) != 3 {
		t.Fatalf("expected 3 unexported rows, got %d", len(unexported))
	}

	ids := []uint{unexported[0].ID, unexported[1].ID}
	if err := store.MarkExported(ids); err != nil {
		t.Fatalf("MarkExported failed: %v", err)
	}

	remaining, err := store.GetUnexported(0)
	if err != nil {
		t.Fatalf("GetUnexported failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 unexported row after marking, got %d", len(remaining))
	}
}
