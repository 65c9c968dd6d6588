package jobs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nexprep/interview/internal/history"
	"nexprep/interview/internal/models"
	"nexprep/interview/internal/session"
)

func newHistoryStore(t *testing.T) *history.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	store, err := history.NewStore(db)
	if err != nil {
		t.Fatalf("failed to init history store: %v", err)
	}
	return store
}

func storeResult(t *testing.T, store *history.Store, id string, score int) {
	t.Helper()
	sess := &session.Session{ID: id, TrackID: "general", RoleID: "general-hr", QuinnMode: models.ModeSupportive}
	if err := store.SaveResult(sess, &models.Report{OverallScore: score, Summary: "done"}); err != nil {
		t.Fatalf("failed to store result: %v", err)
	}
}

func TestRunExport_NoData(t *testing.T) {
	store := newHistoryStore(t)
	exportDir := t.TempDir()

	job := NewReportExporterJob(store, &ExporterConfig{
		ExportDir:     exportDir,
		ExportEnabled: true,
	})

	if err := job.RunExport(); err != nil {
		t.Fatalf("RunExport with no data should not error, got %v", err)
	}

	files, err := os.ReadDir(exportDir)
	if err != nil {
		t.Fatalf("failed to read export dir: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("no data should produce no file, got %d files", len(files))
	}
}

func TestRunExport_WritesJSONL(t *testing.T) {
	store := newHistoryStore(t)
	storeResult(t, store, "s-1", 80)
	storeResult(t, store, "s-2", 60)

	exportDir := t.TempDir()
	job := NewReportExporterJob(store, &ExporterConfig{
		ExportDir:     exportDir,
		ExportEnabled: true,
	})

	if err := job.RunExport(); err != nil {
		t.Fatalf("RunExport returned error: %v", err)
	}

	files, err := os.ReadDir(exportDir)
	if err != nil {
		t.Fatalf("failed to read export dir: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected one export file, got %d", len(files))
	}

	f, err := os.Open(filepath.Join(exportDir, files[0].Name()))
	if err != nil {
		t.Fatalf("failed to open export file: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		if record["sessionId"] == "" {
			t.Fatalf("line %d missing sessionId", lines+1)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 JSONL records, got %d", lines)
	}

	// export -> results marked as exported
	remaining, err := store.GetUnexported(0)
	if err != nil {
		t.Fatalf("failed to fetch results: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected all results marked exported, got %d", len(remaining))
	}
}

func TestExporterStartStop(t *testing.T) {
	store := newHistoryStore(t)
	job := NewReportExporterJob(store, &ExporterConfig{
		ExportEnabled: false,
	})

	if err := job.Start(); err != nil {
		t.Fatalf("disabled exporter should not error, got %v", err)
	}

	job.config.ExportEnabled = true
	job.config.Schedule = "@every 1m"
	if err := job.Start(); err != nil {
		t.Fatalf("expected scheduler to start, got %v", err)
	}
	job.Stop()
}
