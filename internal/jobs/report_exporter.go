package jobs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"nexprep/interview/internal/history"
)

// ReportExporterJob periodically dumps finalized interview results to JSONL
// files for offline analysis.
type ReportExporterJob struct {
	store  *history.Store
	config *ExporterConfig
	cron   *cron.Cron
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule      string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir     string // Directory to store exported files
	ExportEnabled bool   // Whether to run exports
}

type exportRecord struct {
	SessionID    string    `json:"sessionId"`
	Track        string    `json:"track"`
	Role         string    `json:"role"`
	CoachingMode string    `json:"coachingMode"`
	OverallScore int       `json:"overallScore"`
	Report       any       `json:"report"`
	CompletedAt  time.Time `json:"completedAt"`
}

func NewReportExporterJob(store *history.Store, config *ExporterConfig) *ReportExporterJob {
	return &ReportExporterJob{
		store:  store,
		config: config,
		cron:   cron.New(),
	}
}

// Start begins the scheduled export job
func (rej *ReportExporterJob) Start() error {
	if !rej.config.ExportEnabled {
		log.Println("Report export is disabled, skipping scheduler")
		return nil
	}

	log.Printf("Starting report exporter with schedule: %s", rej.config.Schedule)

	_, err := rej.cron.AddFunc(rej.config.Schedule, func() {
		if err := rej.RunExport(); err != nil {
			log.Printf("Export job failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	rej.cron.Start()
	log.Println("Report exporter started successfully")

	return nil
}

// Stop stops the scheduled export job
func (rej *ReportExporterJob) Stop() {
	if rej.cron != nil {
		rej.cron.Stop()
		log.Println("Report exporter stopped")
	}
}

// RunExport performs a single export run
func (rej *ReportExporterJob) RunExport() error {
	log.Println("Starting report export job...")

	results, err := rej.store.GetUnexported(0) // no limit
	if err != nil {
		return fmt.Errorf("failed to get unexported results: %w", err)
	}

	if len(results) == 0 {
		log.Println("No unexported results found")
		return nil
	}

	log.Printf("Found %d unexported interview results", len(results))

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	for _, result := range results {
		record := exportRecord{
			SessionID:    result.SessionID,
			Track:        result.Track,
			Role:         result.Role,
			CoachingMode: result.CoachingMode,
			OverallScore: result.OverallScore,
			Report:       json.RawMessage(result.ReportJSON),
			CompletedAt:  result.CompletedAt,
		}
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to encode result %s: %w", result.SessionID, err)
		}
	}

	if err := os.MkdirAll(rej.config.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("interview_export_%s.jsonl", timestamp)
	exportPath := filepath.Join(rej.config.ExportDir, filename)

	if err := os.WriteFile(exportPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	log.Printf("Exported %d interview results to %s", len(results), exportPath)

	ids := make([]uint, len(results))
	for i, result := range results {
		ids[i] = result.ID
	}
	if err := rej.store.MarkExported(ids); err != nil {
		return fmt.Errorf("failed to mark as exported: %w", err)
	}

	return nil
}

// RunManual runs an export manually (for testing or on-demand exports)
func (rej *ReportExporterJob) RunManual() error {
	return rej.RunExport()
}
