// Package history persists completed interview results. The session store
// stays in memory by design; only finalized reports land here, feeding the
// leaderboard and the scheduled export job. A missing database disables
// history, never the interview flow.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nexprep/interview/internal/models"
	"nexprep/interview/internal/session"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.InterviewResult{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveResult records a finalized session. Safe to call again for the same
// session: the report is already idempotent, so a duplicate save is a no-op.
func (s *Store) SaveResult(sess *session.Session, report *models.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	result := &models.InterviewResult{
		SessionID:    sess.ID,
		Track:        sess.TrackID,
		Role:         sess.RoleID,
		CoachingMode: string(sess.QuinnMode),
		OverallScore: report.OverallScore,
		ReportJSON:   string(reportJSON),
		CompletedAt:  time.Now(),
	}

	err = s.db.Where("session_id = ?", sess.ID).FirstOrCreate(result).Error
	if err != nil {
		return fmt.Errorf("failed to store interview result: %w", err)
	}
	return nil
}

// Leaderboard returns the top-scoring completed interviews. Sessions whose
// scoring failed (sentinel score) are excluded.
func (s *Store) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	var results []models.InterviewResult
	err := s.db.
		Where("overall_score >= ?", 0).
		Order("overall_score DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(results))
	for _, result := range results {
		entries = append(entries, models.LeaderboardEntry{
			SessionID: result.SessionID,
			Role:      result.Role,
			Track:     result.Track,
			Score:     result.OverallScore,
		})
	}
	return entries, nil
}

// GetUnexported retrieves results that haven't been exported yet.
func (s *Store) GetUnexported(limit int) ([]models.InterviewResult, error) {
	var results []models.InterviewResult

	query := s.db.Where("exported = ?", false).Order("completed_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get unexported results: %w", err)
	}
	return results, nil
}

// MarkExported flags result rows as exported.
func (s *Store) MarkExported(ids []uint) error {
	now := time.Now()
	result := s.db.Model(&models.InterviewResult{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"exported":    true,
			"exported_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark results as exported: %w", result.Error)
	}
	return nil
}

// Count returns the number of stored results.
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.InterviewResult{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
