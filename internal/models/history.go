package models

import (
	"time"

	"gorm.io/gorm"
)

// InterviewResult persists a completed interview for the leaderboard and the
// scheduled export job. Raw transcripts stay in the session store; only the
// finalized report is written out.
type InterviewResult struct {
	gorm.Model
	SessionID    string     `gorm:"uniqueIndex;not null" json:"session_id"`
	Track        string     `gorm:"not null" json:"track"`
	Role         string     `gorm:"not null" json:"role"`
	CoachingMode string     `gorm:"not null" json:"coaching_mode"`
	OverallScore int        `gorm:"not null" json:"overall_score"`
	ReportJSON   string     `gorm:"type:text;not null" json:"report_json"`
	CompletedAt  time.Time  `gorm:"not null" json:"completed_at"`
	Exported     bool       `gorm:"not null;default:false;index" json:"exported"`
	ExportedAt   *time.Time `json:"exported_at"`
}
