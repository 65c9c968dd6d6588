package models

// CoachingMode is one of the two fixed interviewer personas. It alters
// prompt phrasing only, never evaluation logic.
type CoachingMode string

const (
	ModeSupportive CoachingMode = "SUPPORTIVE"
	ModeDirect     CoachingMode = "DIRECT"
)

// ScoringPolicy decides when answers are scored. Set once at session
// creation; the generic HR track defers scoring to one batch call at
// completion, every other track scores each answer as it arrives.
type ScoringPolicy string

const (
	ScoringImmediate ScoringPolicy = "immediate"
	ScoringDeferred  ScoringPolicy = "deferred"
)

const (
	// TotalDynamicQuestions is the length of an LLM-driven interview.
	TotalDynamicQuestions = 12
	// TotalStaticQuestions is the length of a generic-track interview
	// served from the fixed question bank.
	TotalStaticQuestions = 5

	// ScoreUnavailable marks a report whose scoring was attempted and
	// failed. Distinct from 0, which is the deferred "not yet scored"
	// placeholder.
	ScoreUnavailable = -1

	// MaxResumeContextChars bounds the resume excerpt passed to prompts.
	MaxResumeContextChars = 400
	// MaxAnswerExcerptChars bounds per-answer text in the batch prompt.
	MaxAnswerExcerptChars = 600
)

type Question struct {
	ID             string `json:"questionId"`
	Text           string `json:"question"`
	CompetencyType string `json:"competencyType"` // behavioral | technical | communication | role-specific
	Difficulty     string `json:"difficulty"`     // easy | medium | hard
	HintsAvailable bool   `json:"hintsAvailable"`
	IdealAnswer    string `json:"-"` // reference key points, static bank only
}

// VoiceMetrics is a browser-captured delivery snapshot, threaded through
// opaquely.
type VoiceMetrics struct {
	Pace            float64 `json:"pace,omitempty"`
	FillerCount     int     `json:"fillerCount,omitempty"`
	Confidence      float64 `json:"confidence,omitempty"`
	VolumeStability float64 `json:"volumeStability,omitempty"`
	SilenceDuration float64 `json:"silenceDuration,omitempty"`
}

type VideoMetrics struct {
	EyeContact     float64 `json:"eyeContact,omitempty"`
	Posture        float64 `json:"posture,omitempty"`
	Expressiveness float64 `json:"expressiveness,omitempty"`
	Engagement     float64 `json:"engagement,omitempty"`
}

type Evaluation struct {
	Score                int      `json:"score"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	MissingElements      []string `json:"missingElements"`
	SuggestedStructure   string   `json:"suggestedStructure"`
	ImprovedSampleAnswer string   `json:"improvedSampleAnswer"`
	StarRating           int      `json:"starRating,omitempty"` // 1-5 structural adherence
	Feedback             string   `json:"feedback,omitempty"`
	Flags                []string `json:"flags,omitempty"`
	Pending              bool     `json:"pending,omitempty"` // deferred placeholder
}

type Answer struct {
	QuestionID   string        `json:"questionId"`
	QuestionText string        `json:"question"`
	IdealAnswer  string        `json:"-"` // reference key points, static bank only
	Text         string        `json:"answer"`
	VoiceMetrics *VoiceMetrics `json:"voiceMetrics,omitempty"`
	VideoMetrics *VideoMetrics `json:"videoMetrics,omitempty"`
	Evaluation   *Evaluation   `json:"evaluation,omitempty"`
}

type SkillScore struct {
	Skill string `json:"skill"`
	Score int    `json:"score"`
}

type BreakdownItem struct {
	Question string `json:"question"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Report is the finalized end-of-session result. OverallScore is either a
// genuine 0-100 mean or ScoreUnavailable.
type Report struct {
	OverallScore    int             `json:"overallScore"`
	Summary         string          `json:"summary"`
	SkillMatrix     []SkillScore    `json:"skillMatrix"`
	Strengths       []string        `json:"strengths"`
	Weaknesses      []string        `json:"weaknesses"`
	Breakdown       []BreakdownItem `json:"breakdown"`
	ImprovementPlan []string        `json:"improvementPlan"`
	Evaluations     []Evaluation    `json:"evaluations"`
}

// ClampScore bounds a model-returned score to [0, 100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
