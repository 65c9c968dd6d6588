package session

import (
	"errors"

	"nexprep/interview/internal/models"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not found in session")
)

// Session holds the full state of one interview. Configuration fields are
// immutable after creation; questions and answers are append-only.
type Session struct {
	ID            string
	TrackID       string
	RoleID        string
	QuinnMode     models.CoachingMode
	CompanyName   string
	IndustryID    string
	CompanySizeID string
	ResumeContext string
	Policy        models.ScoringPolicy

	// TotalQuestions is fixed at creation: the static bank size for
	// deferred sessions, the dynamic interview length otherwise.
	TotalQuestions int

	// Bank is the pre-selected static question sequence; nil for dynamic
	// sessions.
	Bank []models.Question

	Questions       []models.Question
	Answers         []models.Answer
	LastUserMessage string
	FinalReport     *models.Report
}

// Config is the immutable part of a session, captured at creation.
type Config struct {
	TrackID       string
	RoleID        string
	QuinnMode     models.CoachingMode
	CompanyName   string
	IndustryID    string
	CompanySizeID string
	ResumeText    string
	Policy        models.ScoringPolicy
	Total         int
	Bank          []models.Question
}

// Question returns the issued question with the given id.
func (s *Session) Question(questionID string) (*models.Question, error) {
	for i := range s.Questions {
		if s.Questions[i].ID == questionID {
			return &s.Questions[i], nil
		}
	}
	return nil, ErrQuestionNotFound
}

// AppendQuestion records an issued question.
func (s *Session) AppendQuestion(q models.Question) {
	s.Questions = append(s.Questions, q)
}

// AppendAnswer records a submitted answer. The caller must have resolved the
// question id first.
func (s *Session) AppendAnswer(a models.Answer) {
	s.Answers = append(s.Answers, a)
}

// Completed reports whether every question of the interview was answered.
func (s *Session) Completed() bool {
	return len(s.Answers) >= s.TotalQuestions
}
