package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexprep/interview/internal/llm"
	"nexprep/interview/internal/models"
	"nexprep/interview/internal/prompts"
	"nexprep/interview/internal/session"
)

// Sequencer decides the next question for a session: served from the
// pre-selected static bank on the generic track, generated by the realtime
// provider everywhere else.
type Sequencer struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewSequencer(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Sequencer {
	return &Sequencer{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// structured output contract for the dynamic generator
type generatedQuestion struct {
	Question            string `json:"question"`
	CompetencyType      string `json:"competencyType"`
	IsInterviewComplete bool   `json:"isInterviewComplete"`
}

// Next issues the next question, or the completion signal once every
// question of the session has been answered.
func (s *Sequencer) Next(ctx context.Context, sess *session.Session, lastUserMessage string) models.QuestionResponse {
	if lastUserMessage != "" {
		sess.LastUserMessage = lastUserMessage
	}

	if sess.Completed() {
		return completionResponse(sess)
	}

	number := len(sess.Questions) + 1

	var question models.Question
	if sess.Policy == models.ScoringDeferred {
		// The bank is exhausted once every question was issued, even if
		// answers are still outstanding.
		if number > len(sess.Bank) {
			return completionResponse(sess)
		}
		question = sess.Bank[number-1]
	} else {
		var done bool
		question, done = s.generate(ctx, sess, number)
		if done {
			return completionResponse(sess)
		}
	}
	question = models.CoerceQuestion(question, number)

	sess.AppendQuestion(question)

	return models.QuestionResponse{
		QuestionID:     question.ID,
		QuestionNumber: number,
		TotalQuestions: sess.TotalQuestions,
		Question:       question.Text,
		CompetencyType: question.CompetencyType,
		Difficulty:     question.Difficulty,
		HintsAvailable: question.HintsAvailable,
	}
}

func completionResponse(sess *session.Session) models.QuestionResponse {
	return models.QuestionResponse{
		Question:            EndMessage,
		QuestionNumber:      sess.TotalQuestions,
		TotalQuestions:      sess.TotalQuestions,
		IsInterviewComplete: true,
	}
}

// generate asks the realtime provider for the next question. The second
// return value reports the generator's own end-of-interview signal.
func (s *Sequencer) generate(ctx context.Context, sess *session.Session, number int) (models.Question, bool) {
	startTime := time.Now()
	requestID := uuid.New().String()

	data := map[string]string{
		"Role":                sess.RoleID,
		"Track":               sess.TrackID,
		"CompanyContext":      companyContext(sess),
		"ResumeContext":       orDefault(sess.ResumeContext, "Not provided"),
		"QuestionNumber":      fmt.Sprintf("%d", number),
		"TotalQuestions":      fmt.Sprintf("%d", sess.TotalQuestions),
		"PhaseGuidance":       guidanceFor(number),
		"ConversationSummary": conversationSummary(sess),
		"PreviousQuestions":   previousQuestions(sess),
		"LastUserMessage":     orDefault(sess.LastUserMessage, "Starting interview."),
	}

	prompt, err := s.prompts.BuildPrompt("question", variantFor(sess.QuinnMode), data)
	if err != nil {
		s.logger.Error("Failed to build question prompt", zap.Error(err), zap.String("session_id", sess.ID))
		return s.fallback(sess, number, requestID, startTime, err), false
	}
	systemPrompt := s.prompts.SystemPrompt("question", data)

	var generated generatedQuestion
	err = s.provider.GenerateJSON(ctx, prompt, llm.Options{
		Temperature:     0.7,
		MaxOutputTokens: 300,
		SystemPrompt:    systemPrompt,
	}, &generated)
	if err != nil {
		return s.fallback(sess, number, requestID, startTime, err), false
	}
	if generated.IsInterviewComplete {
		s.telemetry(sess, requestID, number, s.provider.Name(), startTime, "")
		return models.Question{}, true
	}
	if strings.TrimSpace(generated.Question) == "" {
		return s.fallback(sess, number, requestID, startTime, fmt.Errorf("generator returned an empty question")), false
	}

	s.telemetry(sess, requestID, number, s.provider.Name(), startTime, "")

	return models.Question{
		ID:             uuid.New().String(),
		Text:           strings.TrimSpace(generated.Question),
		CompetencyType: generated.CompetencyType,
	}, false
}

func (s *Sequencer) fallback(sess *session.Session, number int, requestID string, startTime time.Time, cause error) models.Question {
	s.telemetry(sess, requestID, number, "fallback", startTime, cause.Error())
	return models.Question{
		ID:   uuid.New().String(),
		Text: fallbackQuestion(number, sess.QuinnMode, sess.RoleID),
	}
}

func (s *Sequencer) telemetry(sess *session.Session, requestID string, number int, modelUsed string, startTime time.Time, fallbackReason string) {
	fields := []zap.Field{
		zap.String("session_id", sess.ID),
		zap.String("request_id", requestID),
		zap.Int("question_number", number),
		zap.String("role", sess.RoleID),
		zap.String("model_used", modelUsed),
		zap.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	}
	if fallbackReason != "" {
		fields = append(fields, zap.String("fallback_reason", fallbackReason))
		s.logger.Warn("Question generation fell back", fields...)
		return
	}
	s.logger.Info("Question generated", fields...)
}

func companyContext(sess *session.Session) string {
	if sess.CompanyName != "" {
		return "- Target Company: " + sess.CompanyName
	}
	if sess.IndustryID != "" {
		return "- Industry: " + sess.IndustryID
	}
	return ""
}

// conversationSummary renders the last three Q&A pairs for tone and context
// memory.
func conversationSummary(sess *session.Session) string {
	if len(sess.Answers) == 0 {
		return ""
	}

	start := len(sess.Answers) - 3
	if start < 0 {
		start = 0
	}

	var sb strings.Builder
	sb.WriteString("Previous Conversation (for context and tone awareness):\n")
	for i := start; i < len(sess.Answers); i++ {
		answer := sess.Answers[i]
		sb.WriteString(fmt.Sprintf("Q%d: %s\nA%d: %q\n", i+1, truncate(answer.QuestionText, 100), i+1, answer.Text))
	}
	return sb.String()
}

func previousQuestions(sess *session.Session) string {
	if len(sess.Questions) == 0 {
		return "(none)"
	}
	texts := make([]string, len(sess.Questions))
	for i, q := range sess.Questions {
		texts[i] = "- " + q.Text
	}
	return strings.Join(texts, "\n")
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
