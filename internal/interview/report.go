package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"nexprep/interview/internal/llm"
	"nexprep/interview/internal/models"
	"nexprep/interview/internal/prompts"
	"nexprep/interview/internal/session"
)

// DefaultReportTimeout bounds the single batch call; a hung provider must
// not block session completion.
const DefaultReportTimeout = 25 * time.Second

var skillTaxonomy = []string{"Communication", "Problem Solving", "Technical", "Leadership", "Adaptability"}

// ReportGenerator produces the final interview report. For deferred-scoring
// sessions it sends the whole transcript to the batch provider in one
// structured call; for immediate sessions it aggregates the per-answer
// evaluations deterministically. It never returns an error across its
// boundary; failures yield a well-shaped fallback report.
type ReportGenerator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	timeout  time.Duration
	logger   *zap.Logger
}

func NewReportGenerator(provider llm.Provider, promptManager prompts.PromptProvider, timeout time.Duration, logger *zap.Logger) *ReportGenerator {
	if timeout <= 0 {
		timeout = DefaultReportTimeout
	}
	return &ReportGenerator{
		provider: provider,
		prompts:  promptManager,
		timeout:  timeout,
		logger:   logger,
	}
}

// Generate builds and caches the final report for a session. Idempotent:
// once a session carries a report, that cached result is the single source
// of truth and no further provider call is made.
func (g *ReportGenerator) Generate(ctx context.Context, sess *session.Session) *models.Report {
	if sess.FinalReport != nil {
		return sess.FinalReport
	}

	var report models.Report
	if sess.Policy == models.ScoringDeferred {
		report = g.generateBatch(ctx, sess)
	} else {
		report = Aggregate(sess)
	}

	// batch result becomes the single source of truth for each answer
	if len(report.Evaluations) == len(sess.Answers) {
		for i := range sess.Answers {
			eval := report.Evaluations[i]
			sess.Answers[i].Evaluation = &eval
		}
	}

	sess.FinalReport = &report
	return sess.FinalReport
}

type batchResult struct {
	report models.Report
	err    error
}

func (g *ReportGenerator) generateBatch(ctx context.Context, sess *session.Session) models.Report {
	if len(sess.Answers) == 0 {
		return fallbackReport(sess, "no answers were submitted", 0)
	}

	data := map[string]string{
		"Role":  sess.RoleID,
		"Items": batchItems(sess.Answers),
	}
	prompt, err := g.prompts.BuildPrompt("report", "default", data)
	if err != nil {
		g.logger.Error("Failed to build report prompt", zap.Error(err), zap.String("session_id", sess.ID))
		return fallbackReport(sess, "report assembly failed", len(sess.Answers))
	}
	systemPrompt := g.prompts.SystemPrompt("report", data)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// race the provider call against the wall clock; whichever settles
	// first wins
	results := make(chan batchResult, 1)
	go func() {
		var parsed models.Report
		callErr := g.provider.GenerateJSON(callCtx, prompt, llm.Options{
			Temperature:     0.4,
			MaxOutputTokens: 4096,
			SystemPrompt:    systemPrompt,
		}, &parsed)
		results <- batchResult{report: parsed, err: callErr}
	}()

	var result batchResult
	select {
	case result = <-results:
	case <-callCtx.Done():
		g.logger.Warn("Batch report timed out",
			zap.String("session_id", sess.ID),
			zap.Duration("timeout", g.timeout))
		return fallbackReport(sess, "analysis timed out", len(sess.Answers))
	}

	if result.err != nil {
		g.logger.Warn("Batch report generation failed", zap.Error(result.err), zap.String("session_id", sess.ID))
		return fallbackReport(sess, "analysis failed", len(sess.Answers))
	}

	report := models.CoerceReport(result.report)
	if len(report.Evaluations) != len(sess.Answers) {
		g.logger.Warn("Batch report shape mismatch",
			zap.String("session_id", sess.ID),
			zap.Int("expected", len(sess.Answers)),
			zap.Int("got", len(report.Evaluations)))
		return fallbackReport(sess, "analysis failed", len(sess.Answers))
	}

	report.OverallScore = meanScore(report.Evaluations)
	if len(report.Breakdown) == 0 {
		report.Breakdown = buildBreakdown(sess.Answers, report.Evaluations)
	}

	g.logger.Info("Batch report generated",
		zap.String("session_id", sess.ID),
		zap.Int("overall_score", report.OverallScore),
		zap.Int("evaluations", len(report.Evaluations)))

	return report
}

// batchItems renders the transcript as the user prompt, one block per
// answer, each truncated to keep the overall prompt bounded.
func batchItems(answers []models.Answer) string {
	var sb strings.Builder
	for i, answer := range answers {
		delivery := ""
		if answer.VoiceMetrics != nil {
			delivery = fmt.Sprintf(" [Voice confidence: %.0f%%]", answer.VoiceMetrics.Confidence)
		}
		fmt.Fprintf(&sb, "Q%d: %s\nA: %s%s\n", i+1, answer.QuestionText, truncate(answer.Text, models.MaxAnswerExcerptChars), delivery)
		// reference key points travel with static-bank questions only
		if answer.IdealAnswer != "" {
			fmt.Fprintf(&sb, "Key: %s\n", answer.IdealAnswer)
		}
	}
	return sb.String()
}

// meanScore is the arithmetic mean of all per-question scores. With no
// evaluations at all the overall score is the "unavailable" sentinel, never
// a fabricated zero.
func meanScore(evals []models.Evaluation) int {
	if len(evals) == 0 {
		return models.ScoreUnavailable
	}
	sum := 0
	for _, eval := range evals {
		sum += eval.Score
	}
	return sum / len(evals)
}

func buildBreakdown(answers []models.Answer, evals []models.Evaluation) []models.BreakdownItem {
	breakdown := make([]models.BreakdownItem, 0, len(answers))
	for i, answer := range answers {
		feedback := "No detailed feedback available."
		if i < len(evals) {
			if evals[i].Feedback != "" {
				feedback = evals[i].Feedback
			} else if len(evals[i].Strengths) > 0 {
				feedback = evals[i].Strengths[0]
				if len(evals[i].Weaknesses) > 0 {
					feedback += ". " + evals[i].Weaknesses[0]
				}
			}
		}
		score := 0
		if i < len(evals) {
			score = evals[i].Score
		}
		breakdown = append(breakdown, models.BreakdownItem{
			Question: answer.QuestionText,
			Score:    score,
			Feedback: feedback,
		})
	}
	return breakdown
}

// fallbackReport is the deterministic shape served when batch analysis could
// not run. Overall score is the sentinel, the summary names the failure
// class, and there is one evaluation stub per answer so report rendering
// never sees a partially-shaped object.
func fallbackReport(sess *session.Session, reason string, answerCount int) models.Report {
	evals := make([]models.Evaluation, answerCount)
	for i := range evals {
		evals[i] = models.Evaluation{
			Score:              0,
			Strengths:          []string{"Answer recorded"},
			Weaknesses:         []string{"AI analysis unavailable"},
			MissingElements:    []string{},
			SuggestedStructure: "STAR Method",
			Feedback:           "AI analysis unavailable.",
			Flags:              []string{"analysis_failed"},
		}
	}

	report := models.Report{
		OverallScore: models.ScoreUnavailable,
		Summary:      fmt.Sprintf("Interview completed, but %s. Your answers were recorded; detailed AI analysis is unavailable for this session.", reason),
		SkillMatrix: []models.SkillScore{
			{Skill: "Participation", Score: 100},
			{Skill: "Completeness", Score: 100},
		},
		Strengths:       []string{"Completed all questions"},
		Weaknesses:      []string{"AI analysis unavailable"},
		ImprovementPlan: []string{"Review the reference answers for each question", "Retry the interview when analysis is available"},
		Evaluations:     evals,
	}
	report.Breakdown = buildBreakdown(sess.Answers, evals)
	return report
}

// Aggregate computes a report deterministically from per-answer evaluations,
// with no provider call. Used for immediate-scoring sessions and as the
// on-demand path for report slices requested before completion.
func Aggregate(sess *session.Session) models.Report {
	scored := make([]models.Evaluation, 0, len(sess.Answers))
	evals := make([]models.Evaluation, 0, len(sess.Answers))
	for _, answer := range sess.Answers {
		if answer.Evaluation == nil {
			continue
		}
		evals = append(evals, *answer.Evaluation)
		if !answer.Evaluation.Pending {
			scored = append(scored, *answer.Evaluation)
		}
	}

	if len(scored) == 0 {
		return fallbackReport(sess, "no scored answers are available yet", len(sess.Answers))
	}

	avg := meanScore(scored)

	strengths := collectDistinct(scored, func(e models.Evaluation) []string { return e.Strengths }, 4)
	weaknesses := collectDistinct(scored, func(e models.Evaluation) []string { return e.Weaknesses }, 4)

	matrix := make([]models.SkillScore, 0, len(skillTaxonomy))
	offsets := map[string]int{"Problem Solving": -5, "Leadership": -10, "Adaptability": -5}
	for _, skill := range skillTaxonomy {
		score := avg + offsets[skill]
		if score < 0 {
			score = 0
		}
		matrix = append(matrix, models.SkillScore{Skill: skill, Score: score})
	}

	return models.Report{
		OverallScore: avg,
		Summary:      fmt.Sprintf("Overall interview performance: %d/100 across %d answers. Strengths and growth areas are detailed below.", avg, len(scored)),
		SkillMatrix:  matrix,
		Strengths:    strengths,
		Weaknesses:   weaknesses,
		Breakdown:    buildBreakdown(sess.Answers, evals),
		ImprovementPlan: []string{
			"Practice structuring answers using the STAR method",
			"Prepare specific examples with measurable outcomes",
			"Research the company and its values",
			"Quantify achievements wherever possible",
		},
		Evaluations: evals,
	}
}

func collectDistinct(evals []models.Evaluation, pick func(models.Evaluation) []string, limit int) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, eval := range evals {
		for _, item := range pick(eval) {
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}
