package interview

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"nexprep/interview/internal/llm"
	"nexprep/interview/internal/models"
	"nexprep/interview/internal/prompts"
	"nexprep/interview/internal/session"
)

// answers below this word count are scored locally; no point spending a
// provider call on "yes"
const minWordsForLLM = 5

// Evaluator scores a submitted answer. Immediate-policy sessions get a
// synchronous provider call; deferred sessions get a placeholder and real
// scoring happens once, in batch, at completion. The deferral trades
// per-answer latency for a single cheaper call on the fixed question bank.
type Evaluator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewEvaluator(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// Evaluate never fails: provider errors degrade into a generic low-confidence
// evaluation so the interview keeps moving.
func (e *Evaluator) Evaluate(ctx context.Context, sess *session.Session, question *models.Question, answer string) models.Evaluation {
	if sess.Policy == models.ScoringDeferred {
		return deferredPlaceholder()
	}

	if wordCount(answer) < minWordsForLLM {
		return shortAnswerEvaluation(sess.QuinnMode)
	}

	data := map[string]string{
		"Role":           sess.RoleID,
		"Question":       question.Text,
		"CompetencyType": question.CompetencyType,
		"Answer":         answer,
	}

	prompt, err := e.prompts.BuildPrompt("evaluation", variantFor(sess.QuinnMode), data)
	if err != nil {
		e.logger.Error("Failed to build evaluation prompt", zap.Error(err), zap.String("session_id", sess.ID))
		return failedEvaluation()
	}

	var eval models.Evaluation
	err = e.provider.GenerateJSON(ctx, prompt, llm.Options{
		Temperature:     0.4,
		MaxOutputTokens: 1024,
	}, &eval)
	if err != nil {
		e.logger.Warn("Answer evaluation fell back",
			zap.Error(err),
			zap.String("session_id", sess.ID),
			zap.String("question_id", question.ID))
		return failedEvaluation()
	}

	return models.CoerceEvaluation(eval)
}

// deferredPlaceholder marks an answer as stored but not yet scored. Score 0
// here means "pending", never "failed"; failed scoring is the report-level
// ScoreUnavailable sentinel.
func deferredPlaceholder() models.Evaluation {
	return models.Evaluation{
		Score:              0,
		Pending:            true,
		Strengths:          []string{},
		Weaknesses:         []string{},
		MissingElements:    []string{},
		SuggestedStructure: "STAR Method",
		Feedback:           "Answer recorded. Feedback pending until the end of the interview.",
	}
}

func shortAnswerEvaluation(mode models.CoachingMode) models.Evaluation {
	strength := "Good start."
	if mode == models.ModeDirect {
		strength = "Too brief."
	}
	return models.Evaluation{
		Score:              15,
		Strengths:          []string{strength},
		Weaknesses:         []string{"Answer lacks depth"},
		MissingElements:    []string{"Specific examples and context"},
		SuggestedStructure: "STAR Method",
		Flags:              []string{"too_short"},
	}
}

func failedEvaluation() models.Evaluation {
	return models.Evaluation{
		Score:              60,
		Strengths:          []string{"Attempted to answer"},
		Weaknesses:         []string{"Evaluation unavailable"},
		MissingElements:    []string{},
		SuggestedStructure: "STAR Method",
	}
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
