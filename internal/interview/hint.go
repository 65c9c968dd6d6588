package interview

import (
	"context"

	"go.uber.org/zap"

	"nexprep/interview/internal/llm"
	"nexprep/interview/internal/models"
	"nexprep/interview/internal/prompts"
	"nexprep/interview/internal/session"
)

const cannedHint = "Structure your answer using the STAR method: Situation, Task, Action, Result."

// HintGenerator produces a structural, non-answering hint for the current
// question. Hints are a non-critical enhancement: any failure degrades to a
// canned framework pointer.
type HintGenerator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewHintGenerator(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *HintGenerator {
	return &HintGenerator{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

func (h *HintGenerator) Hint(ctx context.Context, sess *session.Session, question *models.Question) string {
	data := map[string]string{
		"Role":     sess.RoleID,
		"Question": question.Text,
	}

	prompt, err := h.prompts.BuildPrompt("hint", variantFor(sess.QuinnMode), data)
	if err != nil {
		h.logger.Error("Failed to build hint prompt", zap.Error(err), zap.String("session_id", sess.ID))
		return hintIntro(sess.QuinnMode) + cannedHint
	}

	var out struct {
		Hint string `json:"hint"`
	}
	err = h.provider.GenerateJSON(ctx, prompt, llm.Options{
		Temperature:     0.3,
		MaxOutputTokens: 128,
	}, &out)
	if err != nil || out.Hint == "" {
		if err != nil {
			h.logger.Warn("Hint generation fell back", zap.Error(err), zap.String("session_id", sess.ID))
		}
		return hintIntro(sess.QuinnMode) + cannedHint
	}

	return hintIntro(sess.QuinnMode) + out.Hint
}

func hintIntro(mode models.CoachingMode) string {
	if mode == models.ModeDirect {
		return "Fine, here's a hint: "
	}
	return "Here's a little nudge to help you think this through: "
}
