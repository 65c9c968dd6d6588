package models

// Coercion helpers: every LLM output schema passes through exactly one of
// these before reaching a caller, so downstream code always sees a fully
// populated, invariant-respecting struct no matter what the model returned.

const (
	fallbackScore     = 60
	fallbackStructure = "STAR Method"
)

// CoerceEvaluation fills defaults and clamps the score on a per-answer
// evaluation parsed from model output.
func CoerceEvaluation(eval Evaluation) Evaluation {
	if eval.Score == 0 && len(eval.Strengths) == 0 && len(eval.Weaknesses) == 0 {
		// model omitted scoring entirely; neutral default
		eval.Score = fallbackScore
	}
	eval.Score = ClampScore(eval.Score)

	if eval.Strengths == nil {
		eval.Strengths = []string{}
	}
	if eval.Weaknesses == nil {
		eval.Weaknesses = []string{}
	}
	if eval.MissingElements == nil {
		eval.MissingElements = []string{}
	}
	if eval.SuggestedStructure == "" {
		eval.SuggestedStructure = fallbackStructure
	}
	if eval.StarRating < 0 {
		eval.StarRating = 0
	}
	if eval.StarRating > 5 {
		eval.StarRating = 5
	}
	return eval
}

// CoerceQuestion fills defaults on a generated question.
func CoerceQuestion(q Question, number int) Question {
	if q.CompetencyType == "" {
		q.CompetencyType = "behavioral"
	}
	if q.Difficulty == "" {
		q.Difficulty = DifficultyForIndex(number)
	}
	q.HintsAvailable = true
	return q
}

// CoerceReport normalizes a parsed batch report so every slice endpoint can
// render it without nil checks. It does not touch OverallScore: the caller
// computes that from the evaluations array.
func CoerceReport(report Report) Report {
	if report.Summary == "" {
		report.Summary = "Interview completed."
	}
	if report.SkillMatrix == nil {
		report.SkillMatrix = []SkillScore{}
	}
	if report.Strengths == nil {
		report.Strengths = []string{}
	}
	if report.Weaknesses == nil {
		report.Weaknesses = []string{}
	}
	if report.Breakdown == nil {
		report.Breakdown = []BreakdownItem{}
	}
	if report.ImprovementPlan == nil {
		report.ImprovementPlan = []string{}
	}
	for i, eval := range report.Evaluations {
		report.Evaluations[i] = CoerceEvaluation(eval)
	}
	return report
}

// DifficultyForIndex maps a 1-based question number to a difficulty tier.
// Monotonic non-decreasing with index.
func DifficultyForIndex(number int) string {
	switch {
	case number <= 2:
		return "easy"
	case number <= 7:
		return "medium"
	default:
		return "hard"
	}
}
