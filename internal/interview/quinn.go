// Package interview contains the session orchestration core: question
// sequencing, answer evaluation, hints and end-of-session reporting.
package interview

import (
	"fmt"

	"nexprep/interview/internal/models"
)

// EndMessage closes the interview loop once every question is answered.
const EndMessage = "Thank you. That concludes our session. I'm compiling your evaluation now."

// canned per-index questions used when the generating provider fails; a
// degraded interview continues rather than aborting.
var fallbackQuestions = map[int]string{
	1:  "Let's start by getting to know you. Tell me about yourself and what brings you to this role.",
	2:  "What motivates you to pursue this opportunity?",
	3:  "Describe a challenging situation you faced at work and how you handled it.",
	4:  "Tell me about a time you collaborated successfully with a team.",
	5:  "How do you handle disagreements or conflicts with colleagues?",
	6:  "Share an example where you took ownership of a difficult project.",
	7:  "What draws you to this industry, and how do you stay motivated?",
	8:  "What strengths would you bring to this role?",
	9:  "How do you perform under pressure or tight deadlines?",
	10: "What would your first 90 days look like if you joined us?",
	11: "Based on our conversation, tell me more about how you handle feedback.",
	12: "Finally, what sets you apart from other candidates?",
}

// explicit guidance for what each question of the dynamic interview should
// focus on
var phaseGuidance = map[int]string{
	1:  "Q1 is INTRO. Ask them to tell you about themselves and their background.",
	2:  "Q2 is MOTIVATION. Ask what motivates them in their career.",
	3:  "Q3 is CHALLENGE. Ask about a challenging situation they handled.",
	4:  "Q4 is COLLABORATION. Ask about teamwork or collaboration.",
	5:  "Q5 is CONFLICT. Ask how they handle disagreements or conflicts.",
	6:  "Q6 is OWNERSHIP. Ask about taking ownership of a project.",
	7:  "Q7 is INDUSTRY FIT. Ask about their connection to the industry.",
	8:  "Q8 is ROLE STRENGTHS. Ask what strengths they bring to this role.",
	9:  "Q9 is PRESSURE. Ask how they handle pressure or deadlines.",
	10: "Q10 is 90-DAY PLAN. Ask what their first 90 days would look like.",
	11: "Q11 is DEEP DIVE. Probe a weakness or gap from earlier answers.",
	12: "Q12 is CLOSING. Ask what sets them apart from others.",
}

func fallbackQuestion(number int, mode models.CoachingMode, role string) string {
	question, ok := fallbackQuestions[number]
	if !ok {
		question = fmt.Sprintf("Tell me about a significant experience that shaped your approach to being a %s.", role)
	}
	if mode == models.ModeSupportive {
		return "Thanks for sharing that. Let me ask you this: " + question
	}
	return "Noted. Next question: " + question
}

func guidanceFor(number int) string {
	if guidance, ok := phaseGuidance[number]; ok {
		return guidance
	}
	return "Follow the interview structure as defined."
}

// variantFor maps a coaching mode onto the prompt template variant key.
func variantFor(mode models.CoachingMode) string {
	if mode == models.ModeDirect {
		return "direct"
	}
	return "supportive"
}

// FeedbackMessage renders the chat-facing one-liner for an evaluation,
// banded by score.
func FeedbackMessage(eval models.Evaluation) string {
	switch {
	case eval.Score >= 80:
		detail := "Well structured response."
		if len(eval.Strengths) > 0 {
			detail = eval.Strengths[0]
		}
		return fmt.Sprintf("Great answer! Score: %d/100. %s", eval.Score, detail)
	case eval.Score >= 60:
		detail := "Consider adding more specific examples."
		if len(eval.Weaknesses) > 0 {
			detail = eval.Weaknesses[0]
		}
		return fmt.Sprintf("Good effort! Score: %d/100. %s", eval.Score, detail)
	default:
		detail := "Try to be more specific."
		if eval.SuggestedStructure != "" {
			detail = eval.SuggestedStructure
		}
		return fmt.Sprintf("Score: %d/100. %s", eval.Score, detail)
	}
}
