package models

type StartResponse struct {
	SessionID      string `json:"sessionId"`
	TotalQuestions int    `json:"totalQuestions"`
}

type QuestionResponse struct {
	QuestionID          string `json:"questionId"`
	QuestionNumber      int    `json:"questionNumber"`
	TotalQuestions      int    `json:"totalQuestions"`
	Question            string `json:"question"`
	CompetencyType      string `json:"competencyType"`
	Difficulty          string `json:"difficulty"`
	HintsAvailable      bool   `json:"hintsAvailable"`
	IsInterviewComplete bool   `json:"isInterviewComplete"`
}

type AnswerResponse struct {
	Score                int      `json:"score"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	MissingElements      []string `json:"missingElements"`
	SuggestedStructure   string   `json:"suggestedStructure"`
	ImprovedSampleAnswer string   `json:"improvedSampleAnswer"`
	Flags                []string `json:"flags,omitempty"`
	Feedback             string   `json:"feedback"`
}

type HintResponse struct {
	Hint string `json:"hint"`
}

type CompleteResponse struct {
	Success  bool   `json:"success"`
	ReportID string `json:"reportId"`
}

type LeaderboardEntry struct {
	SessionID string `json:"sessionId"`
	Role      string `json:"role"`
	Track     string `json:"track"`
	Score     int    `json:"score"`
}

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}
