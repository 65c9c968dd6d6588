package models

import "strings"

type StartRequest struct {
	TrackID       string       `json:"trackId"`
	RoleID        string       `json:"roleId"`
	QuinnMode     CoachingMode `json:"quinnMode"`
	CompanyName   string       `json:"companyName,omitempty"`
	IndustryID    string       `json:"industryId,omitempty"`
	CompanySizeID string       `json:"companySizeId,omitempty"`
	ResumeText    string       `json:"resumeText,omitempty"`
}

// implements the Validator interface
func (r *StartRequest) Validate() error {
	if strings.TrimSpace(r.TrackID) == "" {
		return &ErrorResponse{Code: "missing_track", Message: "trackId is required"}
	}
	if strings.TrimSpace(r.RoleID) == "" {
		return &ErrorResponse{Code: "missing_role", Message: "roleId is required"}
	}
	if r.QuinnMode != ModeSupportive && r.QuinnMode != ModeDirect {
		return &ErrorResponse{Code: "invalid_mode", Message: "quinnMode must be SUPPORTIVE or DIRECT"}
	}
	return nil
}

type QuestionRequest struct {
	SessionID       string `json:"sessionId"`
	LastUserMessage string `json:"lastUserMessage,omitempty"`
}

func (r *QuestionRequest) Validate() error {
	if r.SessionID == "" {
		return &ErrorResponse{Code: "missing_session", Message: "sessionId is required"}
	}
	return nil
}

type AnswerRequest struct {
	SessionID    string        `json:"sessionId"`
	QuestionID   string        `json:"questionId"`
	Answer       string        `json:"answer"`
	VoiceMetrics *VoiceMetrics `json:"voiceMetrics,omitempty"`
	VideoMetrics *VideoMetrics `json:"videoMetrics,omitempty"`
}

func (r *AnswerRequest) Validate() error {
	if r.SessionID == "" {
		return &ErrorResponse{Code: "missing_session", Message: "sessionId is required"}
	}
	if r.QuestionID == "" {
		return &ErrorResponse{Code: "missing_question", Message: "questionId is required"}
	}
	if strings.TrimSpace(r.Answer) == "" {
		return &ErrorResponse{Code: "missing_answer", Message: "answer is required"}
	}
	return nil
}

type HintRequest struct {
	SessionID  string `json:"sessionId"`
	QuestionID string `json:"questionId"`
}

func (r *HintRequest) Validate() error {
	if r.SessionID == "" {
		return &ErrorResponse{Code: "missing_session", Message: "sessionId is required"}
	}
	if r.QuestionID == "" {
		return &ErrorResponse{Code: "missing_question", Message: "questionId is required"}
	}
	return nil
}

type CompleteRequest struct {
	SessionID string `json:"sessionId"`
}

func (r *CompleteRequest) Validate() error {
	if r.SessionID == "" {
		return &ErrorResponse{Code: "missing_session", Message: "sessionId is required"}
	}
	return nil
}
