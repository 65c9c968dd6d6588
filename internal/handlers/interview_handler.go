package handlers

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nexprep/interview/internal/history"
	"nexprep/interview/internal/interview"
	"nexprep/interview/internal/middleware"
	"nexprep/interview/internal/models"
	"nexprep/interview/internal/questionbank"
	"nexprep/interview/internal/session"
	"nexprep/interview/internal/utils"
)

const defaultLeaderboardSize = 10

// genericTrack selects the static-bank, deferred-scoring flow.
func genericTrack(trackID, roleID string) bool {
	return trackID == "general" || roleID == "general-hr"
}

type InterviewHandler struct {
	sessions  *session.Store
	bank      *questionbank.Bank
	sequencer *interview.Sequencer
	evaluator *interview.Evaluator
	hints     *interview.HintGenerator
	reports   *interview.ReportGenerator
	history   *history.Store // nil when the database is unavailable
	logger    *zap.Logger
}

func NewInterviewHandler(
	sessions *session.Store,
	bank *questionbank.Bank,
	sequencer *interview.Sequencer,
	evaluator *interview.Evaluator,
	hints *interview.HintGenerator,
	reports *interview.ReportGenerator,
	historyStore *history.Store,
	logger *zap.Logger,
) *InterviewHandler {
	return &InterviewHandler{
		sessions:  sessions,
		bank:      bank,
		sequencer: sequencer,
		evaluator: evaluator,
		hints:     hints,
		reports:   reports,
		history:   historyStore,
		logger:    logger,
	}
}

func (h *InterviewHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartRequest](r)

	cfg := session.Config{
		TrackID:       req.TrackID,
		RoleID:        req.RoleID,
		QuinnMode:     req.QuinnMode,
		CompanyName:   req.CompanyName,
		IndustryID:    req.IndustryID,
		CompanySizeID: req.CompanySizeID,
		ResumeText:    req.ResumeText,
	}

	if genericTrack(req.TrackID, req.RoleID) {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		cfg.Policy = models.ScoringDeferred
		cfg.Total = models.TotalStaticQuestions
		cfg.Bank = h.bank.Select(models.TotalStaticQuestions, rng)
	} else {
		cfg.Policy = models.ScoringImmediate
		cfg.Total = models.TotalDynamicQuestions
	}

	sess := h.sessions.Create(cfg)

	h.logger.Info("Interview session started",
		zap.String("session_id", sess.ID),
		zap.String("track", sess.TrackID),
		zap.String("role", sess.RoleID),
		zap.String("policy", string(sess.Policy)),
		zap.Int("total_questions", sess.TotalQuestions))

	utils.JSON(w, http.StatusOK, models.StartResponse{
		SessionID:      sess.ID,
		TotalQuestions: sess.TotalQuestions,
	})
}

func (h *InterviewHandler) QuestionHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.QuestionRequest](r)

	sess, err := h.sessions.Get(req.SessionID)
	if err != nil {
		h.sessionError(w, err)
		return
	}

	response := h.sequencer.Next(r.Context(), sess, req.LastUserMessage)
	utils.JSON(w, http.StatusOK, response)
}

func (h *InterviewHandler) AnswerHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.AnswerRequest](r)

	sess, err := h.sessions.Get(req.SessionID)
	if err != nil {
		h.sessionError(w, err)
		return
	}

	question, err := sess.Question(req.QuestionID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "question_not_found",
			Message: "No such question in this session",
		})
		return
	}

	eval := h.evaluator.Evaluate(r.Context(), sess, question, req.Answer)

	// answers carry a denormalized copy of the question so reporting never
	// needs a second lookup
	sess.AppendAnswer(models.Answer{
		QuestionID:   question.ID,
		QuestionText: question.Text,
		IdealAnswer:  question.IdealAnswer,
		Text:         req.Answer,
		VoiceMetrics: req.VoiceMetrics,
		VideoMetrics: req.VideoMetrics,
		Evaluation:   &eval,
	})

	feedback := eval.Feedback
	if feedback == "" {
		feedback = interview.FeedbackMessage(eval)
	}

	utils.JSON(w, http.StatusOK, models.AnswerResponse{
		Score:                eval.Score,
		Strengths:            eval.Strengths,
		Weaknesses:           eval.Weaknesses,
		MissingElements:      eval.MissingElements,
		SuggestedStructure:   eval.SuggestedStructure,
		ImprovedSampleAnswer: eval.ImprovedSampleAnswer,
		Flags:                eval.Flags,
		Feedback:             feedback,
	})
}

func (h *InterviewHandler) HintHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.HintRequest](r)

	sess, err := h.sessions.Get(req.SessionID)
	if err != nil {
		h.sessionError(w, err)
		return
	}

	question, err := sess.Question(req.QuestionID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "question_not_found",
			Message: "No such question in this session",
		})
		return
	}

	hint := h.hints.Hint(r.Context(), sess, question)
	utils.JSON(w, http.StatusOK, models.HintResponse{Hint: hint})
}

func (h *InterviewHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CompleteRequest](r)

	sess, err := h.sessions.Get(req.SessionID)
	if err != nil {
		h.sessionError(w, err)
		return
	}

	report := h.reports.Generate(r.Context(), sess)

	if h.history != nil {
		if err := h.history.SaveResult(sess, report); err != nil {
			// history is best-effort; the report itself already succeeded
			h.logger.Error("Failed to persist interview result",
				zap.Error(err),
				zap.String("session_id", sess.ID))
		}
	}

	utils.JSON(w, http.StatusOK, models.CompleteResponse{
		Success:  true,
		ReportID: sess.ID,
	})
}

func (h *InterviewHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromPath(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, h.currentReport(sess))
}

// ReportSliceHandler serves one section of the report. Slices are pure reads:
// they come from the cached report, or a deterministic aggregation when no
// batch report exists yet, and never trigger a provider call.
func (h *InterviewHandler) ReportSliceHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromPath(w, r)
	if !ok {
		return
	}

	report := h.currentReport(sess)

	section := chi.URLParam(r, "section")
	var payload any
	switch section {
	case "summary":
		payload = map[string]any{"overallScore": report.OverallScore, "summary": report.Summary}
	case "skills":
		payload = report.SkillMatrix
	case "strengths":
		payload = report.Strengths
	case "weaknesses":
		payload = report.Weaknesses
	case "breakdown":
		payload = report.Breakdown
	case "plan":
		payload = report.ImprovementPlan
	default:
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "unknown_section",
			Message: "Unknown report section: " + section,
		})
		return
	}

	utils.JSON(w, http.StatusOK, payload)
}

func (h *InterviewHandler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Code:    "history_unavailable",
			Message: "Interview history is not available",
		})
		return
	}

	limit := defaultLeaderboardSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := h.history.Leaderboard(limit)
	if err != nil {
		h.logger.Error("Failed to load leaderboard", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "leaderboard_error",
			Message: "Failed to load leaderboard",
		})
		return
	}

	utils.JSON(w, http.StatusOK, entries)
}

func (h *InterviewHandler) sessionFromPath(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if err != nil {
		h.sessionError(w, err)
		return nil, false
	}
	return sess, true
}

// currentReport returns the finalized report when one exists, otherwise a
// deterministic aggregation of whatever has been scored so far.
func (h *InterviewHandler) currentReport(sess *session.Session) *models.Report {
	if sess.FinalReport != nil {
		return sess.FinalReport
	}
	report := interview.Aggregate(sess)
	return &report
}

func (h *InterviewHandler) sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "No such interview session",
		})
		return
	}
	utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Code:    "session_error",
		Message: "Failed to load session",
	})
}
