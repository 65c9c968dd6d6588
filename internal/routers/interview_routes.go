package routers

import (
	"nexprep/interview/internal/handlers"
	"nexprep/interview/internal/middleware"
	"nexprep/interview/internal/models"

	"github.com/go-chi/chi/v5"
)

func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler) {
	router.Route("/api/v1/interview", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.StartRequest]()).Post("/start", interviewHandler.StartHandler)
		r.With(middleware.ValidateRequest[*models.QuestionRequest]()).Post("/question", interviewHandler.QuestionHandler)
		r.With(middleware.ValidateRequest[*models.AnswerRequest]()).Post("/answer", interviewHandler.AnswerHandler)
		r.With(middleware.ValidateRequest[*models.HintRequest]()).Post("/hint", interviewHandler.HintHandler)
		r.With(middleware.ValidateRequest[*models.CompleteRequest]()).Post("/complete", interviewHandler.CompleteHandler)
		r.Get("/report/{sessionId}", interviewHandler.ReportHandler)
		r.Get("/report/{sessionId}/{section}", interviewHandler.ReportSliceHandler)
		r.Get("/leaderboard", interviewHandler.LeaderboardHandler)
	})
}
