package handlers

import (
	"net/http"

	"nexprep/interview/internal/config"
	"nexprep/interview/internal/llm"
	"nexprep/interview/internal/prompts"
	"nexprep/interview/internal/questionbank"
	"nexprep/interview/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

type HealthHandler struct {
	realtime      llm.Provider
	batch         llm.Provider
	promptManager prompts.PromptProvider
	bank          *questionbank.Bank
	config        *config.Config
}

func NewHealthHandler(realtime, batch llm.Provider, promptManager prompts.PromptProvider, bank *questionbank.Bank, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		realtime:      realtime,
		batch:         batch,
		promptManager: promptManager,
		bank:          bank,
		config:        cfg,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "interview",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	// verify both AI providers are initialized
	if handler.realtime == nil {
		checks["realtime_provider"] = ReadinessCheck{
			Status:  "failed",
			Message: "Realtime AI provider not initialized",
		}
		allChecksPass = false
	} else {
		checks["realtime_provider"] = ReadinessCheck{
			Status: "ok",
		}
	}

	if handler.batch == nil {
		checks["batch_provider"] = ReadinessCheck{
			Status:  "failed",
			Message: "Batch AI provider not initialized",
		}
		allChecksPass = false
	} else {
		checks["batch_provider"] = ReadinessCheck{
			Status: "ok",
		}
	}

	// verify prompt manager has templates loaded
	if handler.promptManager == nil {
		checks["prompt_manager"] = ReadinessCheck{
			Status:  "failed",
			Message: "Prompt manager not initialized",
		}
		allChecksPass = false
	} else if len(handler.promptManager.Kinds()) == 0 {
		checks["prompt_manager"] = ReadinessCheck{
			Status:  "failed",
			Message: "No prompt templates loaded",
		}
		allChecksPass = false
	} else {
		checks["prompt_manager"] = ReadinessCheck{
			Status: "ok",
		}
	}

	// verify the static question bank loaded
	if handler.bank == nil || handler.bank.Size() == 0 {
		checks["question_bank"] = ReadinessCheck{
			Status:  "failed",
			Message: "Question bank not loaded",
		}
		allChecksPass = false
	} else {
		checks["question_bank"] = ReadinessCheck{
			Status: "ok",
		}
	}

	// verify configuration is valid
	if handler.config == nil {
		checks["configuration"] = ReadinessCheck{
			Status:  "failed",
			Message: "Configuration not loaded",
		}
		allChecksPass = false
	} else {
		checks["configuration"] = ReadinessCheck{
			Status: "ok",
		}
	}

	response := ReadinessResponse{
		Service: "interview",
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
