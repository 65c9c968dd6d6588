package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nexprep/interview/internal/config"
	"nexprep/interview/internal/handlers"

	"github.com/go-chi/chi/v5"
)

func TestHealthRoutes(t *testing.T) {
	router := chi.NewRouter()
	handler := handlers.NewHealthHandler(nil, nil, nil, nil, &config.Config{})

	HealthRoutes(router, handler)

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("/healthz route not registered correctly, got status %d", rec.Code)
	}
}

func TestInterviewRoutesRegistersEndpoints(t *testing.T) {
	router := chi.NewRouter()
	interviewHandler := &handlers.InterviewHandler{}

	InterviewRoutes(router, interviewHandler)

	paths := map[string]bool{}
	if err := chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		paths[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("failed walking routes: %v", err)
	}

	expected := []string{
		"POST /api/v1/interview/start",
		"POST /api/v1/interview/question",
		"POST /api/v1/interview/answer",
		"POST /api/v1/interview/hint",
		"POST /api/v1/interview/complete",
		"GET /api/v1/interview/report/{sessionId}",
		"GET /api/v1/interview/report/{sessionId}/{section}",
		"GET /api/v1/interview/leaderboard",
	}

	for _, route := range expected {
		if !paths[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}
