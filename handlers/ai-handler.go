package handlers

import (
	"net/http"
	"time"

	"proflow/models"
	"proflow/services"
)

type AIHandler struct {
	store *services.StoreService
}

func NewAIHandler(store *services.StoreService) *AIHandler {
	return &AIHandler{store: store}
}

// InsightsResponse bundles every derived computation over one snapshot, so
// all five views agree on the state they describe.
type InsightsResponse struct {
	PrioritySuggestions []models.PrioritySuggestion `json:"prioritySuggestions"`
	Workload            models.WorkloadReport       `json:"workload"`
	Risks               []models.Risk               `json:"risks"`
	Suggestions         []models.Suggestion         `json:"suggestions"`
	Productivity        models.ProductivityScore    `json:"productivity"`
}

// GetInsights recomputes all insights from the current snapshot. Nothing is
// cached: insights are derived data, never persisted.
func (h *AIHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	now := time.Now()

	response := InsightsResponse{
		PrioritySuggestions: services.GeneratePrioritySuggestions(snapshot.Tasks, now),
		Workload:            services.AnalyzeWorkload(snapshot.Tasks, snapshot.Team, now),
		Risks:               services.DetectRisks(snapshot.Tasks, snapshot.Projects, now),
		Suggestions:         services.GenerateSmartSuggestions(snapshot.Tasks, snapshot.Projects, snapshot.Team),
		Productivity:        services.GetProductivityScore(snapshot.Tasks, now),
	}

	writeJSON(w, http.StatusOK, response)
}

// GetProductivity returns just the productivity score for dashboard widgets.
func (h *AIHandler) GetProductivity(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	writeJSON(w, http.StatusOK, services.GetProductivityScore(snapshot.Tasks, time.Now()))
}
