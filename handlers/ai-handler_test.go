package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInsightsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/insights", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response InsightsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

	// Two tasks, none done: the score is computable and clamped.
	assert.GreaterOrEqual(t, response.Productivity.Score, 0)
	assert.LessOrEqual(t, response.Productivity.Score, 100)
	assert.NotEmpty(t, response.Productivity.Label)

	assert.Len(t, response.Workload.Workload, 2)
	assert.LessOrEqual(t, len(response.Risks), 5)
	assert.NotNil(t, response.PrioritySuggestions)
	assert.NotNil(t, response.Suggestions)
}
