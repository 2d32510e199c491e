package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"proflow/models"
	"proflow/persistence"
	"proflow/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handlerBase = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func handlerSnapshot() *models.Snapshot {
	day := 24 * time.Hour
	return &models.Snapshot{
		Projects: []models.Project{
			{ID: "p1", Name: "Website Redesign", Color: "#7c3aed", CreatedAt: handlerBase.Add(-30 * day), Members: []string{"t1"}},
		},
		Tasks: []models.Task{
			{ID: "tk1", Title: "Design homepage", ProjectID: "p1", Status: models.StatusInProgress, Priority: models.PriorityHigh, Assignee: "t2", DueDate: handlerBase.Add(5 * day), CreatedAt: handlerBase.Add(-10 * day), Subtasks: []models.Subtask{{ID: "s1", Text: "Wireframes"}}},
			{ID: "tk2", Title: "Set up CI", ProjectID: "p1", Status: models.StatusTodo, Priority: models.PriorityMedium, Assignee: "t1", DueDate: handlerBase.Add(10 * day), CreatedAt: handlerBase.Add(-8 * day), Subtasks: []models.Subtask{}},
		},
		Team: []models.TeamMember{
			{ID: "t1", Name: "Alex Morgan", Role: "Project Manager", Avatar: "AM", Color: "#7c3aed"},
			{ID: "t2", Name: "Sarah Chen", Role: "Lead Developer", Avatar: "SC", Color: "#3b82f6"},
		},
		Activity: []models.ActivityEntry{},
	}
}

// newTestRouter wires every handler onto the real route table against a
// store backed by an in-memory repository.
func newTestRouter(t *testing.T) (*mux.Router, *services.StoreService) {
	t.Helper()

	repo := persistence.NewMemorySnapshotRepository()
	store := services.NewStoreServiceFromSnapshot(repo, handlerSnapshot())

	projectHandler := NewProjectHandler(store)
	taskHandler := NewTaskHandler(store)
	teamHandler := NewTeamHandler(store)
	activityHandler := NewActivityHandler(store)
	aiHandler := NewAIHandler(store)
	authHandler := NewAuthHandler(store)

	r := mux.NewRouter()
	r.HandleFunc("/api/projects", projectHandler.GetAllProjects).Methods(http.MethodGet)
	r.HandleFunc("/api/projects", projectHandler.CreateProject).Methods(http.MethodPost)
	r.HandleFunc("/api/projects/{projectId}", projectHandler.GetProject).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{projectId}", projectHandler.UpdateProject).Methods(http.MethodPut)
	r.HandleFunc("/api/projects/{projectId}", projectHandler.DeleteProject).Methods(http.MethodDelete)
	r.HandleFunc("/api/projects/{projectId}/tasks", projectHandler.GetProjectTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", taskHandler.GetAllTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/move", taskHandler.MoveTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{taskId}", taskHandler.UpdateTask).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{taskId}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/api/tasks/{taskId}/subtasks", taskHandler.AddSubtask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{taskId}/subtasks/{subtaskId}/toggle", taskHandler.ToggleSubtask).Methods(http.MethodPatch)
	r.HandleFunc("/api/tasks/{taskId}/subtasks/{subtaskId}", taskHandler.RemoveSubtask).Methods(http.MethodDelete)
	r.HandleFunc("/api/team", teamHandler.GetTeam).Methods(http.MethodGet)
	r.HandleFunc("/api/team/{memberId}", teamHandler.GetTeamMember).Methods(http.MethodGet)
	r.HandleFunc("/api/activity", activityHandler.GetActivity).Methods(http.MethodGet)
	r.HandleFunc("/api/insights", aiHandler.GetInsights).Methods(http.MethodGet)
	r.HandleFunc("/api/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/logout", authHandler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/api/me", authHandler.CurrentUser).Methods(http.MethodGet)

	return r, store
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateProjectEndpoint(t *testing.T) {
	router, store := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects", map[string]string{"name": "Mobile App", "color": "#3b82f6"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var project models.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&project))
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "Mobile App", project.Name)

	assert.Len(t, store.Snapshot().Projects, 2)
}

func TestCreateProjectEndpoint_EmptyName(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProjectEndpoint_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/projects/ghost", map[string]string{"name": "New"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProjectEndpoint_Cascades(t *testing.T) {
	router, store := newTestRouter(t)

	rec := doJSON(t, router, http.MethodDelete, "/api/projects/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	snapshot := store.Snapshot()
	assert.Empty(t, snapshot.Projects)
	assert.Empty(t, snapshot.Tasks)
}

func TestGetProjectTasksEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/projects/p1/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []models.Task
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tasks))
	assert.Len(t, tasks, 2)
}
