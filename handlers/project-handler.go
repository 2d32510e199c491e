package handlers

import (
	"encoding/json"
	"net/http"

	"proflow/models"
	"proflow/services"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	store *services.StoreService
}

func NewProjectHandler(store *services.StoreService) *ProjectHandler {
	return &ProjectHandler{store: store}
}

func (h *ProjectHandler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	writeJSON(w, http.StatusOK, snapshot.Projects)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["projectId"]
	snapshot := h.store.Snapshot()
	for _, p := range snapshot.Projects {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	http.Error(w, "project not found", http.StatusNotFound)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var input models.Project
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.store.CreateProject(input)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["projectId"]

	var patch models.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.store.UpdateProject(id, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["projectId"]

	if err := h.store.DeleteProject(id); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

// GetProjectTasks returns the tasks belonging to one project.
func (h *ProjectHandler) GetProjectTasks(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["projectId"]
	tasks := h.store.GetProjectTasks(id)
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}
