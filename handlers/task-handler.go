package handlers

import (
	"encoding/json"
	"net/http"

	"proflow/models"
	"proflow/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	store *services.StoreService
}

func NewTaskHandler(store *services.StoreService) *TaskHandler {
	return &TaskHandler{store: store}
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	writeJSON(w, http.StatusOK, snapshot.Tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input models.Task
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.store.CreateTask(input)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["taskId"]

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.store.UpdateTask(id, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["taskId"]

	if err := h.store.DeleteTask(id); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// MoveTask is the drag-and-drop boundary: a (taskId, destinationStatus) pair
// moves one task to another board column and changes nothing else.
func (h *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	var request struct {
		TaskID string            `json:"taskId"`
		Status models.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	task, err := h.store.MoveTask(request.TaskID, request.Status)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) AddSubtask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	var request struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.store.AddSubtask(taskID, request.Text)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) ToggleSubtask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	task, err := h.store.ToggleSubtask(vars["taskId"], vars["subtaskId"])
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) RemoveSubtask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	task, err := h.store.RemoveSubtask(vars["taskId"], vars["subtaskId"])
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}
