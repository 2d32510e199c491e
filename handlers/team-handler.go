package handlers

import (
	"net/http"

	"proflow/services"

	"github.com/gorilla/mux"
)

type TeamHandler struct {
	store *services.StoreService
}

func NewTeamHandler(store *services.StoreService) *TeamHandler {
	return &TeamHandler{store: store}
}

func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	writeJSON(w, http.StatusOK, snapshot.Team)
}

func (h *TeamHandler) GetTeamMember(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["memberId"]

	member, ok := h.store.GetTeamMember(id)
	if !ok {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, member)
}
