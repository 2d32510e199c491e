package handlers

import (
	"encoding/json"
	"net/http"

	"proflow/logging"
	"proflow/models"
	"proflow/services"
	"proflow/utils"
)

type LoginRequest struct {
	MemberID string `json:"memberId"`
}

type LoginResponse struct {
	Token  string             `json:"token"`
	Member *models.TeamMember `json:"member"`
}

type AuthHandler struct {
	store *services.StoreService
}

func NewAuthHandler(store *services.StoreService) *AuthHandler {
	return &AuthHandler{store: store}
}

// Login sets the current user on the store and issues a session token. An
// empty memberId logs in the default user (the first Project Manager).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
	}

	member, err := h.store.Login(req.MemberID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	token, err := utils.GenerateToken(member.ID, member.Name, member.Role)
	if err != nil {
		logging.Logger.Errorf("Event ID: TOKEN_GENERATION_FAILED, Description: Failed to generate token for member %s: %v", member.ID, err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Member: member})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Logout()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// CurrentUser returns the logged-in member, or 204 when nobody is logged in.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	member := h.store.CurrentUser()
	if member == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, member)
}
