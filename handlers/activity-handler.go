package handlers

import (
	"net/http"
	"time"

	"proflow/models"
	"proflow/services"
)

type ActivityHandler struct {
	store *services.StoreService
}

func NewActivityHandler(store *services.StoreService) *ActivityHandler {
	return &ActivityHandler{store: store}
}

// GetActivity returns the capped activity log, newest first, with relative
// time labels refreshed against the current clock.
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	now := time.Now()

	out := make([]models.ActivityEntry, 0, len(snapshot.Activity))
	for _, e := range snapshot.Activity {
		e.Time = services.RelativeLabel(e.Timestamp, now)
		out = append(out, e)
	}

	writeJSON(w, http.StatusOK, out)
}
