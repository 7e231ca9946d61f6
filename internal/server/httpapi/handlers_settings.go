package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/umeduck/quack-note/internal/server/settings"
)

// saveSettingsRequest wraps the writable fields under a "settings" key.
// A missing or empty wrapper clears all fields, keeping the original
// full-replace semantics.
type saveSettingsRequest struct {
	Settings settings.Update `json:"settings"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	found, err := s.settings.Get(r.Context(), userID(r.Context()))
	if err != nil {
		s.logger.Error(r.Context(), "settings fetch failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to fetch settings"})
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var req saveSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "request body must be valid JSON"})
		return
	}

	saved, err := s.settings.Save(r.Context(), userID(r.Context()), req.Settings)
	if err != nil {
		s.logger.Error(r.Context(), "settings save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to save settings"})
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleTestSlack(w http.ResponseWriter, r *http.Request) {
	url, err := s.settings.TestSlack(r.Context(), userID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrWebhookNotConfigured):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "Slack webhook URL is not configured"})
		case errors.Is(err, settings.ErrStoreUnavailable):
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to send Slack notification", Details: err.Error()})
		default:
			// the webhook itself rejected the delivery
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Failed to send Slack notification", Details: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":     "Slack notification sent successfully",
		"webhook_url": url,
	})
}
