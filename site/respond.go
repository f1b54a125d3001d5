package site

import (
	"encoding/json"
	"net/http"

	"dealdesk/logging"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondInternal logs the unexpected error and returns a generic 500.
// The underlying message never reaches the caller.
func respondInternal(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logging.Error().Err(err).Str("path", r.URL.Path).Msg(msg)
	respondError(w, http.StatusInternalServerError, "internal server error")
}
