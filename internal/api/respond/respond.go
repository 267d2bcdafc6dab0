package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/slidedeckhq/slidedeck-be/internal/apperr"
)

// JSON writes a JSON response body with the given status.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Message writes a {"message": ...} body.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error maps a service error to its HTTP response. Taxonomy errors carry
// their own status and message; anything else becomes a 500 whose body
// echoes the failure detail. This service is an internal tool, so the detail
// is intentionally not hidden from the caller.
func Error(w http.ResponseWriter, err error, fallbackMsg string) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		Message(w, appErr.Status, appErr.Message)
		return
	}
	log.Error().Err(err).Msg(fallbackMsg)
	JSON(w, http.StatusInternalServerError, map[string]string{
		"message": fallbackMsg,
		"error":   err.Error(),
	})
}
