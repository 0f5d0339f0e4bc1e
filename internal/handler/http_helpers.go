package handler

import (
	"encoding/json"
	"net/http"

	apperrors "office-converter/pkg/errors"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a plain error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError maps an application error to its HTTP status and a short
// machine-readable body. The cause chain (which may hold engine stderr or
// internal paths) is never serialized.
func writeAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		writeJSON(w, appErr.StatusCode, map[string]string{
			"error":   string(appErr.Type),
			"message": appErr.Message,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   string(apperrors.ErrorTypeInternal),
		"message": "internal error",
	})
}
