package controllertraits

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// WriteResponse writes payload as a JSON body with status 200.
func WriteResponse(w http.ResponseWriter, payload interface{}) {
	WriteResponseWithStatus(w, http.StatusOK, payload)
}

// WriteResponseWithStatus writes payload as a JSON body with the given status.
func WriteResponseWithStatus(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.S().Errorf("Failed to encode response: %v", err)
	}
}

// WriteErrorResponse writes a JSON error body with the given status.
func WriteErrorResponse(w http.ResponseWriter, status int, message string) {
	WriteResponseWithStatus(w, status, map[string]string{"error": message})
}
