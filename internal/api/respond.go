package api

import (
	"encoding/json"
	"net/http"
	"time"

	apierrors "github.com/secura-scan/securascan/internal/errors"
)

// errorResponse is the wire shape for every client-visible failure.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError writes the flat {success:false, error} failure shape.
func writeError(w http.ResponseWriter, err *apierrors.APIError) {
	writeJSON(w, err.Status, errorResponse{Success: false, Error: err.Message})
}

// timestamp returns the response timestamp in RFC3339 UTC.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
