package api

import "net/http"

// Version is the API version reported by the health and root endpoints.
const Version = "1.0.0"

// serviceName is the human-readable service identifier.
const serviceName = "SecuraScan Security API"

// features lists the checks this deployment performs.
var features = []string{
	"Real Breach Database Password Checking",
	"Reliable Email Breach Checking",
	"Domain Security Scanning",
	"IP Geolocation",
	"Security News",
}

type healthResponse struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Timestamp string   `json:"timestamp"`
	Features  []string `json:"features"`
}

type rootResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Version     string            `json:"version"`
	Timestamp   string            `json:"timestamp"`
	Endpoints   map[string]string `json:"endpoints"`
	Note        string            `json:"note"`
}

// HealthHandler serves the health probe and the root service descriptor.
type HealthHandler struct{}

// Health reports liveness plus the feature list.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   serviceName,
		Version:   Version,
		Timestamp: timestamp(),
		Features:  features,
	})
}

// Root returns the service descriptor and endpoint map.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Name:        serviceName,
		Description: "Reliable cybersecurity monitoring",
		Version:     Version,
		Timestamp:   timestamp(),
		Endpoints: map[string]string{
			"password": "POST /api/security/check-password",
			"email":    "POST /api/security/check-email",
			"domain":   "POST /api/security/scan-domain",
			"health":   "GET /api/health",
		},
		Note: "Password checking uses a real breach database. Email checking uses reliable pattern matching.",
	})
}
