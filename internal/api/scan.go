package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apierrors "github.com/secura-scan/securascan/internal/errors"
)

// ScanHandler serves the mock reputation endpoints: domain scan, IP lookup,
// security news, and API usage. Each returns a fixed structure; real
// upstream integrations are out of scope.
type ScanHandler struct {
	logger *zap.Logger
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(logger *zap.Logger) *ScanHandler {
	return &ScanHandler{logger: logger}
}

type scanDomainRequest struct {
	Domain any `json:"domain"`
}

type scanDomainResponse struct {
	Success    bool   `json:"success"`
	Domain     any    `json:"domain"`
	Reputation string `json:"reputation"`
	Malicious  int    `json:"malicious"`
	Harmless   int    `json:"harmless"`
	Timestamp  string `json:"timestamp"`
	Note       string `json:"note"`
}

// ScanDomain returns the mocked always-clean reputation. This is the one
// endpoint where an internal failure surfaces as a 500.
func (h *ScanHandler) ScanDomain(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("domain scan failed", zap.Any("panic", rec))
			writeError(w, apierrors.Internal("Domain scan failed"))
		}
	}()

	var req scanDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.Validation("Domain is required"))
		return
	}

	// Presence check only; the value is echoed back untouched.
	if req.Domain == nil || req.Domain == "" {
		writeError(w, apierrors.Validation("Domain is required"))
		return
	}

	writeJSON(w, http.StatusOK, scanDomainResponse{
		Success:    true,
		Domain:     req.Domain,
		Reputation: "Clean",
		Malicious:  0,
		Harmless:   65,
		Timestamp:  timestamp(),
		Note:       "Add VirusTotal API key for real scanning",
	})
}

type myIPResponse struct {
	Success   bool   `json:"success"`
	IP        string `json:"ip"`
	Country   string `json:"country"`
	Timestamp string `json:"timestamp"`
}

// MyIP returns the fixed mock address.
func (h *ScanHandler) MyIP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, myIPResponse{
		Success:   true,
		IP:        "8.8.8.8",
		Country:   "United States",
		Timestamp: timestamp(),
	})
}

type securityNewsResponse struct {
	Success   bool     `json:"success"`
	Stories   []string `json:"stories"`
	Timestamp string   `json:"timestamp"`
}

// SecurityNews returns an empty story list.
func (h *ScanHandler) SecurityNews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, securityNewsResponse{
		Success:   true,
		Stories:   []string{},
		Timestamp: timestamp(),
	})
}

type apiUsageResponse struct {
	Success   bool              `json:"success"`
	Usage     map[string]string `json:"usage"`
	Timestamp string            `json:"timestamp"`
}

// APIUsage returns an empty usage map.
func (h *ScanHandler) APIUsage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiUsageResponse{
		Success:   true,
		Usage:     map[string]string{},
		Timestamp: timestamp(),
	})
}
