package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/secura-scan/securascan/internal/breach"
	apierrors "github.com/secura-scan/securascan/internal/errors"
	"github.com/secura-scan/securascan/internal/password"
)

// BreachLookup is the interface the password handler needs from the
// breach-lookup client.
type BreachLookup interface {
	Lookup(ctx context.Context, prefix, suffix string) (breach.Result, error)
}

// PasswordHandler serves the password breach/strength check.
type PasswordHandler struct {
	lookup BreachLookup
	logger *zap.Logger
}

// NewPasswordHandler creates a new PasswordHandler.
func NewPasswordHandler(lookup BreachLookup, logger *zap.Logger) *PasswordHandler {
	return &PasswordHandler{lookup: lookup, logger: logger}
}

type checkPasswordRequest struct {
	Password any `json:"password"`
}

type passwordCheckResponse struct {
	Success      bool     `json:"success"`
	Pwned        bool     `json:"pwned"`
	BreachCount  int      `json:"breachCount"`
	Strength     string   `json:"strength"`
	Score        int      `json:"score"`
	MaxScore     int      `json:"maxScore"`
	Length       int      `json:"length"`
	HasUppercase bool     `json:"hasUppercase"`
	HasLowercase bool     `json:"hasLowercase"`
	HasNumbers   bool     `json:"hasNumbers"`
	HasSpecial   bool     `json:"hasSpecial"`
	Suggestions  []string `json:"suggestions"`
	Source       string   `json:"source"`
	Timestamp    string   `json:"timestamp"`
	Note         string   `json:"note"`
}

// passwordFallbackResponse is the degraded shape used when the breach lookup
// collaborator is unreachable.
type passwordFallbackResponse struct {
	Success     bool   `json:"success"`
	Pwned       bool   `json:"pwned"`
	BreachCount int    `json:"breachCount"`
	Strength    string `json:"strength"`
	Score       int    `json:"score"`
	Source      string `json:"source"`
	Timestamp   string `json:"timestamp"`
	Note        string `json:"note"`
}

// Check assesses a password: k-anonymity breach lookup plus the local
// heuristic strength score. A failed lookup degrades to the offline check
// rather than failing the request.
func (h *PasswordHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.Validation("Password is required"))
		return
	}

	pw, ok := req.Password.(string)
	if !ok || pw == "" {
		writeError(w, apierrors.Validation("Password is required"))
		return
	}

	fp := password.NewFingerprint(pw)

	res, err := h.lookup.Lookup(r.Context(), fp.Prefix, fp.Suffix)
	if err != nil {
		h.logger.Warn("breach lookup failed, using fallback check", zap.Error(err))
		h.respondFallback(w, pw)
		return
	}

	s := password.Evaluate(pw)

	note := "Good! This password is not in known breach databases"
	if res.Found {
		note = fmt.Sprintf("This password was found %d times in data breaches", res.Count)
	}

	writeJSON(w, http.StatusOK, passwordCheckResponse{
		Success:      true,
		Pwned:        res.Found,
		BreachCount:  res.Count,
		Strength:     s.Label,
		Score:        s.Score,
		MaxScore:     password.MaxScore,
		Length:       s.Length,
		HasUppercase: s.HasUppercase,
		HasLowercase: s.HasLowercase,
		HasNumbers:   s.HasNumbers,
		HasSpecial:   s.HasSpecial,
		Suggestions:  suggestionsOrEmpty(s.Suggestions),
		Source:       "Have I Been Pwned API",
		Timestamp:    timestamp(),
		Note:         note,
	})
}

func (h *PasswordHandler) respondFallback(w http.ResponseWriter, pw string) {
	fb := password.FallbackCheck(pw)

	writeJSON(w, http.StatusOK, passwordFallbackResponse{
		Success:     true,
		Pwned:       fb.Pwned,
		BreachCount: fb.BreachCount,
		Strength:    fb.Label,
		Score:       fb.Score,
		Source:      "Fallback Check",
		Timestamp:   timestamp(),
		Note:        "Breach lookup service unavailable - Using fallback check",
	})
}

// suggestionsOrEmpty keeps the suggestions field a JSON array, never null.
func suggestionsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
