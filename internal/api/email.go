package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/secura-scan/securascan/internal/email"
	apierrors "github.com/secura-scan/securascan/internal/errors"
)

// EmailClassifier is the interface the email handler needs from the
// classification engine.
type EmailClassifier interface {
	Classify(address string) email.Assessment
}

// EmailHandler serves the email breach check.
type EmailHandler struct {
	classifier EmailClassifier
	logger     *zap.Logger
}

// NewEmailHandler creates a new EmailHandler.
func NewEmailHandler(classifier EmailClassifier, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{classifier: classifier, logger: logger}
}

type checkEmailRequest struct {
	Email any `json:"email"`
}

type emailCheckResponse struct {
	Success        bool                  `json:"success"`
	Email          string                `json:"email"`
	Breached       bool                  `json:"breached"`
	Breaches       []email.BreachRecord  `json:"breaches"`
	Count          int                   `json:"count"`
	Source         string                `json:"source"`
	Timestamp      string                `json:"timestamp"`
	Note           string                `json:"note"`
	Warning        string                `json:"warning,omitempty"`
	Recommendation string                `json:"recommendation,omitempty"`
	Analysis       *email.DomainAnalysis `json:"analysis,omitempty"`
	Confidence     string                `json:"confidence"`
}

// Check classifies an email address. Classification failures never surface
// as errors: the handler fails open to a safe verdict with an explicit
// warning, keeping the response a success.
func (h *EmailHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.Validation("Valid email address is required"))
		return
	}

	addr, ok := req.Email.(string)
	if !ok || !strings.Contains(addr, "@") {
		writeError(w, apierrors.Validation("Valid email address is required"))
		return
	}

	a := h.classify(addr)

	writeJSON(w, http.StatusOK, emailCheckResponse{
		Success:        true,
		Email:          addr,
		Breached:       a.Breached,
		Breaches:       a.Breaches,
		Count:          a.Count,
		Source:         a.Source,
		Timestamp:      timestamp(),
		Note:           a.Note,
		Warning:        a.Warning,
		Recommendation: a.Recommendation,
		Analysis:       a.Analysis,
		Confidence:     a.Confidence,
	})
}

// classify runs the classifier, absorbing panics into the fail-open verdict.
func (h *EmailHandler) classify(addr string) (a email.Assessment) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("email classification failed, failing open",
				zap.Any("panic", rec))
			a = email.FailOpen()
		}
	}()
	return h.classifier.Classify(addr)
}
