package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestScanDomain(t *testing.T) {
	h := NewScanHandler(zap.NewNop())

	t.Run("success is constant", func(t *testing.T) {
		w := postJSON(t, h.ScanDomain, "/api/security/scan-domain", `{"domain":"example.com"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		body := decodeBody(t, w)
		if body["success"] != true {
			t.Errorf("success = %v, want true", body["success"])
		}
		if body["domain"] != "example.com" {
			t.Errorf("domain = %v, want example.com", body["domain"])
		}
		if body["reputation"] != "Clean" {
			t.Errorf("reputation = %v, want Clean", body["reputation"])
		}
		if body["malicious"] != float64(0) {
			t.Errorf("malicious = %v, want 0", body["malicious"])
		}
		if body["harmless"] != float64(65) {
			t.Errorf("harmless = %v, want 65", body["harmless"])
		}
	})

	t.Run("missing domain", func(t *testing.T) {
		for _, body := range []string{`{}`, `{"domain":""}`, `{"domain":null}`} {
			w := postJSON(t, h.ScanDomain, "/api/security/scan-domain", body)

			if w.Code != http.StatusBadRequest {
				t.Errorf("body %q: status = %d, want 400", body, w.Code)
			}
			resp := decodeBody(t, w)
			if resp["error"] != "Domain is required" {
				t.Errorf("body %q: error = %v", body, resp["error"])
			}
		}
	})

	t.Run("non-string domain echoed back", func(t *testing.T) {
		// Presence is the only check; a numeric value passes through.
		w := postJSON(t, h.ScanDomain, "/api/security/scan-domain", `{"domain":7}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		body := decodeBody(t, w)
		if body["domain"] != float64(7) {
			t.Errorf("domain = %v, want 7", body["domain"])
		}
	})
}

func TestMyIP(t *testing.T) {
	h := NewScanHandler(zap.NewNop())
	w := httptest.NewRecorder()
	h.MyIP(w, httptest.NewRequest(http.MethodGet, "/api/security/my-ip", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["ip"] != "8.8.8.8" {
		t.Errorf("ip = %v, want 8.8.8.8", body["ip"])
	}
	if body["country"] != "United States" {
		t.Errorf("country = %v, want United States", body["country"])
	}
}

func TestSecurityNews(t *testing.T) {
	h := NewScanHandler(zap.NewNop())
	w := httptest.NewRecorder()
	h.SecurityNews(w, httptest.NewRequest(http.MethodGet, "/api/security/security-news", nil))

	body := decodeBody(t, w)
	stories, ok := body["stories"].([]any)
	if !ok || len(stories) != 0 {
		t.Errorf("stories = %v, want empty array", body["stories"])
	}
}

func TestAPIUsage(t *testing.T) {
	h := NewScanHandler(zap.NewNop())
	w := httptest.NewRecorder()
	h.APIUsage(w, httptest.NewRequest(http.MethodGet, "/api/security/api-usage", nil))

	body := decodeBody(t, w)
	usage, ok := body["usage"].(map[string]any)
	if !ok || len(usage) != 0 {
		t.Errorf("usage = %v, want empty object", body["usage"])
	}
}
