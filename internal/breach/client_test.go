package breach

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const (
	testPrefix = "5BAA6"
	testSuffix = "1E4C9B93F3F0682250B6CF8331B7EE68FD8"
)

func TestClient_LookupMatch(t *testing.T) {
	var gotPath, gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n" +
			testSuffix + ":10437277\r\n" +
			"011053FD0102E94D6AE2F8B83D76FAF94F6:1\r\n"))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})

	res, err := c.Lookup(context.Background(), testPrefix, testSuffix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Error("expected suffix to be found")
	}
	if res.Count != 10437277 {
		t.Errorf("count = %d, want 10437277", res.Count)
	}
	if gotPath != "/range/"+testPrefix {
		t.Errorf("path = %q, want /range/%s", gotPath, testPrefix)
	}
	if gotUA != "securascan-security-api" {
		t.Errorf("User-Agent = %q, want securascan-security-api", gotUA)
	}
	if gotAccept != "text/plain" {
		t.Errorf("Accept = %q, want text/plain", gotAccept)
	}
}

func TestClient_LookupNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0018A45C4D1DEF81644B54AB7F969B88D65:3\n"))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})

	res, err := c.Lookup(context.Background(), testPrefix, testSuffix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found {
		t.Error("expected no match")
	}
	if res.Count != 0 {
		t.Errorf("count = %d, want 0", res.Count)
	}
}

func TestClient_LookupCaseSensitiveMatch(t *testing.T) {
	// Lowercased suffixes from a misbehaving upstream must not match.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1e4c9b93f3f0682250b6cf8331b7ee68fd8:42\n"))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})

	res, err := c.Lookup(context.Background(), testPrefix, testSuffix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found {
		t.Error("lowercase suffix should not match")
	}
}

func TestClient_LookupNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})

	if _, err := c.Lookup(context.Background(), testPrefix, testSuffix); err == nil {
		t.Error("expected error for non-2xx status")
	}
}

func TestClient_LookupTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})

	if _, err := c.Lookup(context.Background(), testPrefix, testSuffix); err == nil {
		t.Error("expected timeout error")
	}
}

func TestClient_LookupMalformedCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testSuffix + ":not-a-number\n"))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})

	if _, err := c.Lookup(context.Background(), testPrefix, testSuffix); err == nil {
		t.Error("expected error for malformed count on matching line")
	}
}

func TestClient_LookupIgnoresJunkLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("garbage line without separator\n\n" + testSuffix + ":7\n"))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})

	res, err := c.Lookup(context.Background(), testPrefix, testSuffix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found || res.Count != 7 {
		t.Errorf("result = %+v, want found with count 7", res)
	}
}

func TestClient_BreakerShortCircuits(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL: srv.URL,
		Timeout: time.Second,
		Breaker: CircuitBreakerConfig{FailThreshold: 2, OpenDuration: time.Minute},
	})

	c.Lookup(context.Background(), testPrefix, testSuffix)
	c.Lookup(context.Background(), testPrefix, testSuffix)

	_, err := c.Lookup(context.Background(), testPrefix, testSuffix)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable once circuit is open", err)
	}
	if hits != 2 {
		t.Errorf("upstream hits = %d, want 2 (third call short-circuited)", hits)
	}
}
