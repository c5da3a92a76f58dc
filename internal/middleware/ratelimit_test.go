package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testBudgets() map[TrafficCategory]Budget {
	return map[TrafficCategory]Budget{
		TrafficAuth:    {Limit: 5, Window: 15 * time.Minute, Message: "Too many authentication attempts, please try again later."},
		TrafficAI:      {Limit: 10, Window: time.Hour, Message: "You have reached the limit of AI generation requests. Please try again later or upgrade your plan."},
		TrafficProject: {Limit: 20, Window: time.Hour, Message: "You have reached the project creation/update limit. Please try again later."},
		TrafficDefault: {Limit: 100, Window: 15 * time.Minute, Message: "Too many requests, please try again later."},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		method   string
		expected TrafficCategory
	}{
		{"login", "/api/v1/auth/login", http.MethodPost, TrafficAuth},
		{"register", "/api/v1/auth/register", http.MethodPost, TrafficAuth},
		{"template", "/api/v1/generate/template", http.MethodPost, TrafficAI},
		{"chat", "/api/v1/generate/chat", http.MethodPost, TrafficAI},
		{"create project", "/api/v1/projects", http.MethodPost, TrafficProject},
		{"update project", "/api/v1/projects/abc", http.MethodPut, TrafficProject},
		{"delete project", "/api/v1/projects/abc", http.MethodDelete, TrafficProject},
		{"read project", "/api/v1/projects/abc", http.MethodGet, TrafficDefault},
		{"list projects", "/api/v1/projects/user", http.MethodGet, TrafficDefault},
		{"health", "/health", http.MethodGet, TrafficDefault},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.path, tc.method); got != tc.expected {
				t.Errorf("Classify(%q, %q) = %q, want %q", tc.path, tc.method, got, tc.expected)
			}
		})
	}
}

func newTestController(whitelist []string, bypassAll bool) *AdmissionController {
	// Built directly so tests do not spawn the eviction goroutine.
	wl := make(map[string]struct{}, len(whitelist))
	for _, ip := range whitelist {
		wl[ip] = struct{}{}
	}
	return &AdmissionController{
		records:   make(map[clientKey]*record),
		budgets:   testBudgets(),
		whitelist: wl,
		bypassAll: bypassAll,
	}
}

func doRequest(t *testing.T, handler http.Handler, path, method, ip string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":54321"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestAdmission_DeniesOverCeiling(t *testing.T) {
	ac := newTestController(nil, false)

	handled := 0
	handler := ac.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 1; i <= 5; i++ {
		rr := doRequest(t, handler, "/api/v1/auth/login", http.MethodPost, "10.1.1.1")
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}

	rr := doRequest(t, handler, "/api/v1/auth/login", http.MethodPost, "10.1.1.1")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("6th request: expected 429, got %d", rr.Code)
	}
	if handled != 5 {
		t.Errorf("Expected handler to run 5 times, ran %d", handled)
	}

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode denial body: %v", err)
	}
	if body.Status != "error" {
		t.Errorf("Expected status 'error', got %q", body.Status)
	}
	if body.Message != testBudgets()[TrafficAuth].Message {
		t.Errorf("Expected auth-category message, got %q", body.Message)
	}
}

func TestAdmission_WindowReset(t *testing.T) {
	ac := newTestController(nil, false)
	handler := ac.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 6; i++ {
		doRequest(t, handler, "/api/v1/auth/login", http.MethodPost, "10.2.2.2")
	}

	// Rewind the window start past the boundary: the next request must open
	// a fresh window and count as request 1.
	key := clientKey{ip: "10.2.2.2", category: TrafficAuth}
	ac.mu.Lock()
	ac.records[key].windowStart = time.Now().Add(-16 * time.Minute)
	ac.mu.Unlock()

	rr := doRequest(t, handler, "/api/v1/auth/login", http.MethodPost, "10.2.2.2")
	if rr.Code != http.StatusOK {
		t.Fatalf("Post-window request: expected 200, got %d", rr.Code)
	}

	ac.mu.Lock()
	count := ac.records[key].count
	ac.mu.Unlock()
	if count != 1 {
		t.Errorf("Expected counter reset to 1 in new window, got %d", count)
	}
}

func TestAdmission_IndependentClients(t *testing.T) {
	ac := newTestController(nil, false)
	handler := ac.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 6; i++ {
		doRequest(t, handler, "/api/v1/auth/login", http.MethodPost, "10.3.3.3")
	}

	rr := doRequest(t, handler, "/api/v1/auth/login", http.MethodPost, "10.4.4.4")
	if rr.Code != http.StatusOK {
		t.Errorf("Different client should not share a counter, got %d", rr.Code)
	}
}

func TestAdmission_WhitelistNeverDenied(t *testing.T) {
	ac := newTestController([]string{"10.5.5.5"}, false)
	handler := ac.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 1; i <= 50; i++ {
		rr := doRequest(t, handler, "/api/v1/auth/login", http.MethodPost, "10.5.5.5")
		if rr.Code != http.StatusOK {
			t.Fatalf("Whitelisted request %d denied with %d", i, rr.Code)
		}
	}

	// Classification still ran for observability.
	ac.mu.Lock()
	_, tracked := ac.records[clientKey{ip: "10.5.5.5", category: TrafficAuth}]
	ac.mu.Unlock()
	if !tracked {
		t.Error("Expected bypassed traffic to still be classified and recorded")
	}
}

func TestAdmission_BypassAllMode(t *testing.T) {
	ac := newTestController(nil, true)
	handler := ac.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 1; i <= 20; i++ {
		rr := doRequest(t, handler, "/api/v1/generate/template", http.MethodPost, "10.6.6.6")
		if rr.Code != http.StatusOK {
			t.Fatalf("Bypass-mode request %d denied with %d", i, rr.Code)
		}
	}
}

func TestEvictStale(t *testing.T) {
	ac := newTestController(nil, false)
	handler := ac.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	doRequest(t, handler, "/api/v1/auth/login", http.MethodPost, "10.7.7.7")

	key := clientKey{ip: "10.7.7.7", category: TrafficAuth}
	ac.mu.Lock()
	ac.records[key].windowStart = time.Now().Add(-31 * time.Minute)
	ac.mu.Unlock()

	ac.evictStale()

	ac.mu.Lock()
	_, exists := ac.records[key]
	ac.mu.Unlock()
	if exists {
		t.Error("Expected stale record to be evicted")
	}
}
