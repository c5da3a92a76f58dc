package middleware

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"promptforge-backend/internal/models"
)

// TrafficCategory is the admission-control class of a request, decided from
// path and method alone. It is unrelated to project categories.
type TrafficCategory string

const (
	TrafficDefault TrafficCategory = "default"
	TrafficAuth    TrafficCategory = "auth"
	TrafficAI      TrafficCategory = "ai-generation"
	TrafficProject TrafficCategory = "project-mutation"
)

// Budget is one category's ceiling: Limit requests per Window.
type Budget struct {
	Limit   int
	Window  time.Duration
	Message string
}

type record struct {
	count       int
	windowStart time.Time
}

type clientKey struct {
	ip       string
	category TrafficCategory
}

// AdmissionController gates every inbound request before routing. Counters
// are per (client IP, category), in-memory and per-process.
type AdmissionController struct {
	mu      sync.Mutex
	records map[clientKey]*record

	budgets   map[TrafficCategory]Budget
	whitelist map[string]struct{}
	bypassAll bool
}

// NewAdmissionController builds the controller. bypassAll disables
// enforcement entirely (non-production mode); whitelisted IPs are never
// denied either way. Stale records are evicted in the background so the
// counter map does not grow for the process lifetime.
func NewAdmissionController(budgets map[TrafficCategory]Budget, whitelist []string, bypassAll bool) *AdmissionController {
	wl := make(map[string]struct{}, len(whitelist))
	for _, ip := range whitelist {
		wl[ip] = struct{}{}
	}

	a := &AdmissionController{
		records:   make(map[clientKey]*record),
		budgets:   budgets,
		whitelist: wl,
		bypassAll: bypassAll,
	}

	go func() {
		for {
			time.Sleep(time.Minute)
			a.evictStale()
		}
	}()

	return a
}

// Classify applies the fixed, ordered routing rules; first match wins.
func Classify(path, method string) TrafficCategory {
	if strings.Contains(path, "/auth/") {
		return TrafficAuth
	}
	if strings.Contains(path, "/template") || strings.Contains(path, "/chat") {
		return TrafficAI
	}
	if strings.Contains(path, "/projects") && isMutating(method) {
		return TrafficProject
	}
	return TrafficDefault
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// Middleware classifies every request and enforces the category budget.
// Denial is a hard 429 with its own envelope; the handler never runs.
func (a *AdmissionController) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		category := Classify(r.URL.Path, r.Method)
		ip := clientIP(r)

		if a.bypassAll || a.isWhitelisted(ip) {
			// Classification still ran; enforcement is skipped.
			a.observe(ip, category)
			next.ServeHTTP(w, r)
			return
		}

		if allowed, budget := a.admit(ip, category); !allowed {
			log.Printf("Rate limit exceeded: ip=%s category=%s", ip, category)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(models.RateLimitResponse{
				Status:  "error",
				Message: budget.Message,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// admit increments the counter for (ip, category), resetting the window
// first if it has elapsed, and reports whether the request stays within the
// ceiling. The increment happens entirely under the lock.
func (a *AdmissionController) admit(ip string, category TrafficCategory) (bool, Budget) {
	budget := a.budgets[category]
	key := clientKey{ip: ip, category: category}
	now := time.Now()

	a.mu.Lock()
	defer a.mu.Unlock()

	rec, exists := a.records[key]
	if !exists {
		rec = &record{windowStart: now}
		a.records[key] = rec
	} else if now.Sub(rec.windowStart) >= budget.Window {
		rec.count = 0
		rec.windowStart = now
	}

	rec.count++
	return rec.count <= budget.Limit, budget
}

// observe counts a bypassed request without enforcing the ceiling.
func (a *AdmissionController) observe(ip string, category TrafficCategory) {
	a.admit(ip, category)
}

func (a *AdmissionController) isWhitelisted(ip string) bool {
	_, ok := a.whitelist[ip]
	return ok
}

func (a *AdmissionController) evictStale() {
	now := time.Now()

	a.mu.Lock()
	defer a.mu.Unlock()

	for key, rec := range a.records {
		window := a.budgets[key.category].Window
		if now.Sub(rec.windowStart) >= 2*window {
			delete(a.records, key)
		}
	}
}

func clientIP(r *http.Request) string {
	// RealIP middleware may have already stripped the port.
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
