// Package testutil provides testing utilities for the on-call hours tooling.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/sre-utils/oncall-hours/pkg/oncall"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockAPI is a configurable mock of the on-call REST API for testing.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	Offsets           []int
	LastRequestHeader http.Header
}

// NewMockAPI creates a new mock on-call API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
			mock.Offsets = append(mock.Offsets, offset)
		}
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		http.NotFound(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.Offsets = nil
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple canned response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// ServeOncalls serves /oncalls from the given record set, slicing per the
// request's limit/offset and reporting the exact total for the bounds.
// Records are matched to a request by their start time when the request
// carries since/until bounds; open bounds match everything.
func (m *MockAPI) ServeOncalls(records []oncall.Record) {
	m.SetHandler("/oncalls", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		limit, err := strconv.Atoi(q.Get("limit"))
		if err != nil || limit <= 0 {
			limit = 25
		}
		offset, _ := strconv.Atoi(q.Get("offset"))

		in := filterByBounds(records, q.Get("since"), q.Get("until"))

		page := []oncall.Record{}
		if offset < len(in) {
			end := offset + limit
			if end > len(in) {
				end = len(in)
			}
			page = in[offset:end]
		}

		json.NewEncoder(w).Encode(map[string]any{
			"oncalls": page,
			"limit":   limit,
			"offset":  offset,
			"more":    offset+len(page) < len(in),
			"total":   len(in),
		})
	})
}

// ServeEscalationPolicies serves /escalation_policies as a single unpaginated
// listing.
func (m *MockAPI) ServeEscalationPolicies(policies []oncall.EscalationPolicy) {
	m.SetHandler("/escalation_policies", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"escalation_policies": policies,
		})
	})
}

func filterByBounds(records []oncall.Record, since, until string) []oncall.Record {
	sinceT, sinceOK := parseBound(since)
	untilT, untilOK := parseBound(until)

	in := make([]oncall.Record, 0, len(records))
	for _, rec := range records {
		start, err := time.Parse(time.RFC3339, rec.Start)
		if err != nil {
			continue
		}
		if sinceOK && start.Before(sinceT) {
			continue
		}
		if untilOK && !start.Before(untilT) {
			continue
		}
		in = append(in, rec)
	}
	return in
}

func parseBound(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
