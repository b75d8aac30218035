// Package fakehub provides an in-process fake portal REST server for
// tests. It implements the handful of sharing API endpoints the SDK
// calls with permissive defaults, records every request, and lets tests
// stub individual endpoints or inject portal error envelopes and delays.
package fakehub

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/esri/hub.go/internal/codec"
)

// RecordedRequest captures one request the fake portal served. Form holds
// the merged query and body parameters, including `f` and `token`.
type RecordedRequest struct {
	Method string
	Path   string
	Form   url.Values
}

// StubFunc produces the response body for a stubbed endpoint.
type StubFunc func(form url.Values) any

// Server is a fake portal. Zero-value defaults accept every operation:
// all users are added, invitations and notifications succeed.
type Server struct {
	ts *httptest.Server

	mu       sync.Mutex
	stubs    map[string]StubFunc
	notAdded map[string][]string
	requests []RecordedRequest
	delay    time.Duration
}

func New() *Server {
	s := &Server{
		stubs:    map[string]StubFunc{},
		notAdded: map[string][]string{},
	}
	s.ts = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) URL() string {
	return s.ts.URL
}

func (s *Server) Close() {
	s.ts.Close()
}

// Stub replaces the response for an exact request path.
func (s *Server) Stub(path string, fn StubFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubs[path] = fn
}

// RefuseAutoAdd makes subsequent addUsers calls for the group report the
// given usernames as not added.
func (s *Server) RefuseAutoAdd(groupID string, names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notAdded[groupID] = names
}

// SetResponseDelay delays every response by d.
func (s *Server) SetResponseDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Requests returns every request served so far, in order.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest{}, s.requests...)
}

// RequestsTo returns the served requests whose path matches exactly.
func (s *Server) RequestsTo(path string) []RecordedRequest {
	matched := []RecordedRequest{}
	for _, r := range s.Requests() {
		if r.Path == path {
			matched = append(matched, r)
		}
	}
	return matched
}

// ErrorEnvelope builds the portal's error body. The portal delivers it
// with an HTTP 200 status.
func ErrorEnvelope(code int, message string) any {
	return map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Form:   r.Form,
	})
	stub := s.stubs[r.URL.Path]
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	var body any
	switch {
	case stub != nil:
		body = stub(r.Form)
	default:
		body = s.defaultResponse(r)
	}

	data, err := codec.JSON{}.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) defaultResponse(r *http.Request) any {
	path := r.URL.Path

	switch {
	case strings.HasPrefix(path, "/community/groups/") && strings.HasSuffix(path, "/addUsers"):
		groupID := strings.TrimSuffix(strings.TrimPrefix(path, "/community/groups/"), "/addUsers")
		s.mu.Lock()
		refused := s.notAdded[groupID]
		s.mu.Unlock()
		if refused == nil {
			refused = []string{}
		}
		return map[string]any{"notAdded": refused}

	case strings.HasPrefix(path, "/community/groups/") && strings.HasSuffix(path, "/invite"):
		return map[string]any{"success": true}

	case path == "/portals/self/createNotification":
		return map[string]any{"success": true, "notificationId": uuid.NewString()}

	case path == "/portals/self":
		return map[string]any{
			"id":   "org1",
			"name": "Fake Portal",
			"user": map[string]any{"username": "fake_admin", "orgId": "org1", "role": "org_admin"},
			"portalProperties": map[string]any{
				"hub": map[string]any{
					"enabled": true,
					"settings": map[string]any{
						"communityOrg": map[string]any{"orgId": "community1"},
					},
				},
			},
		}
	}

	return ErrorEnvelope(400, "Invalid URL")
}
