package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Shrawan0701/webanalytics/internal/agent"
	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"github.com/Shrawan0701/webanalytics/internal/app/repository"
	"github.com/Shrawan0701/webanalytics/internal/app/service"
	"github.com/Shrawan0701/webanalytics/internal/http/middleware"
)

type sinkEmitter struct {
	mu     sync.Mutex
	events []model.TrackedEvent
}

func (s *sinkEmitter) Emit(event model.TrackedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *sinkEmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func newTestServer(t *testing.T, rejected func()) (*Server, *sinkEmitter) {
	t.Helper()

	emitter := &sinkEmitter{}
	tracker := agent.NewTracker(emitter, repository.NewMemoryMarkers(), nil)
	relay := service.NewRelayService(tracker, nil, nil)

	srv, err := New(Dependencies{
		Relay:         relay,
		PublicBaseURL: "https://agent.example.com",
		RateLimit:     middleware.DefaultRateLimitConfig(),
		Rejected:      rejected,
	})
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv, emitter
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestServer_TrackingScript(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/tracking.js", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "javascript") {
		t.Fatalf("expected javascript content type, got %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "https://agent.example.com/collect") {
		t.Fatal("expected shim to target the public collect endpoint")
	}
}

func TestServer_CollectAcceptsPageView(t *testing.T) {
	srv, emitter := newTestServer(t, nil)

	payload := `{"websiteId":"site-1","sessionId":"sess-a","type":"page_view","url":"https://example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/collect", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}

	// page_view plus the first-visit unique_visitor.
	if got := emitter.count(); got != 2 {
		t.Fatalf("expected 2 forwarded events, got %d", got)
	}
}

func TestServer_CollectRejectsMissingWebsiteID(t *testing.T) {
	var rejected atomic.Int64
	srv, emitter := newTestServer(t, func() { rejected.Add(1) })

	payload := `{"type":"page_view","url":"https://example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/collect", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := emitter.count(); got != 0 {
		t.Fatalf("expected nothing forwarded, got %d", got)
	}
	if rejected.Load() != 1 {
		t.Fatalf("expected 1 rejection counted, got %d", rejected.Load())
	}
}

func TestServer_CollectRejectsMalformedBody(t *testing.T) {
	srv, emitter := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/collect", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := emitter.count(); got != 0 {
		t.Fatalf("expected nothing forwarded, got %d", got)
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header on every response")
	}
}
