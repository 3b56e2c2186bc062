package agent

import (
	"context"
	"testing"
	"time"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"github.com/Shrawan0701/webanalytics/internal/app/repository"
)

func TestWebsiteIDFromScriptURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://agent.example.com/tracking.js?website=abc-123", "abc-123"},
		{"https://agent.example.com/tracking.js", ""},
		{"https://agent.example.com/tracking.js?other=x", ""},
		{"://not a url", ""},
	}

	for _, tc := range cases {
		if got := WebsiteIDFromScriptURL(tc.url); got != tc.want {
			t.Fatalf("WebsiteIDFromScriptURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestAgent_DisabledWithoutWebsiteID(t *testing.T) {
	emitter := &captureEmitter{}
	a := New(Config{Emitter: emitter})

	if a.Enabled() {
		t.Fatal("expected agent without website id to be disabled")
	}

	a.Start(context.Background(), "https://example.com")
	a.Click("https://example.com", ClickElement{Tag: "button"})
	a.Custom("https://example.com", "video_play", nil)
	a.Unload("https://example.com")

	if got := len(emitter.all()); got != 0 {
		t.Fatalf("disabled agent emitted %d events", got)
	}
}

func TestAgent_StartEmitsPageViewAndUniqueVisitor(t *testing.T) {
	emitter := &captureEmitter{}
	a := New(Config{
		WebsiteID: "site-1",
		SessionID: "sess-a",
		UserAgent: "ua",
		Emitter:   emitter,
		Markers:   repository.NewMemoryMarkers(),
	})

	a.Start(context.Background(), "https://example.com")

	events := emitter.all()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	types := map[string]bool{}
	for _, ev := range events {
		types[ev.EventType] = true
	}
	if !types[model.EventPageView] || !types[model.EventUniqueVisitor] {
		t.Fatalf("expected page_view and unique_visitor, got %v", types)
	}
}

func TestAgent_SecondStartSuppressesUniqueVisitor(t *testing.T) {
	emitter := &captureEmitter{}
	markers := repository.NewMemoryMarkers()

	for i := 0; i < 2; i++ {
		a := New(Config{
			WebsiteID: "site-1",
			SessionID: "sess-a",
			Emitter:   emitter,
			Markers:   markers,
		})
		a.Start(context.Background(), "https://example.com")
	}

	unique := 0
	for _, ev := range emitter.all() {
		if ev.EventType == model.EventUniqueVisitor {
			unique++
		}
	}
	if unique != 1 {
		t.Fatalf("expected 1 unique_visitor across page loads, got %d", unique)
	}
}

func TestAgent_UnloadBounceRule(t *testing.T) {
	cases := []struct {
		name       string
		dwell      time.Duration
		wantBounce bool
	}{
		{"short visit bounces", 2 * time.Second, true},
		{"long visit does not", 6 * time.Second, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			emitter := &captureEmitter{}
			now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
			a := New(Config{
				WebsiteID: "site-1",
				Emitter:   emitter,
				Clock:     func() time.Time { return now },
			})

			a.Start(context.Background(), "https://example.com")
			now = now.Add(tc.dwell)
			a.Unload("https://example.com")

			bounces := 0
			for _, ev := range emitter.all() {
				if ev.EventType == model.EventBounce {
					bounces++
					if ev.AdditionalData["duration"] != tc.dwell.Milliseconds() {
						t.Fatalf("expected duration %d, got %v", tc.dwell.Milliseconds(), ev.AdditionalData["duration"])
					}
				}
			}
			if tc.wantBounce && bounces != 1 {
				t.Fatalf("expected 1 bounce, got %d", bounces)
			}
			if !tc.wantBounce && bounces != 0 {
				t.Fatalf("expected no bounce, got %d", bounces)
			}
		})
	}
}

func TestAgent_UnloadBeforeStartIsNoop(t *testing.T) {
	emitter := &captureEmitter{}
	a := New(Config{WebsiteID: "site-1", Emitter: emitter})

	a.Unload("https://example.com")

	if got := len(emitter.all()); got != 0 {
		t.Fatalf("expected no events, got %d", got)
	}
}
