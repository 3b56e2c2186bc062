package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shrawan0701/webanalytics/internal/http/client"
)

func TestWebsiteService_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/websites" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"websiteId":"w1","name":"Blog","domain":"https://blog.example"},{"websiteId":"w2","name":"Shop","domain":"https://shop.example"}]`))
	}))
	defer server.Close()

	svc := NewWebsiteService(client.New(server.URL, nil))
	sites, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("expected 2 websites, got %d", len(sites))
	}
	if sites[0].WebsiteID != "w1" || sites[0].Name != "Blog" {
		t.Fatalf("unexpected first website %+v", sites[0])
	}
}

func TestWebsiteService_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/websites" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]string
		_ = json.Unmarshal(raw, &body)
		if body["name"] != "Blog" || body["domain"] != "https://blog.example" {
			t.Errorf("unexpected body %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"websiteId":"w1","name":"Blog","domain":"https://blog.example"}`))
	}))
	defer server.Close()

	svc := NewWebsiteService(client.New(server.URL, nil))
	site, err := svc.Create(context.Background(), "Blog", "https://blog.example")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if site.WebsiteID != "w1" {
		t.Fatalf("expected id w1, got %q", site.WebsiteID)
	}
}

func TestWebsiteService_Delete(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := NewWebsiteService(client.New(server.URL, nil))
	if err := svc.Delete(context.Background(), "w1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if gotPath != "/websites/w1" || gotMethod != http.MethodDelete {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
}

func TestAnalyticsService_Overview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analytics/w1/overview" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalPageViews":1500,"totalClicks":320,"uniqueVisitors":90,"bounceRate":42.5}`))
	}))
	defer server.Close()

	svc := NewAnalyticsService(client.New(server.URL, nil))
	overview, err := svc.Overview(context.Background(), "w1")
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if overview.TotalPageViews != 1500 || overview.BounceRate != 42.5 {
		t.Fatalf("unexpected overview %+v", overview)
	}
}

func TestAnalyticsService_EventsPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analytics/w1/events" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("size") != "25" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"id":1,"createdAt":"2026-03-10T12:00:00Z","eventType":"click","pageUrl":"https://example.com","eventName":"button"}],"totalPages":5}`))
	}))
	defer server.Close()

	svc := NewAnalyticsService(client.New(server.URL, nil))
	page, err := svc.Events(context.Background(), "w1", 2, 25)
	if err != nil {
		t.Fatalf("Events returned error: %v", err)
	}
	if page.TotalPages != 5 || len(page.Content) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Content[0].EventType != "click" {
		t.Fatalf("unexpected event %+v", page.Content[0])
	}
}
