package service

import (
	"context"
	"errors"
	"time"

	"github.com/Shrawan0701/webanalytics/internal/agent"
	"go.uber.org/zap"
)

// Raw page event types accepted from the in-page shim.
const (
	RawPageView = "page_view"
	RawClick    = "click"
	RawUnload   = "unload"
)

var (
	// ErrMissingWebsiteID rejects events that cannot be attributed to a site.
	ErrMissingWebsiteID = errors.New("missing website id")
	// ErrMissingEventType rejects events without a type.
	ErrMissingEventType = errors.New("missing event type")
)

// RawPageEvent is what the browser shim posts to the relay: an unnormalized
// observation from one page.
type RawPageEvent struct {
	WebsiteID  string         `json:"websiteId"`
	SessionID  string         `json:"sessionId"`
	Type       string         `json:"type"`
	URL        string         `json:"url"`
	UserAgent  string         `json:"userAgent"`
	Element    string         `json:"element,omitempty"`
	ElementID  *string        `json:"elementId,omitempty"`
	Classes    *string        `json:"classes,omitempty"`
	DurationMs *int64         `json:"durationMs,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// RelayService normalizes raw page events through the tracking rules and
// forwards the results to the collector. Forwarding is fire-and-forget; by
// the time Process returns the delivery may still be in flight.
type RelayService struct {
	tracker  *agent.Tracker
	logger   *zap.Logger
	accepted func(eventType string)
}

// NewRelayService builds a relay pipeline on top of the given tracker.
// accepted, when non-nil, is invoked once per event handed to the collector.
func NewRelayService(tracker *agent.Tracker, logger *zap.Logger, accepted func(eventType string)) *RelayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RelayService{tracker: tracker, logger: logger, accepted: accepted}
}

// Process validates and dispatches one raw event. A validation error means
// nothing was sent to the collector.
func (s *RelayService) Process(ctx context.Context, raw RawPageEvent) error {
	if raw.WebsiteID == "" {
		return ErrMissingWebsiteID
	}
	if raw.Type == "" {
		return ErrMissingEventType
	}

	switch raw.Type {
	case RawPageView:
		s.tracker.PageView(raw.WebsiteID, raw.URL, raw.UserAgent)
		s.count("page_view")
		// The shim reports a page view once per load, so this is also the
		// moment to check the visitor marker. Order between the two
		// emissions is undefined.
		if s.tracker.UniqueVisitor(ctx, raw.WebsiteID, raw.SessionID, raw.URL, raw.UserAgent) {
			s.count("unique_visitor")
		}

	case RawClick:
		s.tracker.Click(raw.WebsiteID, raw.URL, raw.UserAgent, agent.ClickElement{
			Tag:     raw.Element,
			ID:      raw.ElementID,
			Classes: raw.Classes,
		})
		s.count("click")

	case RawUnload:
		if raw.DurationMs == nil {
			return nil
		}
		if s.tracker.Bounce(raw.WebsiteID, raw.URL, raw.UserAgent, time.Duration(*raw.DurationMs)*time.Millisecond) {
			s.count("bounce")
		}

	default:
		s.tracker.Custom(raw.WebsiteID, raw.Type, raw.URL, raw.UserAgent, raw.Data)
		s.count(raw.Type)
	}

	return nil
}

func (s *RelayService) count(eventType string) {
	if s.accepted != nil {
		s.accepted(eventType)
	}
}
