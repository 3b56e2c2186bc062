package model

import (
	"encoding/json"
	"time"
)

// Event types recognized by the collector. Anything else is treated as a
// custom event and passed through unchanged.
const (
	EventPageView      = "page_view"
	EventClick         = "click"
	EventUniqueVisitor = "unique_visitor"
	EventBounce        = "bounce"
)

// TrackedEvent is one record delivered to the collector per observed action.
type TrackedEvent struct {
	WebsiteID string
	EventType string
	URL       string
	Timestamp time.Time
	UserAgent string

	// AdditionalData carries event-specific fields (element/id/classes for
	// clicks, duration for bounces). It is merged into the wire record but can
	// never shadow the fixed fields above.
	AdditionalData map[string]any
}

// NewTrackedEvent captures an event at the current instant.
func NewTrackedEvent(websiteID, eventType, url, userAgent string, additional map[string]any) TrackedEvent {
	return TrackedEvent{
		WebsiteID:      websiteID,
		EventType:      eventType,
		URL:            url,
		Timestamp:      time.Now().UTC(),
		UserAgent:      userAgent,
		AdditionalData: additional,
	}
}

// MarshalJSON flattens AdditionalData into the record. Fixed fields win on
// key collisions.
func (e TrackedEvent) MarshalJSON() ([]byte, error) {
	payload := make(map[string]any, len(e.AdditionalData)+5)
	for k, v := range e.AdditionalData {
		payload[k] = v
	}

	payload["websiteId"] = e.WebsiteID
	payload["eventType"] = e.EventType
	payload["url"] = e.URL
	payload["timestamp"] = e.Timestamp.Format(time.RFC3339)
	payload["userAgent"] = e.UserAgent

	return json.Marshal(payload)
}
