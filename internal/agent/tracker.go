package agent

import (
	"context"
	"time"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"github.com/Shrawan0701/webanalytics/internal/app/repository"
	"go.uber.org/zap"
)

// BounceThreshold is the dwell time below which leaving a page counts as a
// bounce.
const BounceThreshold = 5000 * time.Millisecond

// ClickElement describes the DOM element a click landed on. ID and Classes
// are nil when the element carries none; they serialize as null.
type ClickElement struct {
	Tag     string
	ID      *string
	Classes *string
}

// Tracker applies the product's event rules and hands the resulting
// TrackedEvents to an emitter. It is safe for concurrent use when its marker
// repository is.
type Tracker struct {
	emitter Emitter
	markers repository.MarkerRepository
	logger  *zap.Logger
}

// NewTracker builds a Tracker. markers may be nil, in which case unique
// visitors are never reported.
func NewTracker(emitter Emitter, markers repository.MarkerRepository, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{emitter: emitter, markers: markers, logger: logger}
}

// PageView reports one page load.
func (t *Tracker) PageView(websiteID, url, userAgent string) {
	t.emitter.Emit(model.NewTrackedEvent(websiteID, model.EventPageView, url, userAgent, nil))
}

// UniqueVisitor reports the first visit of a browsing session for a website
// and returns whether an event was emitted. At most one unique_visitor event
// is emitted per (session, website) pair; the marker is set before emission
// and never cleared.
func (t *Tracker) UniqueVisitor(ctx context.Context, websiteID, sessionID, url, userAgent string) bool {
	if t.markers == nil || sessionID == "" {
		return false
	}

	seen, err := t.markers.Seen(ctx, sessionID, websiteID)
	if err != nil {
		t.logger.Warn("visitor marker check failed",
			zap.String("website_id", websiteID),
			zap.Error(err))
		return false
	}
	if seen {
		return false
	}

	t.emitter.Emit(model.NewTrackedEvent(websiteID, model.EventUniqueVisitor, url, userAgent, nil))
	return true
}

// Click reports one click. Every click is reported individually; there is no
// debouncing and no target filtering.
func (t *Tracker) Click(websiteID, url, userAgent string, el ClickElement) {
	data := map[string]any{
		"element": el.Tag,
		"id":      nil,
		"classes": nil,
	}
	if el.ID != nil {
		data["id"] = *el.ID
	}
	if el.Classes != nil {
		data["classes"] = *el.Classes
	}

	t.emitter.Emit(model.NewTrackedEvent(websiteID, model.EventClick, url, userAgent, data))
}

// Bounce reports a page abandoned after elapsed dwell time and returns
// whether an event was emitted. Dwell times at or above the threshold are not
// bounces.
func (t *Tracker) Bounce(websiteID, url, userAgent string, elapsed time.Duration) bool {
	if elapsed >= BounceThreshold {
		return false
	}

	t.emitter.Emit(model.NewTrackedEvent(websiteID, model.EventBounce, url, userAgent, map[string]any{
		"duration": elapsed.Milliseconds(),
	}))
	return true
}

// Custom reports an event with a caller-defined type.
func (t *Tracker) Custom(websiteID, eventType, url, userAgent string, data map[string]any) {
	t.emitter.Emit(model.NewTrackedEvent(websiteID, eventType, url, userAgent, data))
}
