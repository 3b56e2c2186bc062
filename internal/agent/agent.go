// Package agent implements the tracking agent: it observes one page's
// lifecycle and interactions and reports them to the collector as
// fire-and-forget TrackedEvents.
package agent

import (
	"context"
	"net/url"
	"time"

	"github.com/Shrawan0701/webanalytics/internal/app/repository"
	"go.uber.org/zap"
)

// Config assembles an Agent for one page load.
type Config struct {
	// WebsiteID identifies the tracked site. When empty the agent performs no
	// action at all.
	WebsiteID string

	// SessionID scopes unique-visitor suppression to one browsing session.
	SessionID string

	UserAgent string
	Emitter   Emitter
	Markers   repository.MarkerRepository
	Logger    *zap.Logger

	// Clock is overridable for tests; defaults to time.Now.
	Clock func() time.Time
}

// Agent tracks a single page load. A disabled agent (missing website id) is
// inert: every method is a no-op and no network call is ever made.
type Agent struct {
	websiteID string
	sessionID string
	userAgent string
	tracker   *Tracker
	logger    *zap.Logger
	clock     func() time.Time
	startedAt time.Time
	enabled   bool
}

// New builds an Agent. A missing website id logs a warning and yields a
// disabled agent rather than an error.
func New(cfg Config) *Agent {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	a := &Agent{
		websiteID: cfg.WebsiteID,
		sessionID: cfg.SessionID,
		userAgent: cfg.UserAgent,
		logger:    log,
		clock:     clock,
		enabled:   cfg.WebsiteID != "",
	}

	if !a.enabled {
		log.Warn("no website id specified, tracking disabled")
		return a
	}

	a.tracker = NewTracker(cfg.Emitter, cfg.Markers, log)
	return a
}

// WebsiteIDFromScriptURL extracts the website id from the tracking script's
// own invocation URL (the `website` query parameter).
func WebsiteIDFromScriptURL(scriptURL string) string {
	u, err := url.Parse(scriptURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("website")
}

// Enabled reports whether the agent will emit anything at all.
func (a *Agent) Enabled() bool { return a.enabled }

// Start marks the page load: it records the start time, emits one page_view
// and, if this browsing session has not visited the website before, one
// unique_visitor. The two emissions race; no relative order is defined.
func (a *Agent) Start(ctx context.Context, pageURL string) {
	if !a.enabled {
		return
	}

	a.startedAt = a.clock()
	a.tracker.PageView(a.websiteID, pageURL, a.userAgent)
	a.tracker.UniqueVisitor(ctx, a.websiteID, a.sessionID, pageURL, a.userAgent)
}

// Click reports one click bubbling up to the document.
func (a *Agent) Click(pageURL string, el ClickElement) {
	if !a.enabled {
		return
	}
	a.tracker.Click(a.websiteID, pageURL, a.userAgent, el)
}

// Custom reports an event with a caller-defined type.
func (a *Agent) Custom(pageURL, eventType string, data map[string]any) {
	if !a.enabled {
		return
	}
	a.tracker.Custom(a.websiteID, eventType, pageURL, a.userAgent, data)
}

// Unload marks the page teardown; a dwell time under the bounce threshold
// emits one bounce event carrying the elapsed milliseconds. Best effort: the
// delivery is detached and may be abandoned if the process exits first.
func (a *Agent) Unload(pageURL string) {
	if !a.enabled || a.startedAt.IsZero() {
		return
	}
	a.tracker.Bounce(a.websiteID, pageURL, a.userAgent, a.clock().Sub(a.startedAt))
}
