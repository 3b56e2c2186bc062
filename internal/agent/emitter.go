package agent

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"go.uber.org/zap"
)

// Emitter delivers one TrackedEvent to the collector. Implementations must
// not block the caller and must swallow failures after logging them.
type Emitter interface {
	Emit(event model.TrackedEvent)
}

const trackEventPath = "/track/event"

// HTTPEmitter posts events to the collector endpoint. Every emission is an
// independent detached delivery: the goroutine outlives the handler that
// created it, nothing is retried, and no failure ever reaches the host.
type HTTPEmitter struct {
	endpoint  string
	client    *http.Client
	logger    *zap.Logger
	onFailure func()

	wg sync.WaitGroup
}

// EmitterOption customizes an HTTPEmitter.
type EmitterOption func(*HTTPEmitter)

// WithEmitTimeout overrides the per-delivery timeout.
func WithEmitTimeout(d time.Duration) EmitterOption {
	return func(e *HTTPEmitter) { e.client.Timeout = d }
}

// WithFailureHook registers a callback invoked once per failed delivery.
func WithFailureHook(fn func()) EmitterOption {
	return func(e *HTTPEmitter) { e.onFailure = fn }
}

// NewHTTPEmitter creates an emitter targeting collectorBaseURL.
func NewHTTPEmitter(collectorBaseURL string, logger *zap.Logger, opts ...EmitterOption) *HTTPEmitter {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &HTTPEmitter{
		endpoint: strings.TrimRight(collectorBaseURL, "/") + trackEventPath,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit schedules the delivery and returns immediately.
func (e *HTTPEmitter) Emit(event model.TrackedEvent) {
	e.wg.Add(1)
	go e.send(event)
}

// Wait blocks until all in-flight deliveries have finished. Used at shutdown;
// deliveries abandoned because the process exits first are acceptable.
func (e *HTTPEmitter) Wait() {
	e.wg.Wait()
}

func (e *HTTPEmitter) send(event model.TrackedEvent) {
	defer e.wg.Done()

	raw, err := json.Marshal(event)
	if err != nil {
		e.fail("encode tracked event", event, err)
		return
	}

	resp, err := e.client.Post(e.endpoint, "application/json", bytes.NewReader(raw))
	if err != nil {
		e.fail("deliver tracked event", event, err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		e.logger.Warn("collector rejected tracked event",
			zap.String("event_type", event.EventType),
			zap.String("website_id", event.WebsiteID),
			zap.Int("status", resp.StatusCode))
		if e.onFailure != nil {
			e.onFailure()
		}
		return
	}

	e.logger.Debug("tracked event delivered",
		zap.String("event_type", event.EventType),
		zap.String("website_id", event.WebsiteID))
}

func (e *HTTPEmitter) fail(msg string, event model.TrackedEvent, err error) {
	e.logger.Warn(msg,
		zap.String("event_type", event.EventType),
		zap.String("website_id", event.WebsiteID),
		zap.Error(err))
	if e.onFailure != nil {
		e.onFailure()
	}
}
