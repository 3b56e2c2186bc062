package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/Shrawan0701/webanalytics/internal/app/service"
	"github.com/Shrawan0701/webanalytics/internal/http/view"
	"go.uber.org/zap"
)

// RelayDeps groups dependencies required by the relay handlers.
type RelayDeps struct {
	Logger *zap.Logger
	Relay  *service.RelayService

	// PublicBaseURL is the externally reachable base of this relay, baked
	// into the served shim.
	PublicBaseURL string

	// Rejected, when non-nil, is invoked once per rejected page event.
	Rejected func()
}

// RelayHandler serves the tracking shim and ingests raw page events.
type RelayHandler struct {
	logger   *zap.Logger
	relay    *service.RelayService
	script   string
	rejected func()
}

// NewRelayHandler creates a relay handler with the provided dependencies.
func NewRelayHandler(deps RelayDeps) (*RelayHandler, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	script, err := view.TrackingScript(view.TrackingScriptData{
		CollectURL: strings.TrimRight(deps.PublicBaseURL, "/") + "/collect",
	})
	if err != nil {
		return nil, err
	}

	return &RelayHandler{
		logger:   logger,
		relay:    deps.Relay,
		script:   script,
		rejected: deps.Rejected,
	}, nil
}

// Register wires relay routes onto the provided router.
func (h *RelayHandler) Register(router fiber.Router) {
	router.Get("/healthz", h.Health)
	router.Get("/tracking.js", h.Script)
	router.Post("/collect", h.Collect)
}

// Health is a simple liveness endpoint.
func (h *RelayHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "webanalytics-relay",
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Script serves the in-page shim. The website id stays in the script URL's
// query string and is read by the shim itself.
func (h *RelayHandler) Script(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.SendString(h.script)
}

// Collect handles POST /collect: one raw page event per request.
func (h *RelayHandler) Collect(c *fiber.Ctx) error {
	var raw service.RawPageEvent
	if err := c.BodyParser(&raw); err != nil {
		h.reject()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if raw.UserAgent == "" {
		raw.UserAgent = c.Get(fiber.HeaderUserAgent)
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := h.relay.Process(ctx, raw); err != nil {
		h.reject()
		if errors.Is(err, service.ErrMissingWebsiteID) || errors.Is(err, service.ErrMissingEventType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("failed to process page event", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to process event",
		})
	}

	return c.SendStatus(fiber.StatusAccepted)
}

func (h *RelayHandler) reject() {
	if h.rejected != nil {
		h.rejected()
	}
}
