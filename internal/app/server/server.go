package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/Shrawan0701/webanalytics/internal/app/service"
	"github.com/Shrawan0701/webanalytics/internal/http/handler"
	"github.com/Shrawan0701/webanalytics/internal/http/middleware"
	"go.uber.org/zap"
)

// Dependencies bundles what the relay HTTP server needs.
type Dependencies struct {
	Logger        *zap.Logger
	Relay         *service.RelayService
	Redis         *redis.Client
	PublicBaseURL string
	RateLimit     middleware.RateLimitConfig
	Rejected      func()
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates the relay server with its middleware chain and routes.
func New(deps Dependencies) (*Server, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Recovery(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS())
	if deps.Redis != nil {
		app.Use(middleware.RateLimit(deps.Redis, deps.RateLimit, logger))
	}

	relayHandler, err := handler.NewRelayHandler(handler.RelayDeps{
		Logger:        logger,
		Relay:         deps.Relay,
		PublicBaseURL: deps.PublicBaseURL,
		Rejected:      deps.Rejected,
	})
	if err != nil {
		return nil, err
	}
	relayHandler.Register(app)

	return &Server{app: app, deps: deps}, nil
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
