package cli

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Shrawan0701/webanalytics/config"
	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"github.com/Shrawan0701/webanalytics/internal/app/repository"
	"github.com/Shrawan0701/webanalytics/internal/app/service"
	"github.com/Shrawan0701/webanalytics/internal/http/client"
	"github.com/Shrawan0701/webanalytics/internal/infra/logger"
	"github.com/Shrawan0701/webanalytics/internal/infra/sqlite"
)

// shell bundles everything a command needs: config, gateway, session manager
// and the API services. Session rehydration completes inside newShell, before
// any view runs.
type shell struct {
	cfg       *config.Config
	logger    *zap.Logger
	gateway   *client.Gateway
	sessions  *service.SessionService
	websites  *service.WebsiteService
	analytics *service.AnalyticsService

	sessionExpired bool
}

// newShell assembles the dashboard shell. The returned cleanup must run when
// the command finishes.
func newShell(ctx context.Context) (*shell, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.MustInit(logger.Config{
		Development: os.Getenv("APP_ENV") != "production",
		Level:       os.Getenv("LOG_LEVEL"),
	})

	db, err := sqlite.Open(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	if err := sqlite.AutoMigrate(ctx, db, &model.Credential{}, &model.VisitorMarker{}); err != nil {
		return nil, nil, err
	}

	creds := repository.NewCredentialRepository(db)
	gw := client.New(cfg.API.BaseURL, log)
	sessions := service.NewSessionService(gw, creds, log)

	sh := &shell{
		cfg:       cfg,
		logger:    log,
		gateway:   gw,
		sessions:  sessions,
		websites:  service.NewWebsiteService(gw),
		analytics: service.NewAnalyticsService(gw),
	}

	// The gateway reads the token from the session manager at call time, and
	// a 401 anywhere clears the session; the shell steers the user back to
	// login afterwards.
	gw.SetTokenSource(sessions.Token)
	gw.OnSessionInvalidated(func() {
		// A 401 on the login call itself is just bad credentials; only a live
		// session expiring warrants the notice.
		if sessions.State() == service.StateLoggedIn {
			sh.sessionExpired = true
		}
		_ = sessions.Logout(context.Background())
	})

	// Rehydrate before any view renders.
	if err := sessions.Initialize(ctx); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if sh.sessionExpired {
			fmt.Fprintln(os.Stderr, "Your session has expired. Please log in again with 'webanalytics login'.")
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = logger.Sync()
	}
	return sh, cleanup, nil
}

// requireLogin gates session-dependent views.
func (s *shell) requireLogin() error {
	if s.sessions.State() != service.StateLoggedIn {
		return fmt.Errorf("you are not logged in; run 'webanalytics login' first")
	}
	return nil
}
