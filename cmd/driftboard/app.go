package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"driftboard-client/internal/api"
	"driftboard-client/internal/auth"
	"driftboard-client/internal/config"
	"driftboard-client/internal/issue"
	"driftboard-client/internal/observability/logger"
	"driftboard-client/internal/observability/requestid"
	"driftboard-client/internal/permission"
	"driftboard-client/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// app is the root composition: config, logger, API services and the two
// stores, wired once per invocation. The permission store is an explicit
// dependency here, not a process-wide singleton.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	nav    *permission.Navigator
	perms  *permission.Store
	issues *issue.Store

	shutdown func(context.Context) error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var log *logger.Logger
	if cfg.LogFormat == "json" {
		log, err = logger.New(cfg.OTELServiceName, cfg.LogLevel)
	} else {
		log, err = logger.NewCLI(cfg.OTELServiceName, cfg.LogLevel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	shutdown := func(context.Context) error { return nil }
	if cfg.OTELEnabled {
		tp, err := telemetry.InitTracer(ctx, cfg.OTELServiceName, cfg.OTELExporterEndpoint, cfg.OTELSamplingRatio)
		if err != nil {
			return nil, fmt.Errorf("failed to init tracer: %w", err)
		}
		shutdown = tp.Shutdown
	}

	// Inspect (not verify) the session token so an expiring session warns
	// up front instead of failing mid-command.
	if claims, err := auth.InspectToken(cfg.APIToken); err == nil {
		ctx = logger.SetUserIDInContext(ctx, claims.Identity())
		if claims.ExpiresWithin(time.Now(), 10*time.Minute) {
			log.Warn(ctx, "session token expires soon",
				logger.Module("app"),
				logger.Action("startup"),
			)
		}
	} else {
		log.Debug(ctx, "session token is not a decodable JWT, proceeding anyway",
			logger.Module("app"),
			logger.Action("startup"),
			zap.Error(err),
		)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.APIToken,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, log)

	nav := permission.NewNavigator()
	nav.SetScope(permission.Scope{
		WorkspaceSlug: cfg.DefaultWorkspaceSlug,
		ProjectID:     cfg.DefaultProjectID,
	})

	perms := permission.NewStore(
		api.NewWorkspaceService(client),
		api.NewProjectMemberService(client),
		api.NewUserService(client),
		log,
		permission.Options{
			Scope:     nav,
			IsAbsence: func(err error) bool { return errors.Is(err, api.ErrNotMember) },
			Metrics:   permission.NewMetrics(prometheus.DefaultRegisterer),
		},
	)

	return &app{
		cfg:      cfg,
		log:      log,
		nav:      nav,
		perms:    perms,
		issues:   issue.NewStore(api.NewIssueService(client), log),
		shutdown: shutdown,
	}, nil
}

func (a *app) close(ctx context.Context) {
	_ = a.log.Sync()
	if err := a.shutdown(ctx); err != nil {
		a.log.Warn(ctx, "tracer shutdown failed",
			logger.Module("app"),
			logger.Action("shutdown"),
			zap.Error(err),
		)
	}
}

// commandContext gives every command one correlated request ID.
func commandContext() context.Context {
	return requestid.EnsureRequestID(context.Background())
}

// scopedContext tags the context with the workspace/project a command
// operates on, so every log line it emits carries the scope fields.
func scopedContext(ctx context.Context, workspaceSlug, projectID string) context.Context {
	if workspaceSlug != "" {
		ctx = logger.SetWorkspaceSlugInContext(ctx, workspaceSlug)
	}
	if projectID != "" {
		ctx = logger.SetProjectIDInContext(ctx, projectID)
	}
	return ctx
}
