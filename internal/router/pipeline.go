package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"saaskit/internal/auth"
	"saaskit/internal/gate"
	"saaskit/internal/logger"
	"saaskit/internal/observability"
	"saaskit/internal/preferences"
)

// PipelineConfig holds what the request pipeline needs.
type PipelineConfig struct {
	Logger       *logger.Logger
	Sentry       bool
	Verifier     auth.Verifier
	Sessions     auth.SessionStoreInterface
	Directory    auth.Directory
	Preferences  preferences.Loader
	Gate         *gate.Gate
	DetectLocale bool
}

// Pipeline returns the middlewares in the order Register expects them.
func Pipeline(cfg PipelineConfig) []echo.MiddlewareFunc {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	directory := cfg.Directory
	if directory == nil {
		directory = auth.ClaimsDirectory{}
	}

	pipeline := []echo.MiddlewareFunc{
		observability.RequestID(),
		observability.RequestLogger(log),
		middleware.Recover(),
	}
	if cfg.Sentry {
		pipeline = append(pipeline, observability.SentryMiddleware())
	}
	return append(pipeline,
		auth.Middleware(auth.MiddlewareConfig{Verifier: cfg.Verifier, Sessions: cfg.Sessions, Logger: log}),
		auth.SyncUser(directory, log),
		preferences.Middleware(cfg.Preferences, log),
		gate.Middleware(gate.MiddlewareConfig{
			Gate:          cfg.Gate,
			ResolveLocale: preferences.LocaleResolver(cfg.DetectLocale),
			Logger:        log,
		}),
	)
}
