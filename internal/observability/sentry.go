// Package observability wires error tracking and request logging into echo.
package observability

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"

	"saaskit/internal/auth"
)

// SentryConfig configures error tracking. An empty DSN disables it.
type SentryConfig struct {
	DSN              string
	Environment      string
	Release          string
	TracesSampleRate float64
}

// InitSentry initialises the global Sentry client. It reports whether error
// tracking is enabled.
func InitSentry(cfg SentryConfig) (bool, error) {
	if cfg.DSN == "" {
		return false, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		EnableTracing:    cfg.TracesSampleRate > 0,
		TracesSampleRate: cfg.TracesSampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Flush waits for buffered events to be sent.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

// SentryMiddleware attaches a per-request hub and reports panics before
// re-raising them for echo's Recover middleware.
func SentryMiddleware() echo.MiddlewareFunc {
	return sentryecho.New(sentryecho.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// CaptureError reports err with the request's hub, tagging the signed-in user.
// It is a no-op when Sentry is not initialised.
func CaptureError(c echo.Context, err error) {
	if err == nil {
		return
	}
	hub := sentryecho.GetHubFromContext(c)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if ident, ok := auth.FromContext(c); ok {
			scope.SetUser(sentry.User{ID: ident.UserID, Email: ident.Email})
		}
		scope.SetTag("path", c.Path())
		scope.SetRequest(c.Request())
		hub.CaptureException(err)
	})
}

// CaptureBackground reports err raised outside a request.
func CaptureBackground(ctx context.Context, err error) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
