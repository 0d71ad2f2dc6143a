package handler

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"saaskit/internal/errors"
	"saaskit/internal/logger"
	"saaskit/internal/observability"
)

// apiError converts err into the JSON error response. Server errors are
// logged with detail and reported; the client only sees a generic message.
func apiError(c echo.Context, log *logger.Logger, err error) error {
	if errors.IsServerError(err) {
		reportError(c, log, err)
	}
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func reportError(c echo.Context, log *logger.Logger, err error) {
	log.WithContext(c.Request().Context()).WithError(err).Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("route", c.Path()),
	)
	observability.CaptureError(c, err)
}

// localRedirect returns target when it is a path on this site, otherwise fallback.
func localRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return target
}

// refererPath returns the path and query of the Referer header when it points
// at this site.
func refererPath(c echo.Context, fallback string) string {
	ref := c.Request().Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request().Host) {
		return fallback
	}
	target := u.EscapedPath()
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return localRedirect(target, fallback)
}
