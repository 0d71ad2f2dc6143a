package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"saaskit/internal/handler"
	"saaskit/internal/view"
)

// Handlers groups the route handlers.
type Handlers struct {
	Profile     *handler.ProfileHandler
	Preferences *handler.PreferencesHandler
	Auth        *handler.AuthHandler
	Pages       *handler.PageHandler
	// DevSignIn exposes the password-less sign-in endpoint.
	DevSignIn bool
}

// Register wires routes and the request pipeline. The middlewares run in
// order: request id and logging, recovery, error tracking, identity, user
// mirror, preferences, then the routing gate.
func Register(e *echo.Echo, h Handlers, pipeline ...echo.MiddlewareFunc) {
	e.Validator = NewValidator()
	e.Renderer = view.MustNew()

	e.Pre(middleware.RemoveTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
	}))
	e.Use(pipeline...)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.StaticFS("/static", view.Static())

	api := e.Group("/api")
	api.GET("/users/me", h.Profile.GetMe)
	api.PATCH("/users/me", h.Profile.UpdateMe)
	api.GET("/preferences", h.Preferences.GetPreferences)
	api.PATCH("/preferences", h.Preferences.UpdatePreferences)
	api.GET("/auth/session", h.Auth.Session)
	api.POST("/auth/sign-out", h.Auth.SignOut)
	if h.DevSignIn {
		api.POST("/auth/dev/sign-in", h.Auth.DevSignIn)
	}
	api.RouteNotFound("/*", h.Pages.NotFound)

	pages := e.Group("/:locale")
	pages.GET("", h.Pages.Home)
	pages.GET("/sign-in", h.Pages.SignIn)
	pages.GET("/sign-in/*", h.Pages.SignIn)
	pages.GET("/sign-up", h.Pages.SignUp)
	pages.GET("/sign-up/*", h.Pages.SignUp)
	if h.DevSignIn {
		pages.POST("/sign-in", h.Pages.DevSignInForm)
	}
	pages.POST("/sign-out", h.Pages.SignOutForm)
	pages.GET("/dashboard", h.Pages.Dashboard)
	pages.GET("/settings", h.Pages.Settings)
	pages.POST("/settings/profile", h.Pages.UpdateProfileForm)
	pages.POST("/preferences/theme", h.Pages.SetTheme)
	pages.POST("/preferences/sidebar", h.Pages.SetSidebar)
	pages.POST("/preferences/locale", h.Pages.SetLocale)
	pages.POST("/preferences/reset", h.Pages.ResetPreferences)

	e.RouteNotFound("/*", h.Pages.NotFound)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the request validator used by the handlers.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
