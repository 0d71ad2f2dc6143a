package handler

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"saaskit/internal/auth"
	"saaskit/internal/errors"
	"saaskit/internal/i18n"
	"saaskit/internal/logger"
	"saaskit/internal/model"
	"saaskit/internal/preferences"
	"saaskit/internal/service"
	"saaskit/internal/view"
)

// PageHandlerConfig wires the page handler.
type PageHandlerConfig struct {
	Profiles    service.ProfileService
	Preferences *PreferencesHandler
	Auth        *AuthHandler
	// PublishableKey enables the hosted sign-in widget. When empty the
	// local development sign-in form is shown instead.
	PublishableKey string
	Logger         *logger.Logger
}

// PageHandler renders the localized HTML pages and handles their form posts.
type PageHandler struct {
	profiles       service.ProfileService
	prefs          *PreferencesHandler
	auth           *AuthHandler
	publishableKey string
	log            *logger.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cfg PageHandlerConfig) *PageHandler {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &PageHandler{
		profiles:       cfg.Profiles,
		prefs:          cfg.Preferences,
		auth:           cfg.Auth,
		publishableKey: cfg.PublishableKey,
		log:            log,
	}
}

func (h *PageHandler) render(c echo.Context, status int, name string, p view.Page) error {
	return c.Render(status, name, p)
}

func (h *PageHandler) page(c echo.Context, locale, path, title string, content any, withShell bool) view.Page {
	store := preferences.FromContext(c)
	p := view.Page{
		Locale:  locale,
		Path:    path,
		Title:   title,
		Theme:   store.Theme(),
		User:    store.User(),
		Content: content,
	}
	if withShell {
		shell := view.NewShell(locale, path, store.Theme(), store.SidebarCollapsed(), store.User())
		p.Shell = &shell
	}
	return p
}

// locale returns the validated :locale path parameter.
func (h *PageHandler) locale(c echo.Context) (string, bool) {
	locale := c.Param("locale")
	return locale, i18n.IsValid(locale)
}

// Home renders the landing page.
func (h *PageHandler) Home(c echo.Context) error {
	locale, ok := h.locale(c)
	if !ok {
		return h.NotFound(c)
	}
	content := view.NewHomeContent(locale, auth.IsAuthenticated(c))
	return h.render(c, http.StatusOK, "home", h.page(c, locale, "/", i18n.T(locale, "common.home"), content, false))
}

// SignIn renders the sign-in page.
func (h *PageHandler) SignIn(c echo.Context) error {
	return h.authPage(c, "sign-in")
}

// SignUp renders the sign-up page.
func (h *PageHandler) SignUp(c echo.Context) error {
	return h.authPage(c, "sign-up")
}

func (h *PageHandler) authPage(c echo.Context, mode string) error {
	locale, ok := h.locale(c)
	if !ok {
		return h.NotFound(c)
	}
	redirectURL := localRedirect(c.QueryParam("redirect_url"), i18n.LocalizePath(locale, "/dashboard"))
	if auth.IsAuthenticated(c) {
		return c.Redirect(http.StatusSeeOther, redirectURL)
	}

	content := view.NewAuthContent(locale, mode, redirectURL)
	if scriptURL := auth.ClerkScriptURL(h.publishableKey); scriptURL != "" {
		content.PublishableKey = h.publishableKey
		content.ClerkScriptURL = scriptURL
	} else {
		content.DevAction = i18n.LocalizePath(locale, "/sign-in")
	}
	return h.render(c, http.StatusOK, "auth", h.page(c, locale, "/"+mode, content.Heading, content, false))
}

// DevSignInForm handles the local development sign-in form.
func (h *PageHandler) DevSignInForm(c echo.Context) error {
	locale, ok := h.locale(c)
	if !ok {
		return h.NotFound(c)
	}
	var req service.SignInRequest
	if err := c.Bind(&req); err != nil {
		return h.renderError(c, locale, http.StatusBadRequest, view.ErrorState(locale))
	}
	if err := c.Validate(&req); err != nil {
		return h.renderError(c, locale, http.StatusBadRequest, view.ErrorState(locale))
	}

	if _, err := h.auth.signIn(c, req); err != nil {
		if stderrors.Is(err, service.ErrSignInDisabled) {
			return h.NotFound(c)
		}
		reportError(c, h.log, err)
		return h.renderError(c, locale, http.StatusInternalServerError, view.ErrorState(locale))
	}
	target := localRedirect(c.FormValue("redirect_url"), i18n.LocalizePath(locale, "/dashboard"))
	return c.Redirect(http.StatusSeeOther, target)
}

// SignOutForm signs out from the dashboard's user menu.
func (h *PageHandler) SignOutForm(c echo.Context) error {
	locale, ok := h.locale(c)
	if !ok {
		return h.NotFound(c)
	}
	if err := h.auth.signOut(c); err != nil {
		// the session cookie is already expired; the provider call is best effort here
		reportError(c, h.log, err)
	}
	return c.Redirect(http.StatusSeeOther, i18n.LocalizePath(locale, "/"))
}

// Dashboard renders the signed-in landing page.
func (h *PageHandler) Dashboard(c echo.Context) error {
	locale, ok := h.locale(c)
	if !ok {
		return h.NotFound(c)
	}
	ident, ok := auth.FromContext(c)
	if !ok {
		return h.redirectToSignIn(c, locale)
	}

	profile, profileErr := h.loadProfile(c, locale, ident.UserID)
	name := preferences.FromContext(c).User().DisplayName()
	if profile != nil && profile.FirstName != nil && *profile.FirstName != "" {
		name = *profile.FirstName
	}
	title := i18n.T(locale, "dashboard.welcome", "name", name)
	content := view.NewDashboardContent(locale, profile, profileErr)
	return h.render(c, http.StatusOK, "dashboard", h.page(c, locale, "/dashboard", title, content, true))
}

// Settings renders the preferences and profile forms.
func (h *PageHandler) Settings(c echo.Context) error {
	locale, ok := h.locale(c)
	if !ok {
		return h.NotFound(c)
	}
	ident, ok := auth.FromContext(c)
	if !ok {
		return h.redirectToSignIn(c, locale)
	}

	profile, profileErr := h.loadProfile(c, locale, ident.UserID)
	content := view.NewSettingsContent(locale, preferences.FromContext(c).Preferences(), profile, profileErr)
	p := h.page(c, locale, "/settings", i18n.T(locale, "settings.title"), content, true)
	if c.QueryParam("saved") == "1" {
		p.Flash = i18n.T(locale, "settings.profileSaved")
	}
	return h.render(c, http.StatusOK, "settings", p)
}

// loadProfile fetches the CMS profile, turning failures into the empty state
// shown in its place.
func (h *PageHandler) loadProfile(c echo.Context, locale, clerkID string) (*model.Profile, *view.EmptyState) {
	profile, err := h.profiles.GetProfile(c.Request().Context(), clerkID)
	if err == nil {
		return profile, nil
	}
	if stderrors.Is(err, errors.ErrProfileNotFound) {
		state := view.ProfileMissingState(locale)
		return nil, &state
	}
	reportError(c, h.log, err)
	state := view.ErrorState(locale)
	return nil, &state
}

type profileForm struct {
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Bio       string `form:"bio"`
	Locale    string `form:"locale"`
	Timezone  string `form:"timezone"`
}

// update maps the form onto a profile update. Text fields may be cleared;
// locale and timezone are only changed when a value was chosen.
func (f profileForm) update() model.ProfileUpdate {
	u := model.ProfileUpdate{
		FirstName: &f.FirstName,
		LastName:  &f.LastName,
		Bio:       &f.Bio,
	}
	if f.Locale != "" {
		u.Locale = &f.Locale
	}
	if f.Timezone != "" {
		u.Timezone = &f.Timezone
	}
	return u
}

// UpdateProfileForm handles the settings profile form.
func (h *PageHandler) UpdateProfileForm(c echo.Context) error {
	locale, ok := h.locale(c)
	if !ok {
		return h.NotFound(c)
	}
	ident, ok := auth.FromContext(c)
	if !ok {
		return h.redirectToSignIn(c, locale)
	}

	var form profileForm
	if err := c.Bind(&form); err != nil {
		return h.renderError(c, locale, http.StatusBadRequest, view.ErrorState(locale))
	}
	update := form.update()
	if err := c.Validate(&update); err != nil {
		h.log.WithContext(c.Request().Context()).Debug("profile form rejected", zap.Error(err))
		return h.renderError(c, locale, http.StatusBadRequest, view.ErrorState(locale))
	}

	if _, err := h.profiles.UpdateProfile(c.Request().Context(), ident.UserID, update); err != nil {
		if stderrors.Is(err, errors.ErrProfileNotFound) {
			return h.renderError(c, locale, http.StatusNotFound, view.ProfileMissingState(locale))
		}
		reportError(c, h.log, err)
		return h.renderError(c, locale, http.StatusInternalServerError, view.ErrorState(locale))
	}
	return c.Redirect(http.StatusSeeOther, i18n.LocalizePath(locale, "/settings")+"?saved=1")
}

// SetTheme handles the theme toggle. Without a theme value it cycles
// light -> dark -> system.
func (h *PageHandler) SetTheme(c echo.Context) error {
	return h.updatePreferences(c, func(store *preferences.Store) error {
		theme := c.FormValue("theme")
		if theme == "" {
			store.CycleTheme()
			return nil
		}
		return store.SetTheme(model.Theme(theme))
	}, "")
}

// SetSidebar handles the sidebar toggle. Without a value it flips the state.
func (h *PageHandler) SetSidebar(c echo.Context) error {
	return h.updatePreferences(c, func(store *preferences.Store) error {
		raw := c.FormValue("collapsed")
		if raw == "" {
			store.ToggleSidebar()
			return nil
		}
		collapsed, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.NewHTTPError(http.StatusBadRequest, "invalid sidebar state", "INVALID_REQUEST")
		}
		store.SetSidebarCollapsed(collapsed)
		return nil
	}, "")
}

// SetLocale handles the locale switcher and redirects to the same page in
// the chosen locale.
func (h *PageHandler) SetLocale(c echo.Context) error {
	next := c.FormValue("locale")
	path := localRedirect(c.FormValue("path"), "/")
	return h.updatePreferences(c, func(store *preferences.Store) error {
		return store.SetLocale(next)
	}, i18n.LocalizePath(next, path))
}

// ResetPreferences restores the default preferences and returns to the
// settings page in the default locale.
func (h *PageHandler) ResetPreferences(c echo.Context) error {
	if _, ok := h.locale(c); !ok {
		return h.NotFound(c)
	}
	store := preferences.FromContext(c)
	store.Reset()
	if err := h.prefs.persist(c, store); err != nil {
		return apiError(c, h.log, err)
	}
	return c.Redirect(http.StatusSeeOther, i18n.LocalizePath(store.Locale(), "/settings"))
}

func (h *PageHandler) updatePreferences(c echo.Context, apply func(*preferences.Store) error, target string) error {
	locale, ok := h.locale(c)
	if !ok {
		return h.NotFound(c)
	}
	store := preferences.FromContext(c)
	if err := apply(store); err != nil {
		var httpErr *errors.HTTPError
		if stderrors.As(err, &httpErr) {
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return apiError(c, h.log, err)
	}
	if err := h.prefs.persist(c, store); err != nil {
		return apiError(c, h.log, err)
	}
	if target == "" {
		target = refererPath(c, i18n.LocalizePath(locale, "/"))
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func (h *PageHandler) redirectToSignIn(c echo.Context, locale string) error {
	req := c.Request()
	original := req.URL.Path
	if req.URL.RawQuery != "" {
		original += "?" + req.URL.RawQuery
	}
	return c.Redirect(http.StatusTemporaryRedirect, i18n.LocalizePath(locale, "/sign-in")+"?redirect_url="+url.QueryEscape(original))
}

func (h *PageHandler) renderError(c echo.Context, locale string, status int, state view.EmptyState) error {
	_, rest, _ := i18n.SplitPath(c.Request().URL.Path)
	p := h.page(c, locale, rest, state.Title, state, false)
	return h.render(c, status, "error", p)
}

// NotFound renders the localized not-found page. API paths get a JSON body.
func (h *PageHandler) NotFound(c echo.Context) error {
	path := c.Request().URL.Path
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{Error: "Not found", Code: "NOT_FOUND"})
	}
	locale, rest, ok := i18n.SplitPath(path)
	if !ok {
		locale = preferences.FromContext(c).Locale()
	}
	state := view.NotFoundState(locale)
	return h.render(c, http.StatusNotFound, "error", h.page(c, locale, rest, state.Title, state, false))
}
