package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"saaskit/internal/auth"
	"saaskit/internal/errors"
	"saaskit/internal/logger"
	"saaskit/internal/model"
	"saaskit/internal/preferences"
	"saaskit/internal/service"
)

// PreferencesHandler reads and writes visitor preferences.
type PreferencesHandler struct {
	svc    service.PreferencesService
	secure bool
	log    *logger.Logger
}

// NewPreferencesHandler creates a new preferences handler. secure marks the
// preference cookie Secure.
func NewPreferencesHandler(svc service.PreferencesService, secure bool, log *logger.Logger) *PreferencesHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PreferencesHandler{svc: svc, secure: secure, log: log}
}

// PreferencesResponse is the preference state of the visitor.
type PreferencesResponse struct {
	Preferences model.Preferences `json:"preferences"`
	User        *model.User       `json:"user,omitempty"`
}

// UpdatePreferencesRequest carries the preferences to change.
type UpdatePreferencesRequest struct {
	Theme            *model.Theme `json:"theme,omitempty" form:"theme"`
	Locale           *string      `json:"locale,omitempty" form:"locale"`
	SidebarCollapsed *bool        `json:"sidebarCollapsed,omitempty" form:"sidebarCollapsed"`
}

// Apply writes the requested changes into store.
func (r UpdatePreferencesRequest) Apply(store *preferences.Store) error {
	if r.Theme != nil {
		if err := store.SetTheme(*r.Theme); err != nil {
			return err
		}
	}
	if r.Locale != nil {
		if err := store.SetLocale(*r.Locale); err != nil {
			return err
		}
	}
	if r.SidebarCollapsed != nil {
		store.SetSidebarCollapsed(*r.SidebarCollapsed)
	}
	return nil
}

// GetPreferences godoc
// @Summary Get the visitor's preferences
// @Tags preferences
// @Produce json
// @Success 200 {object} PreferencesResponse
// @Router /preferences [get]
func (h *PreferencesHandler) GetPreferences(c echo.Context) error {
	store := preferences.FromContext(c)
	return c.JSON(http.StatusOK, PreferencesResponse{Preferences: store.Preferences(), User: store.User()})
}

// UpdatePreferences godoc
// @Summary Update the visitor's preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body UpdatePreferencesRequest true "Preferences to change"
// @Success 200 {object} PreferencesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /preferences [patch]
func (h *PreferencesHandler) UpdatePreferences(c echo.Context) error {
	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	store := preferences.FromContext(c)
	if err := req.Apply(store); err != nil {
		return apiError(c, h.log, err)
	}
	if err := h.persist(c, store); err != nil {
		return apiError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, PreferencesResponse{Preferences: store.Preferences(), User: store.User()})
}

// persist writes the cookie and, for signed-in users whose preferences
// changed, the server-side copy. A failed server-side write is logged but does
// not fail the request.
func (h *PreferencesHandler) persist(c echo.Context, store *preferences.Store) error {
	if err := preferences.WriteCookie(c, store, h.secure); err != nil {
		return err
	}
	ident, ok := auth.FromContext(c)
	if !ok || !store.Dirty() {
		return nil
	}
	if err := h.svc.Save(c.Request().Context(), ident.UserID, store); err != nil {
		h.log.WithContext(c.Request().Context()).WithUserID(ident.UserID).WithError(err).Warn("save preferences failed")
	}
	return nil
}
