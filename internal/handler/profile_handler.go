package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"saaskit/internal/auth"
	"saaskit/internal/errors"
	"saaskit/internal/logger"
	"saaskit/internal/model"
	"saaskit/internal/service"
)

// ProfileHandler serves the signed-in user's CMS profile.
type ProfileHandler struct {
	svc service.ProfileService
	log *logger.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(svc service.ProfileService, log *logger.Logger) *ProfileHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ProfileHandler{svc: svc, log: log}
}

// ProfileResponse wraps a profile.
type ProfileResponse struct {
	User *model.Profile `json:"user"`
}

// GetMe godoc
// @Summary Get the signed-in user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *ProfileHandler) GetMe(c echo.Context) error {
	ident, ok := auth.FromContext(c)
	if !ok {
		return apiError(c, h.log, errors.ErrUnauthorized)
	}

	profile, err := h.svc.GetProfile(c.Request().Context(), ident.UserID)
	if err != nil {
		return apiError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ProfileResponse{User: profile})
}

// UpdateMe godoc
// @Summary Update the signed-in user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ProfileUpdate true "Fields to change"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/me [patch]
func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	ident, ok := auth.FromContext(c)
	if !ok {
		return apiError(c, h.log, errors.ErrUnauthorized)
	}

	var req model.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	profile, err := h.svc.UpdateProfile(c.Request().Context(), ident.UserID, req)
	if err != nil {
		return apiError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ProfileResponse{User: profile})
}
