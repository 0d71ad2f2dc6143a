package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"saaskit/internal/auth"
	"saaskit/internal/errors"
	"saaskit/internal/logger"
	"saaskit/internal/model"
	"saaskit/internal/preferences"
	"saaskit/internal/service"
)

// AuthHandler handles session endpoints.
type AuthHandler struct {
	authService service.AuthService
	secure      bool
	log         *logger.Logger
}

// NewAuthHandler creates a new auth handler. secure marks session cookies Secure.
func NewAuthHandler(authService service.AuthService, secure bool, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{authService: authService, secure: secure, log: log}
}

// SessionResponse is the mirrored user of the current session.
type SessionResponse struct {
	User *model.User `json:"user"`
}

// Session godoc
// @Summary Get the current session's user
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	u, _ := auth.UserFromContext(c)
	return c.JSON(http.StatusOK, SessionResponse{User: u})
}

// SignOut godoc
// @Summary Sign out
// @Description Revokes the current session, clears the user snapshot and expires the session cookie.
// @Tags auth
// @Success 204
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.signOut(c); err != nil {
		return apiError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) signOut(c echo.Context) error {
	ident, _ := auth.FromContext(c)
	auth.ClearSessionCookie(c, h.secure)
	preferences.FromContext(c).ClearUser()
	return h.authService.SignOut(c.Request().Context(), ident)
}

// DevSignIn godoc
// @Summary Sign in without a password (local provider only)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.SignInRequest true "User to sign in as"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/dev/sign-in [post]
func (h *AuthHandler) DevSignIn(c echo.Context) error {
	var req service.SignInRequest
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

	sess, err := h.signIn(c, req)
	if err != nil {
		if stderrors.Is(err, service.ErrSignInDisabled) {
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: "Not found",
				Code:  "NOT_FOUND",
			})
		}
		return apiError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, SessionResponse{User: &sess.User})
}

func (h *AuthHandler) signIn(c echo.Context, req service.SignInRequest) (*service.Session, error) {
	sess, err := h.authService.SignIn(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	auth.SetSessionCookie(c, sess.Token, sess.ExpiresAt, h.secure)
	preferences.FromContext(c).SetUser(&sess.User)
	h.log.WithContext(c.Request().Context()).WithUserID(sess.User.ID).Info("dev session issued")
	return sess, nil
}
