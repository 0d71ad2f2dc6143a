package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saaskit/internal/auth"
	"saaskit/internal/db"
	apperrors "saaskit/internal/errors"
	"saaskit/internal/gate"
	"saaskit/internal/handler"
	"saaskit/internal/model"
	"saaskit/internal/preferences"
	"saaskit/internal/repository"
	"saaskit/internal/service"
)

type missingProfiles struct{}

func (missingProfiles) GetProfile(context.Context, string) (*model.Profile, error) {
	return nil, apperrors.ErrProfileNotFound
}

func (missingProfiles) UpdateProfile(context.Context, string, model.ProfileUpdate) (*model.Profile, error) {
	return nil, apperrors.ErrProfileNotFound
}

// newPipelineEcho builds the server the way main does, with the local token
// provider, sqlite preferences and no redis.
func newPipelineEcho(t *testing.T) (*echo.Echo, *auth.JWTService) {
	t.Helper()

	gormDB, err := db.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gormDB.AutoMigrate(&model.UserPreferences{}))

	routeGate, err := gate.New(gate.DefaultRules())
	require.NoError(t, err)

	jwtService := auth.NewJWTService("pipeline-secret")
	sessions := auth.NewSessionStore(nil)
	prefsService := service.NewPreferencesService(repository.NewPreferencesRepository(gormDB))
	profiles := missingProfiles{}

	prefsHandler := handler.NewPreferencesHandler(prefsService, false, nil)
	authHandler := handler.NewAuthHandler(service.NewAuthService(service.AuthServiceConfig{
		Issuer:   jwtService,
		Sessions: sessions,
	}), false, nil)

	e := echo.New()
	Register(e, Handlers{
		Profile:     handler.NewProfileHandler(profiles, nil),
		Preferences: prefsHandler,
		Auth:        authHandler,
		Pages: handler.NewPageHandler(handler.PageHandlerConfig{
			Profiles:    profiles,
			Preferences: prefsHandler,
			Auth:        authHandler,
		}),
		DevSignIn: true,
	}, Pipeline(PipelineConfig{
		Verifier:    jwtService,
		Sessions:    sessions,
		Preferences: prefsService,
		Gate:        routeGate,
	})...)
	return e, jwtService
}

type pipelineRequest struct {
	method  string
	target  string
	body    string
	token   string
	cookies []*http.Cookie
}

func (pr pipelineRequest) do(e *echo.Echo) *httptest.ResponseRecorder {
	var req *http.Request
	if pr.body != "" {
		req = httptest.NewRequest(pr.method, pr.target, strings.NewReader(pr.body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(pr.method, pr.target, nil)
	}
	if pr.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+pr.token)
	}
	for _, ck := range pr.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPipeline_Redirects(t *testing.T) {
	e, _ := newPipelineEcho(t)

	tests := []struct {
		name         string
		method       string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{"root gets default locale", http.MethodGet, "/", http.StatusTemporaryRedirect, "/en"},
		{"unprefixed page keeps query", http.MethodGet, "/pricing?plan=pro", http.StatusTemporaryRedirect, "/en/pricing?plan=pro"},
		{"anonymous dashboard", http.MethodGet, "/en/dashboard", http.StatusTemporaryRedirect, "/en/sign-in?redirect_url=%2Fen%2Fdashboard"},
		{"file under protected path", http.MethodGet, "/en/dashboard/report.pdf", http.StatusTemporaryRedirect, "/en/sign-in?redirect_url=%2Fen%2Fdashboard%2Freport.pdf"},
		{"anonymous form post", http.MethodPost, "/es/settings/profile", http.StatusSeeOther, "/es/sign-in?redirect_url=%2Fes%2Fsettings%2Fprofile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := pipelineRequest{method: tt.method, target: tt.target}.do(e)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
			assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
		})
	}
}

func TestPipeline_AnonymousAPIIsUnauthorized(t *testing.T) {
	e, _ := newPipelineEcho(t)

	rec := pipelineRequest{method: http.MethodGet, target: "/api/users/me"}.do(e)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","code":"UNAUTHORIZED"}`, rec.Body.String())
}

func TestPipeline_PublicPagesRender(t *testing.T) {
	e, _ := newPipelineEcho(t)

	for _, target := range []string{"/en", "/es/sign-in", "/da/sign-up"} {
		rec := pipelineRequest{method: http.MethodGet, target: target}.do(e)
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestPipeline_BearerTokenReachesDashboard(t *testing.T) {
	e, jwtService := newPipelineEcho(t)
	_, token, err := jwtService.GenerateSessionToken(model.User{ID: "user_1", Email: "ada@example.com"})
	require.NoError(t, err)

	rec := pipelineRequest{method: http.MethodGet, target: "/en/dashboard", token: token}.do(e)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = pipelineRequest{method: http.MethodGet, target: "/en/dashboard", token: "not-a-token"}.do(e)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
}

func TestPipeline_ThemeSurvivesReload(t *testing.T) {
	e, jwtService := newPipelineEcho(t)

	// anonymous visitors keep the theme in the cookie
	rec := pipelineRequest{method: http.MethodPatch, target: "/api/preferences", body: `{"theme":"dark"}`}.do(e)
	require.Equal(t, http.StatusOK, rec.Code)
	var prefCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == preferences.CookieName {
			prefCookie = ck
		}
	}
	require.NotNil(t, prefCookie)

	rec = pipelineRequest{method: http.MethodGet, target: "/api/preferences", cookies: []*http.Cookie{prefCookie}}.do(e)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ThemeDark, decodePreferences(t, rec).Theme)

	// signed-in users get it back from the server copy without the cookie
	_, token, err := jwtService.GenerateSessionToken(model.User{ID: "user_1", Email: "ada@example.com"})
	require.NoError(t, err)
	rec = pipelineRequest{method: http.MethodPatch, target: "/api/preferences", body: `{"theme":"dark","locale":"da"}`, token: token}.do(e)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = pipelineRequest{method: http.MethodGet, target: "/api/preferences", token: token}.do(e)
	require.Equal(t, http.StatusOK, rec.Code)
	prefs := decodePreferences(t, rec)
	assert.Equal(t, model.ThemeDark, prefs.Theme)
	assert.Equal(t, "da", prefs.Locale)

	// the stored locale drives locale injection
	rec = pipelineRequest{method: http.MethodGet, target: "/settings", token: token}.do(e)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/da/settings", rec.Header().Get(echo.HeaderLocation))
}

func decodePreferences(t *testing.T, rec *httptest.ResponseRecorder) model.Preferences {
	t.Helper()
	var body handler.PreferencesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Preferences
}
