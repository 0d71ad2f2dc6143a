package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"saaskit/internal/auth"
	"saaskit/internal/errors"
	"saaskit/internal/model"
	"saaskit/internal/preferences"
	"saaskit/internal/service"
)

const testPublishableKey = "pk_test_ZXhhbXBsZS5jbGVyay5hY2NvdW50cy5kZXYk"

func TestHome(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := testRequest{method: http.MethodGet, target: "/es"}.do(e)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lang="es"`)
	assert.Contains(t, rec.Body.String(), "/es/sign-up")
}

func TestHome_UnknownLocaleIsNotFound(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := testRequest{method: http.MethodGet, target: "/fr"}.do(e)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestProtectedPages_RedirectAnonymous(t *testing.T) {
	e, _ := newTestServer(t, "")

	for _, target := range []string{"/en/dashboard", "/da/settings?tab=profile"} {
		t.Run(target, func(t *testing.T) {
			rec := testRequest{method: http.MethodGet, target: target}.do(e)
			require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

			loc, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, target[:3]+"/sign-in", loc.Path)
			assert.Equal(t, target, loc.Query().Get("redirect_url"))
		})
	}
}

func TestDashboard(t *testing.T) {
	tests := []struct {
		name     string
		profile  *model.Profile
		err      error
		contains []string
	}{
		{
			name:     "profile",
			profile:  &model.Profile{ID: 1, ClerkID: "user_1", Email: "user_1@example.com", FirstName: strPtr("Ada"), Bio: "Engines."},
			contains: []string{"Welcome back, Ada", "Engines."},
		},
		{
			name:     "no profile",
			err:      errors.ErrProfileNotFound,
			contains: []string{"Welcome back, user_1@example.com", "No profile yet"},
		},
		{
			name:     "cms down",
			err:      fmt.Errorf("fetch: %w", errors.ErrCMSUnavailable),
			contains: []string{"Something went wrong"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, deps := newTestServer(t, "")
			deps.profiles.On("GetProfile", mock.Anything, "user_1").Return(tt.profile, tt.err)

			rec := testRequest{method: http.MethodGet, target: "/en/dashboard", user: "user_1"}.do(e)
			require.Equal(t, http.StatusOK, rec.Code)
			for _, want := range tt.contains {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestSettings_Flash(t *testing.T) {
	e, deps := newTestServer(t, "")
	deps.profiles.On("GetProfile", mock.Anything, "user_1").Return(&model.Profile{ID: 1, ClerkID: "user_1"}, nil)

	rec := testRequest{method: http.MethodGet, target: "/en/settings?saved=1", user: "user_1"}.do(e)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your profile has been updated.")
}

func TestSignInPage(t *testing.T) {
	t.Run("hosted widget", func(t *testing.T) {
		e, _ := newTestServer(t, testPublishableKey)

		rec := testRequest{method: http.MethodGet, target: "/en/sign-in"}.do(e)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "example.clerk.accounts.dev")
		assert.Contains(t, rec.Body.String(), testPublishableKey)
	})

	t.Run("local form", func(t *testing.T) {
		e, _ := newTestServer(t, "")

		rec := testRequest{method: http.MethodGet, target: "/en/sign-in?redirect_url=%2Fen%2Fsettings"}.do(e)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `action="/en/sign-in"`)
		assert.Contains(t, rec.Body.String(), `value="/en/settings"`)
	})

	t.Run("signed in goes to redirect target", func(t *testing.T) {
		e, _ := newTestServer(t, "")

		rec := testRequest{method: http.MethodGet, target: "/en/sign-in?redirect_url=%2Fen%2Fsettings", user: "user_1"}.do(e)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/en/settings", rec.Header().Get("Location"))
	})

	t.Run("external redirect target ignored", func(t *testing.T) {
		e, _ := newTestServer(t, "")

		rec := testRequest{method: http.MethodGet, target: "/es/sign-in?redirect_url=https%3A%2F%2Fevil.example.com", user: "user_1"}.do(e)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/es/dashboard", rec.Header().Get("Location"))
	})
}

func TestDevSignInForm(t *testing.T) {
	e, deps := newTestServer(t, "")
	deps.auth.On("SignIn", mock.Anything, mock.MatchedBy(func(req service.SignInRequest) bool {
		return req.Email == "ada@example.com"
	})).Return(&service.Session{
		ID:        "sess_1",
		Token:     "token-1",
		User:      model.User{ID: "user_dev_1", Email: "ada@example.com"},
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	form := url.Values{"email": {"ada@example.com"}, "redirect_url": {"/en/settings"}}
	rec := testRequest{method: http.MethodPost, target: "/en/sign-in", body: form.Encode(), form: true}.do(e)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/settings", rec.Header().Get("Location"))
	assert.NotNil(t, responseCookie(rec, auth.SessionCookieName))
}

func TestSignOutForm(t *testing.T) {
	e, deps := newTestServer(t, "")
	deps.auth.On("SignOut", mock.Anything, mock.Anything).Return(fmt.Errorf("clerk: 503"))

	rec := testRequest{method: http.MethodPost, target: "/da/sign-out", user: "user_1"}.do(e)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/da", rec.Header().Get("Location"))

	ck := responseCookie(rec, auth.SessionCookieName)
	require.NotNil(t, ck)
	assert.Equal(t, -1, ck.MaxAge)
}

func TestUpdateProfileForm(t *testing.T) {
	e, deps := newTestServer(t, "")
	deps.profiles.On("UpdateProfile", mock.Anything, "user_1", mock.MatchedBy(func(u model.ProfileUpdate) bool {
		return u.FirstName != nil && *u.FirstName == "Ada" &&
			u.Bio != nil && *u.Bio == "" &&
			u.Locale == nil && u.Timezone != nil && *u.Timezone == "UTC"
	})).Return(&model.Profile{ID: 1}, nil)

	form := url.Values{"firstName": {"Ada"}, "lastName": {""}, "bio": {""}, "locale": {""}, "timezone": {"UTC"}}
	rec := testRequest{method: http.MethodPost, target: "/en/settings/profile", body: form.Encode(), form: true, user: "user_1"}.do(e)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/settings?saved=1", rec.Header().Get("Location"))
	deps.profiles.AssertExpectations(t)
}

func TestUpdateProfileForm_InvalidLocale(t *testing.T) {
	e, deps := newTestServer(t, "")

	form := url.Values{"locale": {"fr"}}
	rec := testRequest{method: http.MethodPost, target: "/en/settings/profile", body: form.Encode(), form: true, user: "user_1"}.do(e)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	deps.profiles.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetTheme(t *testing.T) {
	tests := []struct {
		name  string
		form  url.Values
		start model.Theme
		want  model.Theme
	}{
		{"explicit", url.Values{"theme": {"dark"}}, model.ThemeSystem, model.ThemeDark},
		{"cycles from light", url.Values{}, model.ThemeLight, model.ThemeDark},
		{"cycles from system", url.Values{}, model.ThemeSystem, model.ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestServer(t, "")
			start, err := preferences.Cookie(model.Preferences{Theme: tt.start, Locale: "en"}, false)
			require.NoError(t, err)

			rec := testRequest{
				method:  http.MethodPost,
				target:  "/en/preferences/theme",
				body:    tt.form.Encode(),
				form:    true,
				referer: "http://example.com/en/settings",
				cookies: []*http.Cookie{start},
			}.do(e)
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/en/settings", rec.Header().Get("Location"))

			ck := responseCookie(rec, preferences.CookieName)
			require.NotNil(t, ck)
			stored, ok := preferences.Decode(ck.Value)
			require.True(t, ok)
			assert.Equal(t, tt.want, stored.Theme)
		})
	}
}

func TestSetSidebar(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := testRequest{method: http.MethodPost, target: "/en/preferences/sidebar", body: "collapsed=true", form: true}.do(e)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en", rec.Header().Get("Location"))
	stored, ok := preferences.Decode(responseCookie(rec, preferences.CookieName).Value)
	require.True(t, ok)
	assert.True(t, stored.SidebarCollapsed)

	rec = testRequest{method: http.MethodPost, target: "/en/preferences/sidebar", body: "collapsed=maybe", form: true}.do(e)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetLocale(t *testing.T) {
	e, _ := newTestServer(t, "")

	form := url.Values{"locale": {"es"}, "path": {"/settings"}}
	rec := testRequest{method: http.MethodPost, target: "/en/preferences/locale", body: form.Encode(), form: true}.do(e)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/es/settings", rec.Header().Get("Location"))
	stored, ok := preferences.Decode(responseCookie(rec, preferences.CookieName).Value)
	require.True(t, ok)
	assert.Equal(t, "es", stored.Locale)

	form = url.Values{"locale": {"fr"}, "path": {"/settings"}}
	rec = testRequest{method: http.MethodPost, target: "/en/preferences/locale", body: form.Encode(), form: true}.do(e)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPreferences(t *testing.T) {
	e, deps := newTestServer(t, "")
	deps.prefs.On("Save", mock.Anything, "user_1", mock.MatchedBy(func(s *preferences.Store) bool {
		return s.Preferences() == model.DefaultPreferences()
	})).Return(nil)
	start, err := preferences.Cookie(model.Preferences{Theme: model.ThemeDark, Locale: "es", SidebarCollapsed: true}, false)
	require.NoError(t, err)

	rec := testRequest{method: http.MethodPost, target: "/es/preferences/reset", form: true, user: "user_1", cookies: []*http.Cookie{start}}.do(e)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/settings", rec.Header().Get("Location"))

	stored, ok := preferences.Decode(responseCookie(rec, preferences.CookieName).Value)
	require.True(t, ok)
	assert.Equal(t, model.DefaultPreferences(), stored)
	deps.prefs.AssertExpectations(t)
}

func TestResetPreferences_DefaultsAlreadyInPlace(t *testing.T) {
	e, deps := newTestServer(t, "")

	rec := testRequest{method: http.MethodPost, target: "/en/preferences/reset", form: true, user: "user_1"}.do(e)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/settings", rec.Header().Get("Location"))
	deps.prefs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotFound(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := testRequest{method: http.MethodGet, target: "/api/nope"}.do(e)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found","code":"NOT_FOUND"}`, rec.Body.String())

	rec = testRequest{method: http.MethodGet, target: "/da/nowhere/else"}.do(e)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `lang="da"`)
}
