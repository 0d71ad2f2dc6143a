package preferences

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "saaskit/internal/errors"
	"saaskit/internal/model"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.Equal(t, model.ThemeSystem, s.Theme())
	assert.Equal(t, "en", s.Locale())
	assert.False(t, s.SidebarCollapsed())
	assert.Nil(t, s.User())
	assert.False(t, s.Restored())
	assert.False(t, s.Dirty())
}

func TestSetters(t *testing.T) {
	s := New()

	require.NoError(t, s.SetTheme(model.ThemeDark))
	require.NoError(t, s.SetLocale("da"))
	s.ToggleSidebar()

	assert.Equal(t, model.Preferences{Theme: model.ThemeDark, Locale: "da", SidebarCollapsed: true}, s.Preferences())
	assert.True(t, s.Dirty())

	s.SetSidebarCollapsed(false)
	assert.False(t, s.SidebarCollapsed())
}

func TestSetters_RejectInvalid(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.SetTheme("sepia"), apperrors.ErrInvalidTheme)
	assert.ErrorIs(t, s.SetLocale("fr"), apperrors.ErrInvalidLocale)
	assert.Equal(t, model.DefaultPreferences(), s.Preferences())
	assert.False(t, s.Dirty())
}

func TestCycleTheme(t *testing.T) {
	s := Restore(model.Preferences{Theme: model.ThemeLight, Locale: "en"})
	assert.Equal(t, model.ThemeDark, s.CycleTheme())
	assert.Equal(t, model.ThemeSystem, s.CycleTheme())
	assert.Equal(t, model.ThemeLight, s.CycleTheme())
}

func TestUserSnapshotAndReset(t *testing.T) {
	s := Restore(model.Preferences{Theme: model.ThemeDark, Locale: "es", SidebarCollapsed: true})
	s.SetUser(&model.User{ID: "user_1", Email: "a@example.com"})
	assert.Equal(t, "user_1", s.User().ID)

	s.ClearUser()
	assert.Nil(t, s.User())

	s.SetUser(&model.User{ID: "user_1"})
	s.Reset()
	assert.Equal(t, "user_1", s.User().ID)
	assert.Equal(t, model.DefaultPreferences(), s.Preferences())
	assert.True(t, s.Dirty())
}

func TestRestore_SanitizesUnknownValues(t *testing.T) {
	s := Restore(model.Preferences{Theme: "neon", Locale: "klingon", SidebarCollapsed: true})
	assert.Equal(t, model.Preferences{Theme: model.ThemeSystem, Locale: "en", SidebarCollapsed: true}, s.Preferences())
	assert.True(t, s.Restored())
}

func TestCookieRoundTrip_DarkTheme(t *testing.T) {
	s := New()
	require.NoError(t, s.SetTheme(model.ThemeDark))

	ck, err := Cookie(s.Preferences(), false)
	require.NoError(t, err)
	assert.Equal(t, CookieName, ck.Name)
	assert.Equal(t, int(CookieMaxAge.Seconds()), ck.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)

	restored, ok := FromRequest(req)
	require.True(t, ok)
	assert.Equal(t, model.ThemeDark, restored.Theme())
	assert.Equal(t, s.Preferences(), restored.Preferences())
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   model.Preferences
		wantOK bool
	}{
		{"full", "%7B%22theme%22%3A%22light%22%2C%22locale%22%3A%22es%22%2C%22sidebarCollapsed%22%3Atrue%7D", model.Preferences{Theme: model.ThemeLight, Locale: "es", SidebarCollapsed: true}, true},
		{"partial keeps defaults", "%7B%22locale%22%3A%22da%22%7D", model.Preferences{Theme: model.ThemeSystem, Locale: "da"}, true},
		{"unescaped json", `{"theme":"dark"}`, model.Preferences{Theme: model.ThemeDark, Locale: "en"}, true},
		{"garbage", "not-json", model.Preferences{}, false},
		{"bad escape", "%zz", model.Preferences{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromRequest_NoCookie(t *testing.T) {
	_, ok := FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}
