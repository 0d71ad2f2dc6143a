package view

import (
	"saaskit/internal/i18n"
	"saaskit/internal/model"
)

// Feature is a landing page highlight.
type Feature struct {
	Title string
	Body  string
}

// HomeContent is the landing page.
type HomeContent struct {
	Primary   Button
	Secondary Button
	Features  []Feature
}

// NewHomeContent builds the landing page for locale.
func NewHomeContent(locale string, signedIn bool) HomeContent {
	primary := Button{Label: i18n.T(locale, "common.getStarted"), Variant: ButtonPrimary, Size: ButtonLarge, Href: i18n.LocalizePath(locale, "/sign-up")}
	if signedIn {
		primary = Button{Label: i18n.T(locale, "common.dashboard"), Variant: ButtonPrimary, Size: ButtonLarge, Href: i18n.LocalizePath(locale, "/dashboard")}
	}
	return HomeContent{
		Primary:   primary,
		Secondary: Button{Label: i18n.T(locale, "common.learnMore"), Variant: ButtonSecondary, Size: ButtonLarge, Href: "#features"},
		Features: []Feature{
			{Title: i18n.T(locale, "home.featureAuthTitle"), Body: i18n.T(locale, "home.featureAuthBody")},
			{Title: i18n.T(locale, "home.featureI18nTitle"), Body: i18n.T(locale, "home.featureI18nBody")},
			{Title: i18n.T(locale, "home.featureCmsTitle"), Body: i18n.T(locale, "home.featureCmsBody")},
		},
	}
}

// AuthContent is the sign-in or sign-up page. Either the vendor widget
// (ClerkScriptURL set) or the local development form (DevAction set) is shown.
type AuthContent struct {
	Mode           string
	Heading        string
	Subheading     string
	RedirectURL    string
	SignInURL      string
	SignUpURL      string
	PublishableKey string
	ClerkScriptURL string
	DevAction      string
	Submit         Button
	SwitchPrompt   string
	SwitchLabel    string
	SwitchURL      string
}

// NewAuthContent builds the sign-in (mode "sign-in") or sign-up page.
func NewAuthContent(locale, mode, redirectURL string) AuthContent {
	c := AuthContent{
		Mode:        mode,
		RedirectURL: redirectURL,
		SignInURL:   i18n.LocalizePath(locale, "/sign-in"),
		SignUpURL:   i18n.LocalizePath(locale, "/sign-up"),
	}
	if mode == "sign-up" {
		c.Heading = i18n.T(locale, "auth.signUpTitle")
		c.Subheading = i18n.T(locale, "auth.signUpSubtitle")
		c.Submit = Button{Label: i18n.T(locale, "common.signUp"), Type: "submit"}
		c.SwitchPrompt = i18n.T(locale, "auth.haveAccount")
		c.SwitchLabel = i18n.T(locale, "common.signIn")
		c.SwitchURL = c.SignInURL
	} else {
		c.Heading = i18n.T(locale, "auth.signInTitle")
		c.Subheading = i18n.T(locale, "auth.signInSubtitle")
		c.Submit = Button{Label: i18n.T(locale, "common.signIn"), Type: "submit"}
		c.SwitchPrompt = i18n.T(locale, "auth.noAccount")
		c.SwitchLabel = i18n.T(locale, "common.signUp")
		c.SwitchURL = c.SignUpURL
	}
	return c
}

// DashboardContent is the signed-in landing page.
type DashboardContent struct {
	Subtitle     string
	Profile      *model.Profile
	Completion   ProgressBar
	ProfileError *EmptyState
	Projects     EmptyState
}

// NewDashboardContent builds the dashboard. A nil profile shows profileErr instead.
func NewDashboardContent(locale string, profile *model.Profile, profileErr *EmptyState) DashboardContent {
	return DashboardContent{
		Subtitle:     i18n.T(locale, "dashboard.subtitle"),
		Profile:      profile,
		Completion:   ProgressBar{Label: i18n.T(locale, "dashboard.profileCompletion"), Value: ProfileCompletion(profile)},
		ProfileError: profileErr,
		Projects: EmptyState{
			Icon:        "▢",
			Title:       i18n.T(locale, "dashboard.noProjectsTitle"),
			Description: i18n.T(locale, "dashboard.noProjectsDescription"),
			Action:      &Button{Label: i18n.T(locale, "dashboard.createProject"), Variant: ButtonPrimary, Size: ButtonMedium, Disabled: true},
		},
	}
}

// SettingsContent is the settings page.
type SettingsContent struct {
	Preferences  model.Preferences
	Themes       []Button
	Profile      *model.Profile
	ProfileError *EmptyState
	Submit       Button
	Reset        Button
}

// NewSettingsContent builds the settings page. The active theme renders as
// the primary button of the theme picker.
func NewSettingsContent(locale string, prefs model.Preferences, profile *model.Profile, profileErr *EmptyState) SettingsContent {
	themes := make([]Button, 0, 3)
	for _, theme := range []model.Theme{model.ThemeLight, model.ThemeDark, model.ThemeSystem} {
		variant := ButtonSecondary
		if theme == prefs.Theme {
			variant = ButtonPrimary
		}
		themes = append(themes, Button{
			Label:   i18n.T(locale, "theme."+string(theme)),
			Variant: variant,
			Size:    ButtonSmall,
			Type:    "submit",
			Name:    "theme",
			Value:   string(theme),
		})
	}
	return SettingsContent{
		Preferences:  prefs,
		Themes:       themes,
		Profile:      profile,
		ProfileError: profileErr,
		Submit:       Button{Label: i18n.T(locale, "common.save"), Variant: ButtonPrimary, Type: "submit"},
		Reset:        Button{Label: i18n.T(locale, "settings.reset"), Variant: ButtonGhost, Size: ButtonSmall, Type: "submit"},
	}
}

// ProfileCompletion is the share of optional profile fields filled in, 0-100.
func ProfileCompletion(p *model.Profile) int {
	if p == nil {
		return 0
	}
	fields := []bool{
		p.Email != "",
		p.FirstName != nil && *p.FirstName != "",
		p.LastName != nil && *p.LastName != "",
		p.Bio != "",
		p.Timezone != "",
	}
	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}
	return filled * 100 / len(fields)
}

// NotFoundState is the empty state shown for unknown pages.
func NotFoundState(locale string) EmptyState {
	return EmptyState{
		Icon:        "?",
		Title:       i18n.T(locale, "errors.notFoundTitle"),
		Description: i18n.T(locale, "errors.notFoundDescription"),
		Action:      &Button{Label: i18n.T(locale, "errors.goHome"), Variant: ButtonPrimary, Href: i18n.LocalizePath(locale, "/")},
	}
}

// ErrorState is the empty state shown when a page cannot load.
func ErrorState(locale string) EmptyState {
	return EmptyState{
		Icon:        "!",
		Title:       i18n.T(locale, "errors.genericTitle"),
		Description: i18n.T(locale, "errors.genericDescription"),
		Action:      &Button{Label: i18n.T(locale, "errors.goHome"), Variant: ButtonSecondary, Href: i18n.LocalizePath(locale, "/")},
	}
}

// ProfileMissingState is the empty state shown when the CMS holds no profile.
func ProfileMissingState(locale string) EmptyState {
	return EmptyState{
		Icon:        "◌",
		Title:       i18n.T(locale, "errors.profileMissingTitle"),
		Description: i18n.T(locale, "errors.profileMissingDescription"),
	}
}
