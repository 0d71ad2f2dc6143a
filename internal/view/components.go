package view

import (
	"strings"

	"saaskit/internal/i18n"
	"saaskit/internal/model"
)

// ButtonVariant is the visual style of a button.
type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonGhost     ButtonVariant = "ghost"
	ButtonDanger    ButtonVariant = "danger"
)

// ButtonSize is the size of a button.
type ButtonSize string

const (
	ButtonSmall  ButtonSize = "sm"
	ButtonMedium ButtonSize = "md"
	ButtonLarge  ButtonSize = "lg"
)

// Button renders as a link when Href is set, otherwise as a <button>.
type Button struct {
	Label    string
	Variant  ButtonVariant
	Size     ButtonSize
	Href     string
	Type     string
	Name     string
	Value    string
	Disabled bool
}

// Class returns the CSS classes for the button. Unknown variants and sizes
// render as primary and medium.
func (b Button) Class() string {
	variant := b.Variant
	switch variant {
	case ButtonPrimary, ButtonSecondary, ButtonGhost, ButtonDanger:
	default:
		variant = ButtonPrimary
	}
	size := b.Size
	switch size {
	case ButtonSmall, ButtonMedium, ButtonLarge:
	default:
		size = ButtonMedium
	}
	classes := []string{"btn", "btn-" + string(variant), "btn-" + string(size)}
	if b.Disabled {
		classes = append(classes, "btn-disabled")
	}
	return strings.Join(classes, " ")
}

// ButtonType returns the type attribute, "button" unless set.
func (b Button) ButtonType() string {
	if b.Type == "" {
		return "button"
	}
	return b.Type
}

// EmptyState is a placeholder shown when there is nothing to display or a load failed.
type EmptyState struct {
	Icon        string
	Title       string
	Description string
	Action      *Button
}

// ProgressBar shows a completion percentage.
type ProgressBar struct {
	Label string
	Value int
}

// Percent returns Value clamped to [0, 100].
func (p ProgressBar) Percent() int {
	switch {
	case p.Value < 0:
		return 0
	case p.Value > 100:
		return 100
	default:
		return p.Value
	}
}

// ThemeToggle posts to Action to advance the theme.
type ThemeToggle struct {
	Current model.Theme
	Action  string
	Locale  string
}

// Next is the theme the toggle switches to.
func (t ThemeToggle) Next() model.Theme {
	return t.Current.Next()
}

// Icon returns the glyph for the current theme.
func (t ThemeToggle) Icon() string {
	switch t.Current {
	case model.ThemeLight:
		return "☀"
	case model.ThemeDark:
		return "☾"
	default:
		return "◐"
	}
}

// NavItem is a sidebar entry.
type NavItem struct {
	Label  string
	Href   string
	Icon   string
	Active bool
}

// LocaleOption is an entry of the locale switcher.
type LocaleOption struct {
	Code    string
	Name    string
	Href    string
	Current bool
}

// Shell is the dashboard chrome: sidebar plus a header with the user menu and
// theme toggle.
type Shell struct {
	Collapsed   bool
	Nav         []NavItem
	User        *model.User
	ThemeToggle ThemeToggle
	SidebarURL  string
	SignOutURL  string
}

// NewShell builds the dashboard chrome for a localized page. path is the
// page path without its locale prefix.
func NewShell(locale, path string, theme model.Theme, collapsed bool, user *model.User) Shell {
	nav := []NavItem{
		{Label: i18n.T(locale, "common.dashboard"), Href: i18n.LocalizePath(locale, "/dashboard"), Icon: "▦"},
		{Label: i18n.T(locale, "common.settings"), Href: i18n.LocalizePath(locale, "/settings"), Icon: "⚙"},
	}
	for i := range nav {
		nav[i].Active = nav[i].Href == i18n.LocalizePath(locale, path)
	}
	return Shell{
		Collapsed:   collapsed,
		Nav:         nav,
		User:        user,
		ThemeToggle: ThemeToggle{Current: theme, Action: i18n.LocalizePath(locale, "/preferences/theme"), Locale: locale},
		SidebarURL:  i18n.LocalizePath(locale, "/preferences/sidebar"),
		SignOutURL:  i18n.LocalizePath(locale, "/sign-out"),
	}
}

// LocaleOptions lists every supported locale linking to path in that locale.
func LocaleOptions(current, path string) []LocaleOption {
	opts := make([]LocaleOption, 0, len(i18n.Locales))
	for _, code := range i18n.Locales {
		opts = append(opts, LocaleOption{
			Code:    code,
			Name:    i18n.Name(code),
			Href:    i18n.LocalizePath(code, path),
			Current: code == current,
		})
	}
	return opts
}
