package model

import "time"

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is one of the supported themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Next cycles light -> dark -> system -> light.
func (t Theme) Next() Theme {
	switch t {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeSystem
	default:
		return ThemeLight
	}
}

// Preferences is the persisted subset of client state.
type Preferences struct {
	Theme            Theme  `json:"theme"`
	Locale           string `json:"locale"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
}

// UserPreferences is the server-side copy of a signed-in user's preferences.
type UserPreferences struct {
	AuthID           string    `json:"authId" gorm:"primaryKey;size:64"`
	Theme            string    `json:"theme" gorm:"size:16;not null;default:'system'"`
	Locale           string    `json:"locale" gorm:"size:8;not null;default:'en'"`
	SidebarCollapsed bool      `json:"sidebarCollapsed" gorm:"not null;default:false"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// TableName pins the table name.
func (UserPreferences) TableName() string {
	return "preferences"
}

// ToPreferences converts the stored row to Preferences.
func (p *UserPreferences) ToPreferences() Preferences {
	return Preferences{
		Theme:            Theme(p.Theme),
		Locale:           p.Locale,
		SidebarCollapsed: p.SidebarCollapsed,
	}
}

// DefaultPreferences returns the state a new visitor starts with.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeSystem, Locale: "en"}
}
