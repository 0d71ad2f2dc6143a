package preferences

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"saaskit/internal/model"
)

const (
	// CookieName is the persisted state key shared with the browser.
	CookieName = "auth-store"
	// CookieMaxAge keeps the preferences for a year; every write renews it.
	CookieMaxAge = 365 * 24 * time.Hour
)

// Encode serialises the persisted subset as URL-escaped JSON.
func Encode(p model.Preferences) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(payload)), nil
}

// Decode parses a cookie value written by Encode. Missing fields keep their
// defaults; ok is false when the value is not a JSON object.
func Decode(value string) (model.Preferences, bool) {
	raw, err := url.QueryUnescape(value)
	if err != nil {
		return model.Preferences{}, false
	}
	p := model.DefaultPreferences()
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.Preferences{}, false
	}
	return sanitize(p), true
}

// FromRequest restores the Store from the request cookie. ok is false when
// the cookie is absent or unreadable.
func FromRequest(r *http.Request) (*Store, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	p, ok := Decode(c.Value)
	if !ok {
		return nil, false
	}
	return Restore(p), true
}

// Cookie builds the cookie persisting p.
func Cookie(p model.Preferences, secure bool) (*http.Cookie, error) {
	value, err := Encode(p)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		Expires:  time.Now().Add(CookieMaxAge),
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}, nil
}
