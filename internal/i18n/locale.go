// Package i18n holds the supported locale table, locale negotiation and message catalogs.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used whenever no supported locale can be resolved.
const DefaultLocale = "en"

// Locales lists the supported locales in display order. The first entry is the default.
var Locales = []string{"en", "es", "da"}

var localeNames = map[string]string{
	"en": "English",
	"es": "Español",
	"da": "Dansk",
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Spanish,
	language.Danish,
})

// IsValid reports whether locale is supported.
func IsValid(locale string) bool {
	_, ok := localeNames[locale]
	return ok
}

// Name returns the native display name of a locale.
func Name(locale string) string {
	return localeNames[locale]
}

// Negotiate picks the locale for a request. An explicitly preferred supported locale wins,
// then the best Accept-Language match, then DefaultLocale.
func Negotiate(preferred, acceptLanguage string) string {
	if IsValid(preferred) {
		return preferred
	}
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	return Locales[idx]
}

// SplitPath separates a leading locale segment from path.
// "/es/dashboard" yields ("es", "/dashboard", true); "/es" yields ("es", "/", true).
func SplitPath(path string) (locale, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, remainder, hasRest := strings.Cut(trimmed, "/")
	if !IsValid(segment) {
		return "", path, false
	}
	if !hasRest || remainder == "" {
		return segment, "/", true
	}
	return segment, "/" + remainder, true
}

// LocalizePath prefixes path with locale. Root maps to "/{locale}".
func LocalizePath(locale, path string) string {
	if path == "" || path == "/" {
		return "/" + locale
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "/" + locale + path
}
