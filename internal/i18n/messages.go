package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.json
var messageFS embed.FS

// catalog holds the loaded bundle plus one localizer per supported locale.
type catalog struct {
	bundle     *goi18n.Bundle
	localizers map[string]*goi18n.Localizer
	ids        map[string]map[string]struct{}
}

var messages = mustLoadCatalog()

// mustLoadCatalog loads every locale file. Nested objects become dot-separated message IDs.
func mustLoadCatalog() *catalog {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	c := &catalog{
		bundle:     bundle,
		localizers: make(map[string]*goi18n.Localizer, len(Locales)),
		ids:        make(map[string]map[string]struct{}, len(Locales)),
	}
	for _, locale := range Locales {
		file, err := bundle.LoadMessageFileFS(messageFS, "messages/"+locale+".json")
		if err != nil {
			panic(fmt.Sprintf("i18n: load catalog %s: %v", locale, err))
		}
		ids := make(map[string]struct{}, len(file.Messages))
		for _, m := range file.Messages {
			ids[m.ID] = struct{}{}
		}
		c.ids[locale] = ids
		c.localizers[locale] = goi18n.NewLocalizer(bundle, locale)
	}
	return c
}

// T returns the message for key in locale, falling back to the default locale and then to the key itself.
// Template fields such as {{.name}} are filled from args given as alternating name/value pairs.
func T(locale, key string, args ...string) string {
	localizer, ok := messages.localizers[locale]
	if !ok {
		localizer = messages.localizers[DefaultLocale]
	}

	var data map[string]string
	if len(args) > 1 {
		data = make(map[string]string, len(args)/2)
		for i := 0; i+1 < len(args); i += 2 {
			data[args[i]] = args[i+1]
		}
	}

	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil && msg == "" {
		return key
	}
	return msg
}

// Has reports whether key is defined in the catalog for locale.
func Has(locale, key string) bool {
	_, ok := messages.ids[locale][key]
	return ok
}
