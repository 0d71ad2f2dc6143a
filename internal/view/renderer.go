// Package view renders the server-side pages and their presentational components.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"saaskit/internal/i18n"
	"saaskit/internal/model"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and other assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is the data every page template receives.
type Page struct {
	Locale  string
	Path    string
	Title   string
	Theme   model.Theme
	User    *model.User
	Shell   *Shell
	Flash   string
	Content any
}

// Renderer implements echo.Renderer over the embedded page templates.
// Each page is parsed together with the layout and the component partials.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// New parses the embedded templates.
func New() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcMap()).ParseFS(templateFS, "templates/layout.html", "templates/components/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageFiles))}
	for _, file := range pageFiles {
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.Must(base.Clone()).ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render writes the named page wrapped in the layout.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"t": func(locale, key string, args ...string) string {
			return i18n.T(locale, key, args...)
		},
		"localize":      i18n.LocalizePath,
		"localeOptions": LocaleOptions,
		"button": func(label, variant, size, href string) Button {
			return Button{Label: label, Variant: ButtonVariant(variant), Size: ButtonSize(size), Href: href}
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"themeLabel": func(locale string, theme model.Theme) string {
			return i18n.T(locale, "theme."+string(theme))
		},
		// dict builds a map from alternating keys and values for passing
		// several values to a partial.
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
	}
}
