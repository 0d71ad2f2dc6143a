// Package gate decides, per request path, whether to inject a locale prefix,
// let the request through, or send an anonymous visitor to the sign-in page.
package gate

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"saaskit/internal/i18n"
)

// Kind is the outcome of a gate decision.
type Kind int

const (
	// Pass lets the request through unchanged.
	Pass Kind = iota
	// RedirectLocale sends the visitor to the same path with a locale prefix.
	RedirectLocale
	// RedirectSignIn sends an anonymous visitor of a protected path to sign in.
	RedirectSignIn
)

func (k Kind) String() string {
	switch k {
	case RedirectLocale:
		return "redirect-locale"
	case RedirectSignIn:
		return "redirect-sign-in"
	default:
		return "pass"
	}
}

// Decision is the result of Gate.Decide.
type Decision struct {
	Kind     Kind
	Location string
	Locale   string
}

// Request is the input of a gate decision.
type Request struct {
	Path          string
	RawQuery      string
	Authenticated bool
	// Locale is the locale to inject when the path has none. Empty or unsupported means the default locale.
	Locale string
}

// Rules lists the path patterns the gate works with. Public and protected
// patterns match the path with its locale prefix removed; excluded patterns
// match the raw path and bypass the gate entirely.
type Rules struct {
	Public     []string `yaml:"public"`
	Protected  []string `yaml:"protected"`
	Excluded   []string `yaml:"excluded"`
	SignInPath string   `yaml:"signInPath"`
}

// DefaultRules returns the built-in route table.
func DefaultRules() Rules {
	return Rules{
		Public: []string{
			`^/$`,
			`^/sign-in(/.*)?$`,
			`^/sign-up(/.*)?$`,
			`^/pricing$`,
			`^/about$`,
		},
		Protected: []string{
			`^/dashboard(/.*)?$`,
			`^/settings(/.*)?$`,
			`^/profile(/.*)?$`,
		},
		Excluded: []string{
			`^/api(/.*)?$`,
			`^/swagger(/.*)?$`,
			`^/static(/.*)?$`,
			`^/healthz$`,
		},
		SignInPath: "/sign-in",
	}
}

// LoadRules reads rules from a YAML file. Sections left out of the file keep their defaults.
func LoadRules(file string) (Rules, error) {
	rules := DefaultRules()
	raw, err := os.ReadFile(file)
	if err != nil {
		return rules, fmt.Errorf("read routes file: %w", err)
	}
	var parsed Rules
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return rules, fmt.Errorf("parse routes file: %w", err)
	}
	if parsed.Public != nil {
		rules.Public = parsed.Public
	}
	if parsed.Protected != nil {
		rules.Protected = parsed.Protected
	}
	if parsed.Excluded != nil {
		rules.Excluded = parsed.Excluded
	}
	if parsed.SignInPath != "" {
		rules.SignInPath = parsed.SignInPath
	}
	return rules, nil
}

// Gate holds compiled rules. It keeps no per-request state.
type Gate struct {
	public     []*regexp.Regexp
	protected  []*regexp.Regexp
	excluded   []*regexp.Regexp
	signInPath string
}

// New compiles rules. Invalid patterns are reported here rather than at request time.
func New(rules Rules) (*Gate, error) {
	g := &Gate{signInPath: rules.SignInPath}
	if g.signInPath == "" {
		g.signInPath = "/sign-in"
	}
	var err error
	if g.public, err = compile("public", rules.Public); err != nil {
		return nil, err
	}
	if g.protected, err = compile("protected", rules.Protected); err != nil {
		return nil, err
	}
	if g.excluded, err = compile("excluded", rules.Excluded); err != nil {
		return nil, err
	}
	return g, nil
}

// MustNew is New for static rule tables.
func MustNew(rules Rules) *Gate {
	g, err := New(rules)
	if err != nil {
		panic(err)
	}
	return g
}

func compile(section string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%s pattern %q: %w", section, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func matchAny(patterns []*regexp.Regexp, p string) bool {
	for _, re := range patterns {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

// IsPublic reports whether the locale-less path is in the public set.
func (g *Gate) IsPublic(p string) bool { return matchAny(g.public, p) }

// IsProtected reports whether the locale-less path is in the protected set.
func (g *Gate) IsProtected(p string) bool { return matchAny(g.protected, p) }

// IsExcluded reports whether the raw path bypasses the gate: API routes, docs,
// static assets and anything that looks like a file. File-like paths under a
// protected prefix stay gated.
func (g *Gate) IsExcluded(p string) bool {
	if matchAny(g.excluded, p) {
		return true
	}
	if !strings.Contains(path.Base(p), ".") {
		return false
	}
	_, rest, _ := i18n.SplitPath(p)
	return !g.IsProtected(rest)
}

// Decide applies the routing contract to req.
func (g *Gate) Decide(req Request) Decision {
	p := req.Path
	if p == "" {
		p = "/"
	}
	if g.IsExcluded(p) {
		return Decision{Kind: Pass}
	}

	locale, rest, ok := i18n.SplitPath(p)
	if !ok {
		locale = req.Locale
		if !i18n.IsValid(locale) {
			locale = i18n.DefaultLocale
		}
		return Decision{
			Kind:     RedirectLocale,
			Location: withQuery(i18n.LocalizePath(locale, p), req.RawQuery),
			Locale:   locale,
		}
	}

	if g.IsPublic(rest) {
		return Decision{Kind: Pass, Locale: locale}
	}

	if g.IsProtected(rest) && !req.Authenticated {
		target := i18n.LocalizePath(locale, g.signInPath) + "?redirect_url=" + url.QueryEscape(withQuery(p, req.RawQuery))
		return Decision{Kind: RedirectSignIn, Location: target, Locale: locale}
	}

	return Decision{Kind: Pass, Locale: locale}
}

func withQuery(p, rawQuery string) string {
	if rawQuery == "" {
		return p
	}
	return p + "?" + rawQuery
}
