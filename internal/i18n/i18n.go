// Package i18n resolves translation keys for the storefront's supported locales.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator holds the locale tables and resolves keys against them.
type Translator struct {
	dict     map[string]map[string]string
	fallback string
	locales  []string
	matcher  language.Matcher
}

// Load builds a translator from the embedded locale tables.
func Load(fallback string) (*Translator, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	tables := make(map[string]map[string]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".json" {
			continue
		}
		raw, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", name, err)
		}
		tables[strings.TrimSuffix(name, ".json")] = m
	}

	return New(fallback, tables)
}

// New builds a translator from in-memory tables. The fallback locale must be present.
func New(fallback string, tables map[string]map[string]string) (*Translator, error) {
	fallback = normalize(fallback)
	if _, ok := tables[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}

	locales := make([]string, 0, len(tables))
	dict := make(map[string]map[string]string, len(tables))
	for l, m := range tables {
		l = normalize(l)
		dict[l] = m
		if l != fallback {
			locales = append(locales, l)
		}
	}
	sort.Strings(locales)
	locales = append([]string{fallback}, locales...)

	// The first tag is the matcher's default.
	tags := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		tags = append(tags, language.Make(l))
	}

	return &Translator{
		dict:     dict,
		fallback: fallback,
		locales:  locales,
		matcher:  language.NewMatcher(tags),
	}, nil
}

// Fallback returns the default locale.
func (t *Translator) Fallback() string { return t.fallback }

// Supported returns the loaded locales, fallback first.
func (t *Translator) Supported() []string {
	out := make([]string, len(t.locales))
	copy(out, t.locales)
	return out
}

// IsSupported reports whether a table exists for locale.
func (t *Translator) IsSupported(locale string) bool {
	_, ok := t.dict[normalize(locale)]
	return ok
}

// Resolve returns the translation of key in locale, falling back to the
// default locale and finally to the key itself.
func (t *Translator) Resolve(locale, key string) string {
	if m, ok := t.dict[normalize(locale)]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := t.dict[t.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// Format resolves key and substitutes {name} placeholders from args.
func (t *Translator) Format(locale, key string, args map[string]string) string {
	s := t.Resolve(locale, key)
	if len(args) == 0 {
		return s
	}
	pairs := make([]string, 0, len(args)*2)
	for k, v := range args {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// Match picks the best supported locale for an Accept-Language header value.
func (t *Translator) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(t.locales) {
		return t.fallback
	}
	return t.locales[idx]
}

// normalize reduces a locale tag such as "fr-TG" or "en_US" to its base language.
func normalize(locale string) string {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return strings.ToLower(locale)
	}
	base, _ := tag.Base()
	return base.String()
}
