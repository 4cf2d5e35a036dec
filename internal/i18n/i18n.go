// Package i18n holds the dashboard's translated strings.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when the requested locale has no catalog.
const DefaultLocale = "en"

//go:embed locales/*.yaml
var localesFS embed.FS

// Catalog maps dotted keys such as "widget.leads.title" to strings.
type Catalog struct {
	locale  string
	entries map[string]string
	// fallback answers keys the locale is missing.
	fallback *Catalog
}

// Load returns the catalog for locale, falling back to DefaultLocale for
// unknown locales and for keys the locale does not translate. A region
// suffix is ignored: "fr_CA" and "fr-CA" load "fr".
func Load(locale string) (*Catalog, error) {
	base, err := parse(DefaultLocale)
	if err != nil {
		return nil, err
	}

	lang := normalize(locale)
	if lang == DefaultLocale || !Has(lang) {
		return base, nil
	}

	c, err := parse(lang)
	if err != nil {
		return nil, err
	}
	c.fallback = base
	return c, nil
}

// MustLoad is Load for the embedded catalogs, which are known to parse.
func MustLoad(locale string) *Catalog {
	c, err := Load(locale)
	if err != nil {
		panic(err)
	}
	return c
}

// Locales lists the embedded locales.
func Locales() []string {
	entries, _ := fs.ReadDir(localesFS, "locales")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(out)
	return out
}

func Has(locale string) bool {
	_, err := fs.Stat(localesFS, "locales/"+locale+".yaml")
	return err == nil
}

func (c *Catalog) Locale() string {
	return c.locale
}

// T returns the string for key, or the key itself if no catalog has it.
func (c *Catalog) T(key string) string {
	if c == nil {
		return key
	}
	if s, ok := c.entries[key]; ok {
		return s
	}
	if c.fallback != nil {
		return c.fallback.T(key)
	}
	return key
}

// Tf formats the string for key with args.
func (c *Catalog) Tf(key string, args ...any) string {
	return fmt.Sprintf(c.T(key), args...)
}

func parse(locale string) (*Catalog, error) {
	data, err := localesFS.ReadFile("locales/" + locale + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read locale %q: %w", locale, err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse locale %q: %w", locale, err)
	}

	c := &Catalog{locale: locale, entries: make(map[string]string)}
	flatten("", tree, c.entries)
	return c, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(key, v, out)
		case string:
			out[key] = v
		case nil:
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}

func normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "_-."); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" {
		return DefaultLocale
	}
	return locale
}
