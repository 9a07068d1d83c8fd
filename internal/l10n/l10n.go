// internal/l10n/l10n.go
//
// Localized prompt strings.
//
// Responsibilities:
//   - Load YAML bundles (one per locale) from PROMPTS_DIR or fall back to the
//     embedded defaults in the assets package.
//   - Resolve a string by (locale, key) with locale fallback:
//     exact tag → language ("en-GB" → any "en-*") → default locale.
//   - Fail loudly on missing keys; a missing template is a configuration bug.
//
// Bundle file format:
//
//	locale: en-US
//	strings:
//	  greeting_1: "Welcome!"

package l10n

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/numbergenie/assets"
)

// ErrMissingKey is returned when no bundle in the fallback chain has a key.
var ErrMissingKey = errors.New("missing string")

// Bundle is the set of strings for one locale.
type Bundle struct {
	Locale  string            `yaml:"locale"`
	Strings map[string]string `yaml:"strings"`
}

// Catalog resolves localized strings. Safe for concurrent reads.
type Catalog struct {
	defaultLocale string
	bundles       map[string]Bundle // keyed by normalized tag
}

// New builds a catalog from in-memory bundles.
func New(defaultLocale string, bundles ...Bundle) *Catalog {
	c := &Catalog{defaultLocale: normalize(defaultLocale), bundles: make(map[string]Bundle, len(bundles))}
	for _, b := range bundles {
		c.bundles[normalize(b.Locale)] = b
	}
	return c
}

// Load reads bundles from dir, or from the embedded assets when dir is empty.
// The default locale must be present.
func Load(dir, defaultLocale string) (*Catalog, error) {
	var (
		raw map[string][]byte
		err error
	)
	if dir != "" {
		raw, err = assets.ReadBundles(os.DirFS(dir))
	} else {
		raw, err = assets.PromptBundles()
	}
	if err != nil {
		return nil, fmt.Errorf("read prompt bundles: %w", err)
	}

	bundles := make([]Bundle, 0, len(raw))
	for name, b := range raw {
		bundle, err := Parse(b)
		if err != nil {
			return nil, fmt.Errorf("parse bundle %s: %w", name, err)
		}
		if bundle.Locale == "" {
			bundle.Locale = name
		}
		bundles = append(bundles, bundle)
	}

	c := New(defaultLocale, bundles...)
	if _, ok := c.bundles[c.defaultLocale]; !ok {
		return nil, fmt.Errorf("no bundle for default locale %q", defaultLocale)
	}
	return c, nil
}

// Parse decodes one YAML bundle.
func Parse(b []byte) (Bundle, error) {
	var bundle Bundle
	if err := yaml.Unmarshal(b, &bundle); err != nil {
		return Bundle{}, err
	}
	if len(bundle.Strings) == 0 {
		return Bundle{}, errors.New("bundle has no strings")
	}
	return bundle, nil
}

// String returns the template for key in locale, following the fallback chain.
func (c *Catalog) String(locale, key string) (string, error) {
	for _, tag := range c.chain(locale) {
		if s, ok := c.bundles[tag].Strings[key]; ok {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (locale %q)", ErrMissingKey, key, locale)
}

// Locales lists loaded locale tags, sorted.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.bundles))
	for tag := range c.bundles {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Stats reports the number of strings per locale.
func (c *Catalog) Stats() map[string]int {
	out := make(map[string]int, len(c.bundles))
	for tag, b := range c.bundles {
		out[tag] = len(b.Strings)
	}
	return out
}

// chain returns the ordered candidate tags for locale. The default locale
// wins over siblings sharing its language.
func (c *Catalog) chain(locale string) []string {
	tag := normalize(locale)
	var out []string
	if _, ok := c.bundles[tag]; ok && tag != "" {
		out = append(out, tag)
	}
	if lang := language(tag); lang != "" {
		if _, ok := c.bundles[lang]; ok && lang != tag {
			out = append(out, lang)
		}
		if language(c.defaultLocale) == lang && c.defaultLocale != tag {
			out = append(out, c.defaultLocale)
		}
		for _, t := range c.Locales() {
			if t != tag && t != lang && t != c.defaultLocale && language(t) == lang {
				out = append(out, t)
			}
		}
	}
	return append(out, c.defaultLocale)
}

// normalize turns "en_us" / "EN-us" into "en-US".
func normalize(tag string) string {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return ""
	}
	parts := strings.Split(tag, "-")
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		if len(parts[i]) == 2 {
			parts[i] = strings.ToUpper(parts[i])
		}
	}
	return strings.Join(parts, "-")
}

func language(tag string) string {
	lang, _, _ := strings.Cut(tag, "-")
	return lang
}
