// Package static serves the compile-time translation bundles used by the
// frontend for chrome strings (navigation, buttons, form labels). Content
// entities resolve through the translation pipeline instead.
package static

import (
	"embed"
)

//go:embed locales/*.json
var locales embed.FS

// Bundle returns the raw JSON bundle for a language, or false when no
// bundle ships for it.
func Bundle(lang string) ([]byte, bool) {
	b, err := locales.ReadFile("locales/" + lang + ".json")
	if err != nil {
		return nil, false
	}
	return b, true
}
