package translator

import (
	"github.com/rs/zerolog/log"

	"inspectra_web/internal/domain"
)

// Select picks the provider named by configuration, falls back to the other
// real backend when the preferred one has no credentials, and degrades to
// the tag-prefixing Mock when neither does.
func Select(name, googleKey, deeplKey string, rps int) domain.TranslationProvider {
	switch name {
	case "deepl":
		if deeplKey != "" {
			return NewDeepL("", deeplKey, rps)
		}
		if googleKey != "" {
			log.Warn().Msg("deepl selected but no key; using google")
			return NewGoogle("", googleKey, rps)
		}
	default:
		if googleKey != "" {
			return NewGoogle("", googleKey, rps)
		}
		if deeplKey != "" {
			log.Warn().Msg("google selected but no key; using deepl")
			return NewDeepL("", deeplKey, rps)
		}
	}
	log.Warn().Msg("no translation credentials; using mock translator")
	return Mock{}
}
