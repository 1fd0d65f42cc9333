package domain

// SourceLanguage is the language content is authored in. Resolution for it
// always returns native fields verbatim.
const SourceLanguage = "en"

// SupportedLanguages are the codes a translations map may carry.
var SupportedLanguages = []string{"en", "fr", "pt", "es", "ru", "zh"}

// dynamicLanguages are the targets the machine-translation path accepts.
// zh is persisted-only: it never triggers a provider call.
var dynamicLanguages = map[string]struct{}{
	"fr": {}, "pt": {}, "es": {}, "ru": {},
}

func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

func IsDynamic(lang string) bool {
	_, ok := dynamicLanguages[lang]
	return ok
}
