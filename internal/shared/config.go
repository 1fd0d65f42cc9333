package shared

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"prod"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`
	MySQLDSN    string `envconfig:"MYSQL_DSN" default:"root:root@tcp(localhost:3306)/inspectra?parseTime=true&charset=utf8mb4,utf8&loc=UTC"`

	// Empty RedisAddr runs the cache on the in-memory tier only.
	RedisAddr string `envconfig:"REDIS_ADDR" default:""`
	RedisPass string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	// TranslationProvider selects the machine-translation backend:
	// "google" or "deepl". With no API key for the selected backend the
	// tag-prefixing mock is used instead.
	TranslationProvider string `envconfig:"TRANSLATION_PROVIDER" default:"google"`
	GoogleAPIKey        string `envconfig:"GOOGLE_TRANSLATE_API_KEY" default:""`
	DeepLAPIKey         string `envconfig:"DEEPL_API_KEY" default:""`
	ProviderRPS         int    `envconfig:"TRANSLATION_RPS" default:"5"`

	CacheTTL       time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	TranslationTTL time.Duration `envconfig:"TRANSLATION_TTL" default:"24h"`

	// The page/section asymmetry is deliberate cost control; it is surfaced
	// here instead of being buried in resolution code.
	DynamicTranslateSections bool `envconfig:"DYNAMIC_TRANSLATE_SECTIONS" default:"true"`
	DynamicTranslatePages    bool `envconfig:"DYNAMIC_TRANSLATE_PAGES" default:"false"`

	Workers int `envconfig:"BACKFILL_WORKERS" default:"8"`
}

func Load() Config {
	// Best effort: a missing .env file is the normal production case.
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		log.Fatal().Err(err).Msg("config parse failed")
	}
	if (c.TranslationProvider == "google" && c.GoogleAPIKey == "") ||
		(c.TranslationProvider == "deepl" && c.DeepLAPIKey == "") {
		log.Warn().Str("provider", c.TranslationProvider).Msg("no API key for selected translation provider; mock translator will be used")
	}
	return c
}
