package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	cachead "inspectra_web/internal/adapters/cache"
	server "inspectra_web/internal/adapters/http_server"
	"inspectra_web/internal/adapters/observability"
	"inspectra_web/internal/adapters/translator"
	"inspectra_web/internal/app"
	"inspectra_web/internal/shared"
	mysqlrepo "inspectra_web/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := cachead.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	provider := translator.Select(cfg.TranslationProvider, cfg.GoogleAPIKey, cfg.DeepLAPIKey, cfg.ProviderRPS)
	log.Info().Str("provider", provider.Name()).Msg("translation provider selected")

	tr := app.NewTranslator(provider, cache, cfg.TranslationTTL)
	resolver := app.NewResolver(repo, tr, cache, app.ResolverConfig{
		DynamicSections: cfg.DynamicTranslateSections,
		DynamicPages:    cfg.DynamicTranslatePages,
		CacheTTL:        cfg.CacheTTL,
	})
	admin := app.NewAdmin(repo, repo, cache)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Resolver: resolver,
		Admin:    admin,
		Listings: repo,
		Content:  repo,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
