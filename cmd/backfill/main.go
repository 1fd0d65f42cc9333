package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	cachead "inspectra_web/internal/adapters/cache"
	"inspectra_web/internal/adapters/observability"
	"inspectra_web/internal/adapters/translator"
	"inspectra_web/internal/app"
	"inspectra_web/internal/domain"
	"inspectra_web/internal/shared"
	mysqlrepo "inspectra_web/internal/storage/mysql"
)

// backfill pre-populates persisted translation maps so serving traffic never
// pays the provider round-trip. It walks sections, pages and careers and fills
// every dynamic language that has no stored translation yet.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("provider", cfg.TranslationProvider).
		Int("workers", cfg.Workers).
		Msg("backfill starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := cachead.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	provider := translator.Select(cfg.TranslationProvider, cfg.GoogleAPIKey, cfg.DeepLAPIKey, cfg.ProviderRPS)
	tr := app.NewTranslator(provider, cache, cfg.TranslationTTL)

	langs := make([]string, 0, len(domain.SupportedLanguages))
	for _, l := range domain.SupportedLanguages {
		if domain.IsDynamic(l) {
			langs = append(langs, l)
		}
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	run := func(label string, id int64, fn func(context.Context) error) {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			if err := fn(ctx); err != nil {
				log.Warn().Str("entity", label).Int64("id", id).Err(err).Msg("backfill failed")
				return
			}
			log.Info().Str("entity", label).Int64("id", id).Msg("backfill ok")
		}()
	}

	for offset := 0; ; {
		sections, total, err := repo.ListSections(ctx, domain.SectionsQuery{Limit: 200, Offset: offset})
		if err != nil {
			log.Fatal().Err(err).Msg("list sections failed")
		}
		for _, s := range sections {
			s := s
			run("section", s.ID, func(ctx context.Context) error {
				return backfillSection(ctx, repo, tr, s, langs)
			})
		}
		offset += len(sections)
		if len(sections) == 0 || offset >= total {
			break
		}
	}

	pages, err := repo.ListPages(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list pages failed")
	}
	for _, p := range pages {
		p := p
		run("page", p.ID, func(ctx context.Context) error {
			return backfillPage(ctx, repo, tr, p, langs)
		})
	}

	careers, err := repo.ListCareers(ctx, false)
	if err != nil {
		log.Fatal().Err(err).Msg("list careers failed")
	}
	for _, c := range careers {
		c := c
		run("career", c.ID, func(ctx context.Context) error {
			return backfillCareer(ctx, repo, tr, c, langs)
		})
	}

	wg.Wait()
	log.Info().Msg("backfill completed")
}

func backfillSection(ctx context.Context, repo *mysqlrepo.Repo, tr *app.Translator, s domain.Section, langs []string) error {
	for _, lang := range langs {
		if t, ok := s.Translations[lang]; ok && !t.Empty() {
			continue
		}
		title, err := tr.TranslateText(ctx, s.Title, lang)
		if err != nil {
			return err
		}
		body, err := tr.TranslateText(ctx, s.BodyText, lang)
		if err != nil {
			return err
		}
		fields := domain.TranslationFields{Title: title, BodyText: body}
		if err := repo.UpsertSectionTranslation(ctx, s.ID, lang, fields); err != nil {
			return err
		}
	}
	return nil
}

func backfillPage(ctx context.Context, repo *mysqlrepo.Repo, tr *app.Translator, p domain.Page, langs []string) error {
	for _, lang := range langs {
		if t, ok := p.Translations[lang]; ok && !t.Empty() {
			continue
		}
		title, err := tr.TranslateText(ctx, p.Title, lang)
		if err != nil {
			return err
		}
		desc, err := tr.TranslateText(ctx, p.Description, lang)
		if err != nil {
			return err
		}
		fields := domain.TranslationFields{Title: title, Description: desc}
		if err := repo.UpsertPageTranslation(ctx, p.ID, lang, fields); err != nil {
			return err
		}
	}
	return nil
}

func backfillCareer(ctx context.Context, repo *mysqlrepo.Repo, tr *app.Translator, c domain.Career, langs []string) error {
	for _, lang := range langs {
		if t, ok := c.Translations[lang]; ok && !t.Empty() {
			continue
		}
		title, err := tr.TranslateText(ctx, c.Title, lang)
		if err != nil {
			return err
		}
		desc, err := tr.TranslateText(ctx, c.Description, lang)
		if err != nil {
			return err
		}
		fields := domain.TranslationFields{Title: title, Description: desc}
		if err := repo.UpsertCareerTranslation(ctx, c.ID, lang, fields); err != nil {
			return err
		}
	}
	return nil
}
