package main

import (
	"context"
	"database/sql"
	"flag"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"inspectra_web/internal/adapters/observability"
	"inspectra_web/internal/domain"
	"inspectra_web/internal/shared"
	mysqlrepo "inspectra_web/internal/storage/mysql"
)

// maxEditDistance caps how far a drifted slug may be from a real one before
// we refuse to guess. Longer slugs tolerate proportionally more edits.
const maxEditDistance = 3

// reconcile repairs sections whose denormalized owning-page slug has drifted
// from every real page slug, usually after a manual rename. Each orphan is
// re-pointed at the nearest slug by edit distance, or reported if none is
// close enough.
func main() {
	dryRun := flag.Bool("dry-run", false, "report repairs without writing them")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repo := mysqlrepo.New(db)

	pages, err := repo.ListPages(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list pages failed")
	}
	slugs := make([]string, 0, len(pages))
	known := make(map[string]bool, len(pages))
	for _, p := range pages {
		slugs = append(slugs, p.Slug)
		known[p.Slug] = true
	}

	var scanned, repaired, unmatched int
	for offset := 0; ; {
		sections, total, err := repo.ListSections(ctx, domain.SectionsQuery{Limit: 200, Offset: offset})
		if err != nil {
			log.Fatal().Err(err).Msg("list sections failed")
		}
		for _, s := range sections {
			scanned++
			if s.Page == "" || known[s.Page] {
				continue
			}
			best, dist := closestSlug(s.Page, slugs)
			if best == "" || dist > maxEditDistance {
				unmatched++
				log.Warn().Int64("id", s.ID).Str("page", s.Page).Msg("no close page slug; leaving as is")
				continue
			}
			log.Info().Int64("id", s.ID).Str("from", s.Page).Str("to", best).Int("distance", dist).Msg("repairing section page slug")
			if *dryRun {
				repaired++
				continue
			}
			s.Page = best
			if err := repo.UpdateSection(ctx, s); err != nil {
				log.Error().Int64("id", s.ID).Err(err).Msg("update failed")
				continue
			}
			repaired++
		}
		offset += len(sections)
		if len(sections) == 0 || offset >= total {
			break
		}
	}

	log.Info().
		Int("scanned", scanned).
		Int("repaired", repaired).
		Int("unmatched", unmatched).
		Bool("dryRun", *dryRun).
		Msg("reconcile completed")
}

func closestSlug(drifted string, slugs []string) (string, int) {
	best, bestDist := "", -1
	for _, s := range slugs {
		d := levenshtein(drifted, s)
		if bestDist < 0 || d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, bestDist
}

// levenshtein is the classic two-row dynamic program over runes.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
