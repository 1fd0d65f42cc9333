//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"inspectra_web/internal/domain"
	mysqlrepo "inspectra_web/internal/storage/mysql"
)

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=inspectra",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "inspectra")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestRepo_MySQL_PagesAndSections(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Arrange: a page and two sections attached in order.
	pageID, err := repo.CreatePage(ctx, domain.Page{
		Title:       "Services",
		Description: "What we do",
		Slug:        "services",
		Language:    "en",
		PageNumber:  2,
		IsActive:    true,
		Metadata:    domain.PageMetadata{Keywords: []string{"testing", "inspection"}},
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	secA, err := repo.CreateSection(ctx, domain.Section{
		Title:      "Lab Services",
		BodyText:   "We test materials.",
		Images:     []string{"https://cdn.example.com/lab.jpg"},
		Language:   "en",
		PageNumber: 2,
		SectionID:  "lab-services",
		Page:       "services",
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("CreateSection A: %v", err)
	}
	secB, err := repo.CreateSection(ctx, domain.Section{
		Title:      "Calibration",
		BodyText:   "Instrument calibration.",
		Language:   "en",
		PageNumber: 2,
		SectionID:  "calibration",
		Page:       "services",
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("CreateSection B: %v", err)
	}

	if err := repo.AttachSection(ctx, pageID, secA); err != nil {
		t.Fatalf("AttachSection A: %v", err)
	}
	if err := repo.AttachSection(ctx, pageID, secB); err != nil {
		t.Fatalf("AttachSection B: %v", err)
	}

	// Slug lookup returns section ids in attachment order.
	p, err := repo.GetPageBySlug(ctx, "services")
	if err != nil {
		t.Fatalf("GetPageBySlug: %v", err)
	}
	if p.ID != pageID || len(p.SectionIDs) != 2 || p.SectionIDs[0] != secA || p.SectionIDs[1] != secB {
		t.Fatalf("unexpected page: %+v", p)
	}
	if len(p.Metadata.Keywords) != 2 {
		t.Fatalf("metadata did not round-trip: %+v", p.Metadata)
	}

	// SectionsByIDs preserves the requested order.
	secs, err := repo.SectionsByIDs(ctx, []int64{secB, secA})
	if err != nil {
		t.Fatalf("SectionsByIDs: %v", err)
	}
	if len(secs) != 2 || secs[0].ID != secB || secs[1].ID != secA {
		t.Fatalf("order not preserved: %+v", secs)
	}

	// Translation upsert merges per language without clobbering siblings.
	if err := repo.UpsertSectionTranslation(ctx, secA, "fr", domain.TranslationFields{Title: "Services de laboratoire"}); err != nil {
		t.Fatalf("UpsertSectionTranslation fr: %v", err)
	}
	if err := repo.UpsertSectionTranslation(ctx, secA, "es", domain.TranslationFields{Title: "Servicios de laboratorio"}); err != nil {
		t.Fatalf("UpsertSectionTranslation es: %v", err)
	}
	s, err := repo.GetSection(ctx, secA)
	if err != nil {
		t.Fatalf("GetSection: %v", err)
	}
	if s.Translations["fr"].Title != "Services de laboratoire" || s.Translations["es"].Title != "Servicios de laboratorio" {
		t.Fatalf("translations = %+v", s.Translations)
	}

	// List filter by section slug.
	slug := "calibration"
	items, total, err := repo.ListSections(ctx, domain.SectionsQuery{SectionID: &slug, Limit: 10})
	if err != nil {
		t.Fatalf("ListSections: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != secB {
		t.Fatalf("filtered list = %+v (total %d)", items, total)
	}

	// Detach drops the link but keeps the section row.
	if err := repo.DetachSection(ctx, pageID, secA); err != nil {
		t.Fatalf("DetachSection: %v", err)
	}
	p, err = repo.GetPageBySlug(ctx, "services")
	if err != nil {
		t.Fatalf("GetPageBySlug after detach: %v", err)
	}
	if len(p.SectionIDs) != 1 || p.SectionIDs[0] != secB {
		t.Fatalf("section ids after detach: %v", p.SectionIDs)
	}
	if _, err := repo.GetSection(ctx, secA); err != nil {
		t.Fatalf("section row should survive detach: %v", err)
	}
}

func TestRepo_MySQL_Listings(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	careerID, err := repo.CreateCareer(ctx, domain.Career{
		Title:       "QA Engineer",
		Description: "Run the lab.",
		Location:    "Lisbon",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("CreateCareer: %v", err)
	}
	if err := repo.UpsertCareerTranslation(ctx, careerID, "pt", domain.TranslationFields{Title: "Engenheiro de QA"}); err != nil {
		t.Fatalf("UpsertCareerTranslation: %v", err)
	}
	c, err := repo.GetCareer(ctx, careerID)
	if err != nil {
		t.Fatalf("GetCareer: %v", err)
	}
	if c.Translations["pt"].Title != "Engenheiro de QA" {
		t.Fatalf("career translations = %+v", c.Translations)
	}

	// inactive careers are hidden from the default listing
	if _, err := repo.CreateCareer(ctx, domain.Career{Title: "Archived role", IsActive: false}); err != nil {
		t.Fatalf("CreateCareer inactive: %v", err)
	}
	active, err := repo.ListCareers(ctx, true)
	if err != nil {
		t.Fatalf("ListCareers: %v", err)
	}
	if len(active) != 1 || active[0].ID != careerID {
		t.Fatalf("active careers = %+v", active)
	}

	lat, lon := 38.72, -9.14
	officeID, err := repo.CreateOffice(ctx, domain.ContactOffice{
		Name:    "Lisbon HQ",
		Country: "PT",
		City:    "Lisbon",
		Phones:  []string{"+351 210 000 000"},
		Emails:  []string{"lisbon@example.com"},
		Lat:     &lat,
		Lon:     &lon,
	})
	if err != nil {
		t.Fatalf("CreateOffice: %v", err)
	}
	o, err := repo.GetOffice(ctx, officeID)
	if err != nil {
		t.Fatalf("GetOffice: %v", err)
	}
	if o.Lat == nil || *o.Lat != lat || len(o.Phones) != 1 {
		t.Fatalf("office = %+v", o)
	}
}
