package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"inspectra_web/internal/domain"
)

// ---- fakes ----

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	gets  int
	sets  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, _ := json.Marshal(v)
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

type fakeProvider struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	return "[" + targetLang + "] " + text, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fakeContentRepo struct {
	mu       sync.Mutex
	pages    map[int64]domain.Page
	sections map[int64]domain.Section
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{pages: map[int64]domain.Page{}, sections: map[int64]domain.Section{}}
}

func (r *fakeContentRepo) CreatePage(ctx context.Context, p domain.Page) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = int64(len(r.pages) + 1)
	r.pages[p.ID] = p
	return p.ID, nil
}

func (r *fakeContentRepo) UpdatePage(ctx context.Context, p domain.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[p.ID] = p
	return nil
}

func (r *fakeContentRepo) DeletePage(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pages, id)
	return nil
}

func (r *fakeContentRepo) GetPageByID(ctx context.Context, id int64) (domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[id]
	if !ok {
		return domain.Page{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeContentRepo) GetPageBySlug(ctx context.Context, slug string) (domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Page{}, domain.ErrNotFound
}

func (r *fakeContentRepo) ListPages(ctx context.Context) ([]domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Page, 0, len(r.pages))
	for _, p := range r.pages {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeContentRepo) SearchPages(ctx context.Context, name string) ([]domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Page
	for _, p := range r.pages {
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(name)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) UpsertPageTranslation(ctx context.Context, id int64, lang string, tr domain.TranslationFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Translations == nil {
		p.Translations = domain.TranslationMap{}
	}
	p.Translations[lang] = tr
	r.pages[id] = p
	return nil
}

func (r *fakeContentRepo) AttachSection(ctx context.Context, pageID, sectionID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pages[pageID]
	p.SectionIDs = append(p.SectionIDs, sectionID)
	r.pages[pageID] = p
	return nil
}

func (r *fakeContentRepo) DetachSection(ctx context.Context, pageID, sectionID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pages[pageID]
	var ids []int64
	for _, id := range p.SectionIDs {
		if id != sectionID {
			ids = append(ids, id)
		}
	}
	p.SectionIDs = ids
	r.pages[pageID] = p
	return nil
}

func (r *fakeContentRepo) CreateSection(ctx context.Context, s domain.Section) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = int64(len(r.sections) + 1)
	r.sections[s.ID] = s
	return s.ID, nil
}

func (r *fakeContentRepo) UpdateSection(ctx context.Context, s domain.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sections[s.ID] = s
	return nil
}

func (r *fakeContentRepo) DeleteSection(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sections, id)
	return nil
}

func (r *fakeContentRepo) GetSection(ctx context.Context, id int64) (domain.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sections[id]
	if !ok {
		return domain.Section{}, domain.ErrNotFound
	}
	return s, nil
}

func (r *fakeContentRepo) ListSections(ctx context.Context, q domain.SectionsQuery) ([]domain.Section, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Section
	for _, s := range r.sections {
		if q.SectionID != nil && s.SectionID != *q.SectionID {
			continue
		}
		if q.PageNumber != nil && s.PageNumber != *q.PageNumber {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *fakeContentRepo) SectionsByIDs(ctx context.Context, ids []int64) ([]domain.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Section
	for _, id := range ids {
		if s, ok := r.sections[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) SearchSections(ctx context.Context, name string) ([]domain.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Section
	for _, s := range r.sections {
		if strings.Contains(strings.ToLower(s.Title), strings.ToLower(name)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) UpsertSectionTranslation(ctx context.Context, id int64, lang string, tr domain.TranslationFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sections[id]
	if !ok {
		return fmt.Errorf("section %d: %w", id, domain.ErrNotFound)
	}
	if s.Translations == nil {
		s.Translations = domain.TranslationMap{}
	}
	s.Translations[lang] = tr
	r.sections[id] = s
	return nil
}
