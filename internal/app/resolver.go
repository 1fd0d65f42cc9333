package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"inspectra_web/internal/domain"
)

// ResolverConfig makes the dynamic-translation policy explicit per entity
// type. The default asymmetry (sections on, pages off) is deliberate cost
// control: pages resolve from pre-populated maps only.
type ResolverConfig struct {
	DynamicSections bool
	DynamicPages    bool
	CacheTTL        time.Duration
}

// Resolver turns (entity, language) pairs into localized views using the
// three-tier fallback: persisted translation, dynamic machine translation
// (sections), source language.
type Resolver struct {
	content domain.ContentRepository
	tr      *Translator
	cache   domain.Cache
	cfg     ResolverConfig
	sf      singleflight.Group // de-duplicates concurrent dynamic resolutions per (section, lang)
}

func NewResolver(repo domain.ContentRepository, tr *Translator, cache domain.Cache, cfg ResolverConfig) *Resolver {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &Resolver{content: repo, tr: tr, cache: cache, cfg: cfg}
}

func pageCacheKey(slug, lang string) string { return fmt.Sprintf("page:%s:%s", slug, lang) }

func nativeSectionView(s domain.Section) domain.SectionView {
	return domain.SectionView{
		ID:         s.ID,
		Title:      s.Title,
		BodyText:   s.BodyText,
		Images:     s.Images,
		CoverPhoto: s.CoverPhoto,
		SectionID:  s.SectionID,
		Page:       s.Page,
		PageNumber: s.PageNumber,
		Language:   domain.SourceLanguage,
	}
}

// ResolveSection localizes one section. The only error source is the
// dynamic-translation path; every other branch degrades to source language
// silently.
func (r *Resolver) ResolveSection(ctx context.Context, s domain.Section, lang string) (domain.SectionView, error) {
	view := nativeSectionView(s)
	if lang == domain.SourceLanguage || !domain.IsSupported(lang) {
		return view, nil
	}

	if tr, ok := s.Translations[lang]; ok && !tr.Empty() {
		// persisted translation, per-field fallback to native
		if tr.Title != "" {
			view.Title = tr.Title
		}
		if tr.BodyText != "" {
			view.BodyText = tr.BodyText
		}
		view.Language = lang
		return view, nil
	}

	if !r.cfg.DynamicSections || !domain.IsDynamic(lang) {
		return view, nil
	}

	// Write-through: translate, persist into the section's map, return.
	// Concurrent requests for the same (section, lang) share one flight,
	// so only one provider round-trip and one persisted write happen.
	key := fmt.Sprintf("section:%d:%s", s.ID, lang)
	v, err, _ := r.sf.Do(key, func() (any, error) {
		title, err := r.tr.TranslateText(ctx, s.Title, lang)
		if err != nil {
			return nil, err
		}
		body, err := r.tr.TranslateText(ctx, s.BodyText, lang)
		if err != nil {
			return nil, err
		}
		tr := domain.TranslationFields{Title: title, BodyText: body}
		if err := r.content.UpsertSectionTranslation(ctx, s.ID, lang, tr); err != nil {
			// translation still usable; persistence failure only costs a
			// provider call on the next request
			log.Warn().Err(err).Int64("section", s.ID).Str("lang", lang).Msg("persist translation failed")
		}
		return tr, nil
	})
	if err != nil {
		return domain.SectionView{}, err
	}
	tr := v.(domain.TranslationFields)
	if tr.Title != "" {
		view.Title = tr.Title
	}
	if tr.BodyText != "" {
		view.BodyText = tr.BodyText
	}
	view.Language = lang
	return view, nil
}

// resolveSectionOrNative is the list-path variant: a provider failure on one
// item degrades that item to source language instead of failing the list.
func (r *Resolver) resolveSectionOrNative(ctx context.Context, s domain.Section, lang string) domain.SectionView {
	view, err := r.ResolveSection(ctx, s, lang)
	if err != nil {
		log.Warn().Err(err).Int64("section", s.ID).Str("lang", lang).Msg("dynamic translation failed; serving source language")
		return nativeSectionView(s)
	}
	return view
}

func (r *Resolver) ListSections(ctx context.Context, q domain.SectionsQuery) (domain.SectionsPage, error) {
	items, total, err := r.content.ListSections(ctx, q)
	if err != nil {
		return domain.SectionsPage{}, err
	}
	out := domain.SectionsPage{Items: make([]domain.SectionView, 0, len(items)), Total: total}
	for _, s := range items {
		out.Items = append(out.Items, r.resolveSectionOrNative(ctx, s, q.Lang))
	}
	return out, nil
}

// TranslateSection resolves one section by id, persisting any dynamic
// result. Unlike the list path, provider failures propagate to the handler.
func (r *Resolver) TranslateSection(ctx context.Context, id int64, lang string) (domain.SectionView, error) {
	s, err := r.content.GetSection(ctx, id)
	if err != nil {
		return domain.SectionView{}, err
	}
	return r.ResolveSection(ctx, s, lang)
}

// resolvePageFields localizes the page's own translatable fields. Pages have
// no dynamic path unless explicitly enabled; missing translations degrade to
// native content unchanged.
func (r *Resolver) resolvePageFields(ctx context.Context, p domain.Page, lang string) (title, desc, outLang string) {
	title, desc, outLang = p.Title, p.Description, domain.SourceLanguage
	if lang == domain.SourceLanguage || !domain.IsSupported(lang) {
		return
	}
	if tr, ok := p.Translations[lang]; ok && !tr.Empty() {
		if tr.Title != "" {
			title = tr.Title
		}
		if tr.Description != "" {
			desc = tr.Description
		}
		outLang = lang
		return
	}
	if r.cfg.DynamicPages && domain.IsDynamic(lang) {
		t, err1 := r.tr.TranslateText(ctx, p.Title, lang)
		d, err2 := r.tr.TranslateText(ctx, p.Description, lang)
		if err1 == nil && err2 == nil {
			tr := domain.TranslationFields{Title: t, Description: d}
			if err := r.content.UpsertPageTranslation(ctx, p.ID, lang, tr); err != nil {
				log.Warn().Err(err).Int64("page", p.ID).Str("lang", lang).Msg("persist page translation failed")
			}
			return t, d, lang
		}
		log.Warn().Str("lang", lang).Int64("page", p.ID).Msg("page dynamic translation failed; serving source language")
	}
	return
}

// ResolvePageBySlug returns the page with its populated sections, each
// resolved independently; a partially translated page is a valid result.
// The lang is canonicalized before keying the cache: an unsupported code
// shares the source-language entry, so invalidation over the supported set
// covers every key this method can write and clients cannot mint keys.
func (r *Resolver) ResolvePageBySlug(ctx context.Context, slug, lang string) (domain.PageView, error) {
	if !domain.IsSupported(lang) {
		lang = domain.SourceLanguage
	}
	key := pageCacheKey(slug, lang)
	var cached domain.PageView
	if ok, _ := r.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	p, err := r.content.GetPageBySlug(ctx, slug)
	if err != nil {
		return domain.PageView{}, err
	}
	sections, err := r.content.SectionsByIDs(ctx, p.SectionIDs)
	if err != nil {
		return domain.PageView{}, err
	}

	title, desc, pageLang := r.resolvePageFields(ctx, p, lang)
	view := domain.PageView{
		ID:          p.ID,
		Title:       title,
		Description: desc,
		Slug:        p.Slug,
		PageNumber:  p.PageNumber,
		Language:    pageLang,
		Metadata:    p.Metadata,
		Sections:    make([]domain.SectionView, 0, len(sections)),
	}
	for _, s := range sections {
		view.Sections = append(view.Sections, r.resolveSectionOrNative(ctx, s, lang))
	}

	_ = r.cache.Set(ctx, key, view, int(r.cfg.CacheTTL.Seconds()))
	return view, nil
}

// ListPages returns every page localized for lang, without populated
// sections. List views are not cached; only slug resolution is.
func (r *Resolver) ListPages(ctx context.Context, lang string) ([]domain.PageView, error) {
	if !domain.IsSupported(lang) {
		lang = domain.SourceLanguage
	}
	pages, err := r.content.ListPages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PageView, 0, len(pages))
	for _, p := range pages {
		title, desc, pageLang := r.resolvePageFields(ctx, p, lang)
		out = append(out, domain.PageView{
			ID:          p.ID,
			Title:       title,
			Description: desc,
			Slug:        p.Slug,
			PageNumber:  p.PageNumber,
			Language:    pageLang,
			Metadata:    p.Metadata,
		})
	}
	return out, nil
}

// SearchPage is the fuzzy page+section lookup: substring match on the page
// name, optional substring filter on its section titles. Results are source
// language; the caller re-requests by slug for localized content.
func (r *Resolver) SearchPage(ctx context.Context, pageName, sectionName string) (domain.PageView, error) {
	pages, err := r.content.SearchPages(ctx, pageName)
	if err != nil {
		return domain.PageView{}, err
	}
	if len(pages) == 0 {
		return domain.PageView{}, domain.ErrNotFound
	}
	p := pages[0]
	sections, err := r.content.SectionsByIDs(ctx, p.SectionIDs)
	if err != nil {
		return domain.PageView{}, err
	}
	view := domain.PageView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Slug:        p.Slug,
		PageNumber:  p.PageNumber,
		Language:    domain.SourceLanguage,
		Metadata:    p.Metadata,
	}
	for _, s := range sections {
		if sectionName != "" && !containsFold(s.Title, sectionName) && !containsFold(s.SectionID, sectionName) {
			continue
		}
		view.Sections = append(view.Sections, nativeSectionView(s))
	}
	return view, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ResolveCareer localizes a career from its persisted map only; there is no
// dynamic path for careers.
func ResolveCareer(c domain.Career, lang string) domain.CareerView {
	view := domain.CareerView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Location:    c.Location,
		Department:  c.Department,
		Language:    domain.SourceLanguage,
	}
	if lang == domain.SourceLanguage || !domain.IsSupported(lang) {
		return view
	}
	if tr, ok := c.Translations[lang]; ok && !tr.Empty() {
		if tr.Title != "" {
			view.Title = tr.Title
		}
		if tr.Description != "" {
			view.Description = tr.Description
		}
		view.Language = lang
	}
	return view
}
