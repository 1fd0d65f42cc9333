package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"inspectra_web/internal/app"
	"inspectra_web/internal/domain"
	"inspectra_web/internal/static"
)

type Handlers struct {
	Resolver *app.Resolver
	Admin    *app.Admin
	Listings domain.ListingRepository
	Content  domain.ContentRepository
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/sections", h.listSections)
		r.Post("/sections", h.createSection)
		r.Get("/sections/{id}", h.getSection)
		r.Put("/sections/{id}", h.updateSection)
		r.Delete("/sections/{id}", h.deleteSection)

		r.Get("/pages", h.listPages)
		r.Post("/pages", h.createPage)
		r.Get("/pages/slug/{slug}", h.getPageBySlug)
		r.Get("/pages/search/{pageName}", h.searchPage)
		r.Get("/pages/search/{pageName}/{sectionName}", h.searchPage)
		r.Put("/pages/{id}", h.updatePage)
		r.Delete("/pages/{id}", h.deletePage)
		r.Post("/pages/{id}/sections/{sectionID}", h.attachSection)
		r.Delete("/pages/{id}/sections/{sectionID}", h.detachSection)

		r.Get("/translate/static/{lang}", h.staticBundle)
		r.Get("/translate/{id}", h.translateSection)

		h.mountListings(r)
	})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// ---- sections ----

type sectionPayload struct {
	Title        string                `json:"title"`
	BodyText     string                `json:"bodyText"`
	Images       []string              `json:"images"`
	CoverPhoto   string                `json:"coverPhoto"`
	Language     string                `json:"language"`
	PageNumber   int                   `json:"pageNumber"`
	SectionID    string                `json:"sectionId"`
	Page         string                `json:"page"`
	IsActive     *bool                 `json:"isActive"`
	Translations domain.TranslationMap `json:"translations"`
}

func (p sectionPayload) toDomain(id int64) domain.Section {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	lang := p.Language
	if lang == "" {
		lang = domain.SourceLanguage
	}
	return domain.Section{
		ID:           id,
		Title:        p.Title,
		BodyText:     p.BodyText,
		Images:       p.Images,
		CoverPhoto:   p.CoverPhoto,
		Language:     lang,
		PageNumber:   p.PageNumber,
		SectionID:    p.SectionID,
		Page:         p.Page,
		IsActive:     active,
		Translations: p.Translations,
	}
}

func (h *Handlers) listSections(w http.ResponseWriter, r *http.Request) {
	q := domain.SectionsQuery{Lang: selectLang(r)}
	if v := r.URL.Query().Get("sectionId"); v != "" {
		q.SectionID = &v
	}
	if v := r.URL.Query().Get("pageNumber"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "pageNumber must be an integer", err)
			return
		}
		q.PageNumber = &n
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			q.Offset = n
		}
	}

	out, err := h.Resolver.ListSections(r.Context(), q)
	if err != nil {
		writeFailure(w, "failed to list sections", err)
		return
	}
	writeCached(w, r, envelope{Success: true, Data: out}, q.Lang)
}

func (h *Handlers) getSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	s, err := h.Content.GetSection(r.Context(), id)
	if err != nil {
		writeFailure(w, "section not found", err)
		return
	}
	view, err := h.Resolver.ResolveSection(r.Context(), s, selectLang(r))
	if err != nil {
		writeFailure(w, "translation failed", err)
		return
	}
	writeCached(w, r, envelope{Success: true, Data: view}, view.Language)
}

func (h *Handlers) createSection(w http.ResponseWriter, r *http.Request) {
	var p sectionPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if p.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required", nil)
		return
	}
	s, err := h.Admin.CreateSection(r.Context(), p.toDomain(0))
	if err != nil {
		writeFailure(w, "failed to create section", err)
		return
	}
	writeData(w, http.StatusCreated, s)
}

func (h *Handlers) updateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	var p sectionPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := h.Admin.UpdateSection(r.Context(), p.toDomain(id)); err != nil {
		writeFailure(w, "failed to update section", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handlers) deleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	if err := h.Admin.DeleteSection(r.Context(), id); err != nil {
		writeFailure(w, "failed to delete section", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

// ---- pages ----

type pagePayload struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Slug         string                `json:"slug"`
	Language     string                `json:"language"`
	PageNumber   int                   `json:"pageNumber"`
	IsActive     *bool                 `json:"isActive"`
	SectionIDs   []int64               `json:"sections"`
	Translations domain.TranslationMap `json:"translations"`
	Metadata     domain.PageMetadata   `json:"metadata"`
}

func (p pagePayload) toDomain(id int64) domain.Page {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	lang := p.Language
	if lang == "" {
		lang = domain.SourceLanguage
	}
	return domain.Page{
		ID:           id,
		Title:        p.Title,
		Description:  p.Description,
		Slug:         p.Slug,
		Language:     lang,
		PageNumber:   p.PageNumber,
		IsActive:     active,
		SectionIDs:   p.SectionIDs,
		Translations: p.Translations,
		Metadata:     p.Metadata,
	}
}

func (h *Handlers) listPages(w http.ResponseWriter, r *http.Request) {
	lang := selectLang(r)
	if !domain.IsSupported(lang) {
		lang = domain.SourceLanguage
	}
	views, err := h.Resolver.ListPages(r.Context(), lang)
	if err != nil {
		writeFailure(w, "failed to list pages", err)
		return
	}
	writeCached(w, r, envelope{Success: true, Data: views}, lang)
}

func (h *Handlers) getPageBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	lang := selectLang(r)
	view, err := h.Resolver.ResolvePageBySlug(r.Context(), slug, lang)
	if err != nil {
		writeFailure(w, "page not found", err)
		return
	}
	writeCached(w, r, envelope{Success: true, Data: view}, view.Language)
}

func (h *Handlers) searchPage(w http.ResponseWriter, r *http.Request) {
	pageName := chi.URLParam(r, "pageName")
	sectionName := chi.URLParam(r, "sectionName")
	view, err := h.Resolver.SearchPage(r.Context(), pageName, sectionName)
	if err != nil {
		writeFailure(w, "no matching page", err)
		return
	}
	writeData(w, http.StatusOK, view)
}

func (h *Handlers) createPage(w http.ResponseWriter, r *http.Request) {
	var p pagePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if p.Title == "" || p.Slug == "" {
		writeError(w, http.StatusBadRequest, "title and slug are required", nil)
		return
	}
	page, err := h.Admin.CreatePage(r.Context(), p.toDomain(0))
	if err != nil {
		writeFailure(w, "failed to create page", err)
		return
	}
	writeData(w, http.StatusCreated, page)
}

func (h *Handlers) updatePage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	var p pagePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	// the persisted slug wins; it is the immutable identity
	existing, err := h.Content.GetPageByID(r.Context(), id)
	if err != nil {
		writeFailure(w, "page not found", err)
		return
	}
	page := p.toDomain(id)
	page.Slug = existing.Slug
	if err := h.Admin.UpdatePage(r.Context(), page); err != nil {
		writeFailure(w, "failed to update page", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handlers) deletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	if err := h.Admin.DeletePage(r.Context(), id); err != nil {
		writeFailure(w, "failed to delete page", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handlers) attachSection(w http.ResponseWriter, r *http.Request) {
	pageID, ok1 := pathID(r, "id")
	sectionID, ok2 := pathID(r, "sectionID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "ids must be positive integers", nil)
		return
	}
	if err := h.Admin.AttachSection(r.Context(), pageID, sectionID); err != nil {
		writeFailure(w, "failed to attach section", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"pageId": pageID, "sectionId": sectionID})
}

func (h *Handlers) detachSection(w http.ResponseWriter, r *http.Request) {
	pageID, ok1 := pathID(r, "id")
	sectionID, ok2 := pathID(r, "sectionID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "ids must be positive integers", nil)
		return
	}
	if err := h.Admin.DetachSection(r.Context(), pageID, sectionID); err != nil {
		writeFailure(w, "failed to detach section", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"pageId": pageID, "sectionId": sectionID})
}

// ---- translation routes ----

// translateSection persists any dynamic result; this is the one route where
// a provider failure surfaces to the client instead of degrading.
func (h *Handlers) translateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	view, err := h.Resolver.TranslateSection(r.Context(), id, selectLang(r))
	if err != nil {
		writeFailure(w, "translation failed", err)
		return
	}
	writeData(w, http.StatusOK, view)
}

func (h *Handlers) staticBundle(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	b, ok := static.Bundle(lang)
	if !ok {
		writeError(w, http.StatusNotFound, "no bundle for language", nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Language", lang)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
