package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"inspectra_web/internal/app"
	"inspectra_web/internal/domain"
)

const maxMultipartMemory = 10 << 20

func (h *Handlers) mountListings(r chi.Router) {
	r.Get("/blogs", h.listBlogs)
	r.Post("/blogs", h.createBlog)
	r.Get("/blogs/{id}", h.getBlog)
	r.Put("/blogs/{id}", h.updateBlog)
	r.Delete("/blogs/{id}", h.deleteBlog)

	r.Get("/careers", h.listCareers)
	r.Post("/careers", h.createCareer)
	r.Get("/careers/{id}", h.getCareer)
	r.Put("/careers/{id}", h.updateCareer)
	r.Delete("/careers/{id}", h.deleteCareer)

	r.Get("/contact-offices", h.listOffices)
	r.Post("/contact-offices", h.createOffice)
	r.Get("/contact-offices/{id}", h.getOffice)
	r.Put("/contact-offices/{id}", h.updateOffice)
	r.Delete("/contact-offices/{id}", h.deleteOffice)
}

// ---- blogs ----

type blogPayload struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"coverImage"`
	Images      []string `json:"images"`
	PDFURL      string   `json:"pdfUrl"`
	IsActive    *bool    `json:"isActive"`
	PublishedAt string   `json:"publishedAt"`
}

func (p blogPayload) toDomain(id int64) domain.Blog {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	published := time.Now().UTC()
	if p.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, p.PublishedAt); err == nil {
			published = t
		}
	}
	return domain.Blog{
		ID:          id,
		Title:       p.Title,
		Content:     p.Content,
		Author:      p.Author,
		Tags:        p.Tags,
		CoverImage:  p.CoverImage,
		Images:      p.Images,
		PDFURL:      p.PDFURL,
		IsActive:    active,
		PublishedAt: published,
	}
}

// decodeBlog accepts either a JSON body or a multipart form. Multipart clients
// send media already uploaded elsewhere, as URL-valued fields.
func decodeBlog(r *http.Request) (blogPayload, error) {
	var p blogPayload
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return p, err
		}
		p.Title = r.FormValue("title")
		p.Content = r.FormValue("content")
		p.Author = r.FormValue("author")
		p.CoverImage = r.FormValue("coverImage")
		p.PDFURL = r.FormValue("pdfUrl")
		p.PublishedAt = r.FormValue("publishedAt")
		if v := r.FormValue("tags"); v != "" {
			p.Tags = splitCSV(v)
		}
		if vs := r.MultipartForm.Value["images"]; len(vs) > 0 {
			p.Images = vs
		}
		if v := r.FormValue("isActive"); v != "" {
			b := v == "true" || v == "1"
			p.IsActive = &b
		}
		return p, nil
	}
	err := json.NewDecoder(r.Body).Decode(&p)
	return p, err
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (h *Handlers) listBlogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	blogs, err := h.Listings.ListBlogs(r.Context(), limit, offset)
	if err != nil {
		writeFailure(w, "failed to list blogs", err)
		return
	}
	writeData(w, http.StatusOK, blogs)
}

func (h *Handlers) getBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	b, err := h.Listings.GetBlog(r.Context(), id)
	if err != nil {
		writeFailure(w, "blog not found", err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *Handlers) createBlog(w http.ResponseWriter, r *http.Request) {
	p, err := decodeBlog(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if p.Title == "" || p.Content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required", nil)
		return
	}
	b, err := h.Admin.CreateBlog(r.Context(), p.toDomain(0))
	if err != nil {
		writeFailure(w, "failed to create blog", err)
		return
	}
	writeData(w, http.StatusCreated, b)
}

func (h *Handlers) updateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	p, err := decodeBlog(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.Admin.UpdateBlog(r.Context(), p.toDomain(id)); err != nil {
		writeFailure(w, "failed to update blog", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handlers) deleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	if err := h.Admin.DeleteBlog(r.Context(), id); err != nil {
		writeFailure(w, "failed to delete blog", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

// ---- careers ----

type careerPayload struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Location     string                `json:"location"`
	Department   string                `json:"department"`
	IsActive     *bool                 `json:"isActive"`
	Translations domain.TranslationMap `json:"translations"`
}

func (p careerPayload) toDomain(id int64) domain.Career {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return domain.Career{
		ID:           id,
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		Department:   p.Department,
		IsActive:     active,
		Translations: p.Translations,
	}
}

func (h *Handlers) listCareers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") == ""
	careers, err := h.Listings.ListCareers(r.Context(), activeOnly)
	if err != nil {
		writeFailure(w, "failed to list careers", err)
		return
	}
	lang := selectLang(r)
	views := make([]domain.CareerView, 0, len(careers))
	for _, c := range careers {
		views = append(views, app.ResolveCareer(c, lang))
	}
	writeCached(w, r, envelope{Success: true, Data: views}, lang)
}

func (h *Handlers) getCareer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	c, err := h.Listings.GetCareer(r.Context(), id)
	if err != nil {
		writeFailure(w, "career not found", err)
		return
	}
	view := app.ResolveCareer(c, selectLang(r))
	writeCached(w, r, envelope{Success: true, Data: view}, view.Language)
}

func (h *Handlers) createCareer(w http.ResponseWriter, r *http.Request) {
	var p careerPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if p.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required", nil)
		return
	}
	c, err := h.Admin.CreateCareer(r.Context(), p.toDomain(0))
	if err != nil {
		writeFailure(w, "failed to create career", err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

func (h *Handlers) updateCareer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	var p careerPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := h.Admin.UpdateCareer(r.Context(), p.toDomain(id)); err != nil {
		writeFailure(w, "failed to update career", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handlers) deleteCareer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	if err := h.Admin.DeleteCareer(r.Context(), id); err != nil {
		writeFailure(w, "failed to delete career", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

// ---- contact offices ----

func (h *Handlers) listOffices(w http.ResponseWriter, r *http.Request) {
	offices, err := h.Listings.ListOffices(r.Context())
	if err != nil {
		writeFailure(w, "failed to list contact offices", err)
		return
	}
	writeCached(w, r, envelope{Success: true, Data: offices}, domain.SourceLanguage)
}

func (h *Handlers) getOffice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	o, err := h.Listings.GetOffice(r.Context(), id)
	if err != nil {
		writeFailure(w, "contact office not found", err)
		return
	}
	writeData(w, http.StatusOK, o)
}

func (h *Handlers) createOffice(w http.ResponseWriter, r *http.Request) {
	var o domain.ContactOffice
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if o.Name == "" || o.Country == "" {
		writeError(w, http.StatusBadRequest, "name and country are required", nil)
		return
	}
	o.ID = 0
	created, err := h.Admin.CreateOffice(r.Context(), o)
	if err != nil {
		writeFailure(w, "failed to create contact office", err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

func (h *Handlers) updateOffice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	var o domain.ContactOffice
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	o.ID = id
	if err := h.Admin.UpdateOffice(r.Context(), o); err != nil {
		writeFailure(w, "failed to update contact office", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handlers) deleteOffice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	if err := h.Admin.DeleteOffice(r.Context(), id); err != nil {
		writeFailure(w, "failed to delete contact office", err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}
