package domain

import "context"

type ContentRepository interface {
	// Pages
	CreatePage(ctx context.Context, p Page) (int64, error)
	UpdatePage(ctx context.Context, p Page) error
	DeletePage(ctx context.Context, id int64) error
	GetPageByID(ctx context.Context, id int64) (Page, error)
	GetPageBySlug(ctx context.Context, slug string) (Page, error)
	ListPages(ctx context.Context) ([]Page, error)
	SearchPages(ctx context.Context, name string) ([]Page, error)
	UpsertPageTranslation(ctx context.Context, id int64, lang string, tr TranslationFields) error
	AttachSection(ctx context.Context, pageID, sectionID int64) error
	DetachSection(ctx context.Context, pageID, sectionID int64) error

	// Sections
	CreateSection(ctx context.Context, s Section) (int64, error)
	UpdateSection(ctx context.Context, s Section) error
	DeleteSection(ctx context.Context, id int64) error
	GetSection(ctx context.Context, id int64) (Section, error)
	ListSections(ctx context.Context, q SectionsQuery) ([]Section, int, error)
	SectionsByIDs(ctx context.Context, ids []int64) ([]Section, error)
	SearchSections(ctx context.Context, name string) ([]Section, error)
	UpsertSectionTranslation(ctx context.Context, id int64, lang string, tr TranslationFields) error
}

type ListingRepository interface {
	// Blogs
	CreateBlog(ctx context.Context, b Blog) (int64, error)
	UpdateBlog(ctx context.Context, b Blog) error
	DeleteBlog(ctx context.Context, id int64) error
	GetBlog(ctx context.Context, id int64) (Blog, error)
	ListBlogs(ctx context.Context, limit, offset int) ([]Blog, error)

	// Careers
	CreateCareer(ctx context.Context, c Career) (int64, error)
	UpdateCareer(ctx context.Context, c Career) error
	DeleteCareer(ctx context.Context, id int64) error
	GetCareer(ctx context.Context, id int64) (Career, error)
	ListCareers(ctx context.Context, activeOnly bool) ([]Career, error)
	UpsertCareerTranslation(ctx context.Context, id int64, lang string, tr TranslationFields) error

	// Contact offices
	CreateOffice(ctx context.Context, o ContactOffice) (int64, error)
	UpdateOffice(ctx context.Context, o ContactOffice) error
	DeleteOffice(ctx context.Context, id int64) error
	GetOffice(ctx context.Context, id int64) (ContactOffice, error)
	ListOffices(ctx context.Context) ([]ContactOffice, error)
}

// Cache is a two-tier key/value store. Implementations must never surface
// primary-tier failures to callers; a failed tier is simply absent for that
// operation.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// TranslationProvider translates a single string into the target language.
// A non-2xx upstream response is returned as an error; there is no retry.
type TranslationProvider interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
	Name() string
}
