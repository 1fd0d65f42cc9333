package app

import (
	"context"
	"fmt"

	"inspectra_web/internal/domain"
)

// Admin is the write side: CRUD plus cache invalidation so stale resolved
// views never outlive a mutation.
type Admin struct {
	content  domain.ContentRepository
	listings domain.ListingRepository
	cache    domain.Cache
}

func NewAdmin(content domain.ContentRepository, listings domain.ListingRepository, cache domain.Cache) *Admin {
	return &Admin{content: content, listings: listings, cache: cache}
}

// A page mutation affects every language's resolved view.
func (a *Admin) invalidatePage(ctx context.Context, slug string) {
	if a.cache == nil || slug == "" {
		return
	}
	for _, l := range domain.SupportedLanguages {
		_ = a.cache.Del(ctx, pageCacheKey(slug, l))
	}
}

// Pages

func (a *Admin) CreatePage(ctx context.Context, p domain.Page) (domain.Page, error) {
	if _, err := a.content.GetPageBySlug(ctx, p.Slug); err == nil {
		return domain.Page{}, domain.ErrSlugTaken
	}
	id, err := a.content.CreatePage(ctx, p)
	if err != nil {
		return domain.Page{}, fmt.Errorf("create page: %w", err)
	}
	p.ID = id
	return p, nil
}

func (a *Admin) UpdatePage(ctx context.Context, p domain.Page) error {
	if err := a.content.UpdatePage(ctx, p); err != nil {
		return err
	}
	a.invalidatePage(ctx, p.Slug)
	return nil
}

func (a *Admin) DeletePage(ctx context.Context, id int64) error {
	p, err := a.content.GetPageByID(ctx, id)
	if err != nil {
		return err
	}
	if err := a.content.DeletePage(ctx, id); err != nil {
		return err
	}
	a.invalidatePage(ctx, p.Slug)
	return nil
}

func (a *Admin) AttachSection(ctx context.Context, pageID, sectionID int64) error {
	p, err := a.content.GetPageByID(ctx, pageID)
	if err != nil {
		return err
	}
	if _, err := a.content.GetSection(ctx, sectionID); err != nil {
		return err
	}
	if err := a.content.AttachSection(ctx, pageID, sectionID); err != nil {
		return err
	}
	a.invalidatePage(ctx, p.Slug)
	return nil
}

func (a *Admin) DetachSection(ctx context.Context, pageID, sectionID int64) error {
	p, err := a.content.GetPageByID(ctx, pageID)
	if err != nil {
		return err
	}
	if err := a.content.DetachSection(ctx, pageID, sectionID); err != nil {
		return err
	}
	a.invalidatePage(ctx, p.Slug)
	return nil
}

// Sections

func (a *Admin) CreateSection(ctx context.Context, s domain.Section) (domain.Section, error) {
	id, err := a.content.CreateSection(ctx, s)
	if err != nil {
		return domain.Section{}, fmt.Errorf("create section: %w", err)
	}
	s.ID = id
	a.invalidatePage(ctx, s.Page)
	return s, nil
}

func (a *Admin) UpdateSection(ctx context.Context, s domain.Section) error {
	prev, err := a.content.GetSection(ctx, s.ID)
	if err != nil {
		return err
	}
	if err := a.content.UpdateSection(ctx, s); err != nil {
		return err
	}
	a.invalidatePage(ctx, s.Page)
	if prev.Page != s.Page {
		a.invalidatePage(ctx, prev.Page)
	}
	return nil
}

func (a *Admin) DeleteSection(ctx context.Context, id int64) error {
	s, err := a.content.GetSection(ctx, id)
	if err != nil {
		return err
	}
	if err := a.content.DeleteSection(ctx, id); err != nil {
		return err
	}
	a.invalidatePage(ctx, s.Page)
	return nil
}

// Blogs

func (a *Admin) CreateBlog(ctx context.Context, b domain.Blog) (domain.Blog, error) {
	id, err := a.listings.CreateBlog(ctx, b)
	if err != nil {
		return domain.Blog{}, fmt.Errorf("create blog: %w", err)
	}
	b.ID = id
	return b, nil
}

func (a *Admin) UpdateBlog(ctx context.Context, b domain.Blog) error { return a.listings.UpdateBlog(ctx, b) }
func (a *Admin) DeleteBlog(ctx context.Context, id int64) error     { return a.listings.DeleteBlog(ctx, id) }

// Careers

func (a *Admin) CreateCareer(ctx context.Context, c domain.Career) (domain.Career, error) {
	id, err := a.listings.CreateCareer(ctx, c)
	if err != nil {
		return domain.Career{}, fmt.Errorf("create career: %w", err)
	}
	c.ID = id
	return c, nil
}

func (a *Admin) UpdateCareer(ctx context.Context, c domain.Career) error { return a.listings.UpdateCareer(ctx, c) }
func (a *Admin) DeleteCareer(ctx context.Context, id int64) error        { return a.listings.DeleteCareer(ctx, id) }

// Contact offices

func (a *Admin) CreateOffice(ctx context.Context, o domain.ContactOffice) (domain.ContactOffice, error) {
	id, err := a.listings.CreateOffice(ctx, o)
	if err != nil {
		return domain.ContactOffice{}, fmt.Errorf("create office: %w", err)
	}
	o.ID = id
	return o, nil
}

func (a *Admin) UpdateOffice(ctx context.Context, o domain.ContactOffice) error { return a.listings.UpdateOffice(ctx, o) }
func (a *Admin) DeleteOffice(ctx context.Context, id int64) error               { return a.listings.DeleteOffice(ctx, id) }
