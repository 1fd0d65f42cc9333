package mysql

import (
	"context"
	"database/sql"
	"time"

	"inspectra_web/internal/domain"
)

// ---- blogs ----

func (r *Repo) CreateBlog(ctx context.Context, b domain.Blog) (int64, error) {
	var published any
	if !b.PublishedAt.IsZero() {
		published = b.PublishedAt
	}
	res, err := r.db.ExecContext(ctx, insertBlogSQL,
		b.Title, b.Content, b.Author, marshalJSON(b.Tags), b.CoverImage,
		marshalJSON(b.Images), b.PDFURL, b.IsActive, published,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateBlog(ctx context.Context, b domain.Blog) error {
	_, err := r.db.ExecContext(ctx, updateBlogSQL,
		b.Title, b.Content, b.Author, marshalJSON(b.Tags), b.CoverImage,
		marshalJSON(b.Images), b.PDFURL, b.IsActive, b.ID,
	)
	return err
}

func (r *Repo) DeleteBlog(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	return err
}

func scanBlog(row interface{ Scan(...any) error }) (domain.Blog, error) {
	var b domain.Blog
	var author, cover, pdf sql.NullString
	var tags, images []byte
	var published sql.NullTime
	if err := row.Scan(&b.ID, &b.Title, &b.Content, &author, &tags, &cover, &images, &pdf, &b.IsActive, &published); err != nil {
		if err == sql.ErrNoRows {
			return domain.Blog{}, domain.ErrNotFound
		}
		return domain.Blog{}, err
	}
	b.Author = author.String
	b.CoverImage = cover.String
	b.PDFURL = pdf.String
	b.Tags = unmarshalStrings(tags)
	b.Images = unmarshalStrings(images)
	if published.Valid {
		b.PublishedAt = published.Time
	}
	return b, nil
}

func (r *Repo) GetBlog(ctx context.Context, id int64) (domain.Blog, error) {
	return scanBlog(r.db.QueryRowContext(ctx, selectBlogCols+`WHERE id = ?`, id))
}

func (r *Repo) ListBlogs(ctx context.Context, limit, offset int) ([]domain.Blog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, selectBlogCols+`WHERE is_active = 1 ORDER BY published_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ---- careers ----

func (r *Repo) CreateCareer(ctx context.Context, c domain.Career) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertCareerSQL,
		c.Title, c.Description, c.Location, c.Department, c.IsActive, marshalJSON(c.Translations),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateCareer(ctx context.Context, c domain.Career) error {
	_, err := r.db.ExecContext(ctx, updateCareerSQL,
		c.Title, c.Description, c.Location, c.Department, c.IsActive, marshalJSON(c.Translations), c.ID,
	)
	return err
}

func (r *Repo) DeleteCareer(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM careers WHERE id = ?`, id)
	return err
}

func scanCareer(row interface{ Scan(...any) error }) (domain.Career, error) {
	var c domain.Career
	var desc, loc, dept sql.NullString
	var translations []byte
	var created time.Time
	if err := row.Scan(&c.ID, &c.Title, &desc, &loc, &dept, &c.IsActive, &translations, &created); err != nil {
		if err == sql.ErrNoRows {
			return domain.Career{}, domain.ErrNotFound
		}
		return domain.Career{}, err
	}
	c.Description = desc.String
	c.Location = loc.String
	c.Department = dept.String
	c.Translations = unmarshalTranslations(translations)
	c.CreatedAt = created
	return c, nil
}

func (r *Repo) GetCareer(ctx context.Context, id int64) (domain.Career, error) {
	return scanCareer(r.db.QueryRowContext(ctx, selectCareerCols+`WHERE id = ?`, id))
}

func (r *Repo) ListCareers(ctx context.Context, activeOnly bool) ([]domain.Career, error) {
	query := selectCareerCols + `ORDER BY created_at DESC, id DESC`
	if activeOnly {
		query = selectCareerCols + `WHERE is_active = 1 ORDER BY created_at DESC, id DESC`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Career
	for rows.Next() {
		c, err := scanCareer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) UpsertCareerTranslation(ctx context.Context, id int64, lang string, tr domain.TranslationFields) error {
	return r.upsertTranslation(ctx, "careers", id, lang, tr)
}

// ---- contact offices ----

func (r *Repo) CreateOffice(ctx context.Context, o domain.ContactOffice) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertOfficeSQL,
		o.Name, o.Country, o.City, o.Address, marshalJSON(o.Phones), marshalJSON(o.Emails),
		valF64(o.Lat), valF64(o.Lon),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateOffice(ctx context.Context, o domain.ContactOffice) error {
	_, err := r.db.ExecContext(ctx, updateOfficeSQL,
		o.Name, o.Country, o.City, o.Address, marshalJSON(o.Phones), marshalJSON(o.Emails),
		valF64(o.Lat), valF64(o.Lon), o.ID,
	)
	return err
}

func (r *Repo) DeleteOffice(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contact_offices WHERE id = ?`, id)
	return err
}

func scanOffice(row interface{ Scan(...any) error }) (domain.ContactOffice, error) {
	var o domain.ContactOffice
	var addr sql.NullString
	var phones, emails []byte
	var lat, lon sql.NullFloat64
	if err := row.Scan(&o.ID, &o.Name, &o.Country, &o.City, &addr, &phones, &emails, &lat, &lon); err != nil {
		if err == sql.ErrNoRows {
			return domain.ContactOffice{}, domain.ErrNotFound
		}
		return domain.ContactOffice{}, err
	}
	o.Address = addr.String
	o.Phones = unmarshalStrings(phones)
	o.Emails = unmarshalStrings(emails)
	if lat.Valid {
		v := lat.Float64
		o.Lat = &v
	}
	if lon.Valid {
		v := lon.Float64
		o.Lon = &v
	}
	return o, nil
}

func (r *Repo) GetOffice(ctx context.Context, id int64) (domain.ContactOffice, error) {
	return scanOffice(r.db.QueryRowContext(ctx, selectOfficeCols+`WHERE id = ?`, id))
}

func (r *Repo) ListOffices(ctx context.Context) ([]domain.ContactOffice, error) {
	rows, err := r.db.QueryContext(ctx, selectOfficeCols+`ORDER BY country, city, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.ContactOffice
	for rows.Next() {
		o, err := scanOffice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
