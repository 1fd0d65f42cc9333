package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"inspectra_web/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// JSON column helpers. Empty values are stored as NULL so per-field
// fallbacks read cleanly.

func marshalJSON(v any) any {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return nil
	}
	return string(b)
}

func unmarshalStrings(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	_ = json.Unmarshal(b, &out)
	return out
}

func unmarshalTranslations(b []byte) domain.TranslationMap {
	if len(b) == 0 {
		return nil
	}
	var out domain.TranslationMap
	_ = json.Unmarshal(b, &out)
	return out
}

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// ---- pages ----

func (r *Repo) CreatePage(ctx context.Context, p domain.Page) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertPageSQL,
		p.Title, p.Description, p.Slug, p.Language, p.PageNumber, p.IsActive,
		marshalJSON(p.Translations), marshalJSON(p.Metadata),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdatePage(ctx context.Context, p domain.Page) error {
	_, err := r.db.ExecContext(ctx, updatePageSQL,
		p.Title, p.Description, p.Language, p.PageNumber, p.IsActive,
		marshalJSON(p.Translations), marshalJSON(p.Metadata), p.ID,
	)
	return err
}

func (r *Repo) DeletePage(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM page_sections WHERE page_id = ?`, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	return err
}

func (r *Repo) scanPage(row interface{ Scan(...any) error }) (domain.Page, error) {
	var p domain.Page
	var desc, lang sql.NullString
	var translations, metadata []byte
	if err := row.Scan(&p.ID, &p.Title, &desc, &p.Slug, &lang, &p.PageNumber, &p.IsActive, &translations, &metadata); err != nil {
		if err == sql.ErrNoRows {
			return domain.Page{}, domain.ErrNotFound
		}
		return domain.Page{}, err
	}
	p.Description = desc.String
	p.Language = lang.String
	p.Translations = unmarshalTranslations(translations)
	if len(metadata) > 0 {
		_ = json.Unmarshal(metadata, &p.Metadata)
	}
	return p, nil
}

func (r *Repo) loadSectionIDs(ctx context.Context, pageID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, pageSectionIDsSQL, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repo) GetPageByID(ctx context.Context, id int64) (domain.Page, error) {
	p, err := r.scanPage(r.db.QueryRowContext(ctx, selectPageCols+`WHERE id = ?`, id))
	if err != nil {
		return domain.Page{}, err
	}
	p.SectionIDs, err = r.loadSectionIDs(ctx, p.ID)
	return p, err
}

func (r *Repo) GetPageBySlug(ctx context.Context, slug string) (domain.Page, error) {
	p, err := r.scanPage(r.db.QueryRowContext(ctx, selectPageCols+`WHERE slug = ?`, slug))
	if err != nil {
		return domain.Page{}, err
	}
	p.SectionIDs, err = r.loadSectionIDs(ctx, p.ID)
	return p, err
}

func (r *Repo) ListPages(ctx context.Context) ([]domain.Page, error) {
	return r.queryPages(ctx, selectPageCols+`ORDER BY page_number, id`)
}

func (r *Repo) SearchPages(ctx context.Context, name string) ([]domain.Page, error) {
	pattern := "%" + strings.ToLower(name) + "%"
	return r.queryPages(ctx, selectPageCols+`WHERE LOWER(title) LIKE ? ORDER BY page_number, id`, pattern)
}

func (r *Repo) queryPages(ctx context.Context, query string, args ...any) ([]domain.Page, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Page
	for rows.Next() {
		p, err := r.scanPage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].SectionIDs, err = r.loadSectionIDs(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repo) UpsertPageTranslation(ctx context.Context, id int64, lang string, tr domain.TranslationFields) error {
	return r.upsertTranslation(ctx, "pages", id, lang, tr)
}

func (r *Repo) AttachSection(ctx context.Context, pageID, sectionID int64) error {
	_, err := r.db.ExecContext(ctx, attachSectionSQL, pageID, sectionID, pageID)
	return err
}

func (r *Repo) DetachSection(ctx context.Context, pageID, sectionID int64) error {
	_, err := r.db.ExecContext(ctx, detachSectionSQL, pageID, sectionID)
	return err
}

// ---- sections ----

func (r *Repo) CreateSection(ctx context.Context, s domain.Section) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertSectionSQL,
		s.Title, s.BodyText, marshalJSON(s.Images), s.CoverPhoto, s.Language,
		s.PageNumber, s.SectionID, s.Page, s.IsActive, marshalJSON(s.Translations),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateSection(ctx context.Context, s domain.Section) error {
	_, err := r.db.ExecContext(ctx, updateSectionSQL,
		s.Title, s.BodyText, marshalJSON(s.Images), s.CoverPhoto, s.Language,
		s.PageNumber, s.SectionID, s.Page, s.IsActive, marshalJSON(s.Translations), s.ID,
	)
	return err
}

func (r *Repo) DeleteSection(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM page_sections WHERE section_id = ?`, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	return err
}

func scanSection(row interface{ Scan(...any) error }) (domain.Section, error) {
	var s domain.Section
	var body, cover, lang, slug, pageSlug sql.NullString
	var images, translations []byte
	if err := row.Scan(&s.ID, &s.Title, &body, &images, &cover, &lang, &s.PageNumber, &slug, &pageSlug, &s.IsActive, &translations); err != nil {
		if err == sql.ErrNoRows {
			return domain.Section{}, domain.ErrNotFound
		}
		return domain.Section{}, err
	}
	s.BodyText = body.String
	s.CoverPhoto = cover.String
	s.Language = lang.String
	s.SectionID = slug.String
	s.Page = pageSlug.String
	s.Images = unmarshalStrings(images)
	s.Translations = unmarshalTranslations(translations)
	return s, nil
}

func (r *Repo) GetSection(ctx context.Context, id int64) (domain.Section, error) {
	return scanSection(r.db.QueryRowContext(ctx, selectSectionCols+`WHERE id = ?`, id))
}

func (r *Repo) ListSections(ctx context.Context, q domain.SectionsQuery) ([]domain.Section, int, error) {
	where := []string{"is_active = 1"}
	var args []any
	if q.SectionID != nil {
		where = append(where, "section_slug = ?")
		args = append(args, *q.SectionID)
	}
	if q.PageNumber != nil {
		where = append(where, "page_number = ?")
		args = append(args, *q.PageNumber)
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sections`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	listArgs := append(append([]any{}, args...), limit, q.Offset)
	rows, err := r.db.QueryContext(ctx, selectSectionCols+cond+` ORDER BY page_number, id LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *Repo) SectionsByIDs(ctx context.Context, ids []int64) ([]domain.Section, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, selectSectionCols+`WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]domain.Section, len(ids))
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// preserve the page's section ordering
	out := make([]domain.Section, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *Repo) SearchSections(ctx context.Context, name string) ([]domain.Section, error) {
	pattern := "%" + strings.ToLower(name) + "%"
	rows, err := r.db.QueryContext(ctx, selectSectionCols+`WHERE LOWER(title) LIKE ? OR LOWER(section_slug) LIKE ? ORDER BY id`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) UpsertSectionTranslation(ctx context.Context, id int64, lang string, tr domain.TranslationFields) error {
	return r.upsertTranslation(ctx, "sections", id, lang, tr)
}

// upsertTranslation merges one language into a row's translations JSON under
// a row lock, so concurrent writers do not drop each other's languages.
func (r *Repo) upsertTranslation(ctx context.Context, table string, id int64, lang string, tr domain.TranslationFields) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw []byte
	err = tx.QueryRowContext(ctx, `SELECT translations FROM `+table+` WHERE id = ? FOR UPDATE`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s %d: %w", table, id, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}

	m := unmarshalTranslations(raw)
	if m == nil {
		m = domain.TranslationMap{}
	}
	m[lang] = tr

	if _, err := tx.ExecContext(ctx, `UPDATE `+table+` SET translations = ? WHERE id = ?`, marshalJSON(m), id); err != nil {
		return err
	}
	return tx.Commit()
}
