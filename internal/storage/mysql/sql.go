package mysql

const insertPageSQL = `
INSERT INTO pages
  (title, description, slug, language, page_number, is_active, translations, metadata)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

// Slug is the immutable retrieval identity; it is deliberately absent from
// the UPDATE column list.
const updatePageSQL = `
UPDATE pages SET
  title       = ?,
  description = ?,
  language    = ?,
  page_number = ?,
  is_active   = ?,
  translations = ?,
  metadata    = ?,
  updated_at  = CURRENT_TIMESTAMP
WHERE id = ?
`

const selectPageCols = `
SELECT id, title, description, slug, language, page_number, is_active, translations, metadata
FROM pages
`

const pageSectionIDsSQL = `
SELECT section_id FROM page_sections WHERE page_id = ? ORDER BY position, section_id
`

const attachSectionSQL = `
INSERT INTO page_sections (page_id, section_id, position)
SELECT ?, ?, COALESCE(MAX(position), 0) + 1 FROM page_sections WHERE page_id = ?
ON DUPLICATE KEY UPDATE position = page_sections.position
`

const detachSectionSQL = `
DELETE FROM page_sections WHERE page_id = ? AND section_id = ?
`

const insertSectionSQL = `
INSERT INTO sections
  (title, body_text, images, cover_photo, language, page_number, section_slug, page_slug, is_active, translations)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateSectionSQL = `
UPDATE sections SET
  title        = ?,
  body_text    = ?,
  images       = ?,
  cover_photo  = ?,
  language     = ?,
  page_number  = ?,
  section_slug = ?,
  page_slug    = ?,
  is_active    = ?,
  translations = ?,
  updated_at   = CURRENT_TIMESTAMP
WHERE id = ?
`

const selectSectionCols = `
SELECT id, title, body_text, images, cover_photo, language, page_number, section_slug, page_slug, is_active, translations
FROM sections
`

const insertBlogSQL = `
INSERT INTO blogs
  (title, content, author, tags, cover_image, images, pdf_url, is_active, published_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))
`

const updateBlogSQL = `
UPDATE blogs SET
  title       = ?,
  content     = ?,
  author      = ?,
  tags        = ?,
  cover_image = ?,
  images      = ?,
  pdf_url     = ?,
  is_active   = ?
WHERE id = ?
`

const selectBlogCols = `
SELECT id, title, content, author, tags, cover_image, images, pdf_url, is_active, published_at
FROM blogs
`

const insertCareerSQL = `
INSERT INTO careers
  (title, description, location, department, is_active, translations)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const updateCareerSQL = `
UPDATE careers SET
  title       = ?,
  description = ?,
  location    = ?,
  department  = ?,
  is_active   = ?,
  translations = ?
WHERE id = ?
`

const selectCareerCols = `
SELECT id, title, description, location, department, is_active, translations, created_at
FROM careers
`

const insertOfficeSQL = `
INSERT INTO contact_offices
  (name, country, city, address, phones, emails, lat, lon)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const updateOfficeSQL = `
UPDATE contact_offices SET
  name    = ?,
  country = ?,
  city    = ?,
  address = ?,
  phones  = ?,
  emails  = ?,
  lat     = ?,
  lon     = ?
WHERE id = ?
`

const selectOfficeCols = `
SELECT id, name, country, city, address, phones, emails, lat, lon
FROM contact_offices
`
