package domain

import "time"

// TranslationFields is a partial override of an entity's translatable fields.
// Empty strings mean "not translated"; resolution falls back per field.
type TranslationFields struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	BodyText    string `json:"bodyText,omitempty"`
}

func (t TranslationFields) Empty() bool {
	return t.Title == "" && t.Description == "" && t.BodyText == ""
}

// TranslationMap keys ISO language codes to precomputed translations.
// This is the single canonical shape; repositories (un)marshal it at the
// storage boundary so callers never see a raw JSON object.
type TranslationMap map[string]TranslationFields

type PageMetadata struct {
	Keywords     []string  `json:"keywords,omitempty"`
	Author       string    `json:"author,omitempty"`
	LastModified time.Time `json:"lastModified,omitempty"`
}

// Page is a top-level content document. Slug is its unique, immutable
// retrieval identity.
type Page struct {
	ID           int64
	Title        string
	Description  string
	Slug         string
	Language     string
	PageNumber   int
	IsActive     bool
	SectionIDs   []int64 // ordered references
	Translations TranslationMap
	Metadata     PageMetadata
}

// Section is a reusable content block referenced by one or more pages.
// SectionID is a human-readable slug and is not guaranteed unique; together
// with Page (owning page's slug, denormalized) it conventionally identifies
// the section.
type Section struct {
	ID           int64
	Title        string
	BodyText     string
	Images       []string // ordered URLs
	CoverPhoto   string
	Language     string
	PageNumber   int
	SectionID    string
	Page         string
	IsActive     bool
	Translations TranslationMap
}

// Read models

type SectionView struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	BodyText   string   `json:"bodyText"`
	Images     []string `json:"images,omitempty"`
	CoverPhoto string   `json:"coverPhoto,omitempty"`
	SectionID  string   `json:"sectionId"`
	Page       string   `json:"page,omitempty"`
	PageNumber int      `json:"pageNumber"`
	Language   string   `json:"language"`
}

type PageView struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Slug        string        `json:"slug"`
	PageNumber  int           `json:"pageNumber"`
	Language    string        `json:"language"`
	Sections    []SectionView `json:"sections,omitempty"`
	Metadata    PageMetadata  `json:"metadata,omitempty"`
}

type SectionsQuery struct {
	Lang       string
	SectionID  *string
	PageNumber *int
	Limit      int
	Offset     int
}

type SectionsPage struct {
	Items []SectionView `json:"items"`
	Total int           `json:"total"`
}
