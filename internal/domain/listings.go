package domain

import "time"

// Blog posts carry their media as URLs; upload handling lives outside this
// service.
type Blog struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Images      []string  `json:"images,omitempty"`
	PDFURL      string    `json:"pdfUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	PublishedAt time.Time `json:"publishedAt"`
}

type Career struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Location     string         `json:"location,omitempty"`
	Department   string         `json:"department,omitempty"`
	IsActive     bool           `json:"isActive"`
	Translations TranslationMap `json:"translations,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// CareerView is a career localized for one language. Careers resolve from
// the persisted map only; there is no dynamic-translation path for them.
type CareerView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	Department  string `json:"department,omitempty"`
	Language    string `json:"language"`
}

type ContactOffice struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
	City    string   `json:"city"`
	Address string   `json:"address,omitempty"`
	Phones  []string `json:"phones,omitempty"`
	Emails  []string `json:"emails,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}
