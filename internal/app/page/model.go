package page

import "time"

// Page is a static content page addressed by slug (about, terms, privacy).
type Page struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	MetaTitle string    `json:"meta_title"`
	MetaDesc  string    `json:"meta_description"`
	Published bool      `json:"is_published"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SaveReq struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	MetaTitle string `json:"meta_title"`
	MetaDesc  string `json:"meta_description"`
	Published bool   `json:"is_published"`
}
