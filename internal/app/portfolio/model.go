package portfolio

import "time"

type Portfolio struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	CoverURL    string    `json:"cover_url"`
	Position    int       `json:"position"`
	ListingIDs  []int64   `json:"listing_ids"`
	Highlighted bool      `json:"is_highlighted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SaveReq struct {
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	ListingIDs  []int64 `json:"listing_ids"`
	Highlighted bool    `json:"is_highlighted"`
}
