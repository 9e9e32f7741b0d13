package blog

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Body        string    `json:"body"`
	CoverURL    string    `json:"cover_url"`
	Tags        []string  `json:"tags"`
	Published   bool      `json:"is_published"`
	AuthorID    uuid.UUID `json:"author_id"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateReq struct {
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	Body    string   `json:"body"`
	Tags    []string `json:"tags"`
}

type UpdateReq struct {
	Title   *string  `json:"title,omitempty"`
	Excerpt *string  `json:"excerpt,omitempty"`
	Body    *string  `json:"body,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}
