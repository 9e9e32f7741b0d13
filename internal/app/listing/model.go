package listing

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

type Listing struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	PropertyType string    `json:"property_type"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	AreaSqm      float64   `json:"area_sqm"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Status       Status    `json:"status"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Images       []Image   `json:"images"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Image struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

type CreateReq struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	PropertyType string  `json:"property_type"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	AreaSqm      float64 `json:"area_sqm"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Country      string  `json:"country"`
}

type UpdateReq struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	AreaSqm      *float64 `json:"area_sqm,omitempty"`
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	Country      *string  `json:"country,omitempty"`
	Status       *Status  `json:"status,omitempty"`
}

// Filter narrows list queries; zero values are omitted from the outbound
// query string.
type Filter struct {
	City     string
	Status   Status
	MinPrice float64
	MaxPrice float64
	Search   string
}
