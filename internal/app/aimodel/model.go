package aimodel

import "time"

// Model is one configured AI provider model. At most one model is active at a
// time; the backend enforces the invariant and the client only surfaces it.
type Model struct {
	ID          int64     `json:"id"`
	Provider    string    `json:"provider"`
	Name        string    `json:"name"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Active      bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SaveReq struct {
	Provider    string  `json:"provider"`
	Name        string  `json:"name"`
	APIKey      string  `json:"api_key,omitempty"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}
