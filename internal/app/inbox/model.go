package inbox

import "time"

type Message struct {
	ID         int64     `json:"id"`
	FromName   string    `json:"from_name"`
	FromEmail  string    `json:"from_email"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Read       bool      `json:"is_read"`
	ListingID  *int64    `json:"listing_id,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}
