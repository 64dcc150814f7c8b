package site

import "time"

// Site is a user-owned audit target.
type Site struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Competitor is a tracked competitor under a site, subject to its own
// per-plan count limit.
type Competitor struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"site_id"`
	UserID    int64     `json:"user_id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
