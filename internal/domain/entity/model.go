package entity

import "time"

// Entity is one detected named concept within a site's content. Each
// entity-analysis run replaces a site's entity set wholesale rather than
// merging incrementally.
type Entity struct {
	ID        int64     `json:"id"`
	SiteID    string    `json:"site_id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Mentions  int       `json:"mention_count"`
	Gap       bool      `json:"gap"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
