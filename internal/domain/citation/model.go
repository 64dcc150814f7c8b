package citation

import "time"

// Citation is one detected external mention of a site's content. Citations
// are append only and never edited.
type Citation struct {
	ID         string    `json:"id"`
	SiteID     string    `json:"site_id"`
	UserID     int64     `json:"user_id"`
	SourceType string    `json:"source_type"`
	Snippet    string    `json:"snippet"`
	SourceURL  string    `json:"source_url"`
	DetectedAt time.Time `json:"detected_at"`
}
