package markup

import "time"

// Schema is a generated JSON-LD artifact for a URL. One row per generation
// request, immutable once created.
type Schema struct {
	ID         int64     `json:"id"`
	SiteID     string    `json:"site_id,omitempty"`
	UserID     int64     `json:"user_id"`
	URL        string    `json:"url"`
	SchemaType string    `json:"schema_type"`
	JSONLD     string    `json:"schema"`
	CreatedAt  time.Time `json:"created_at"`
}

// Schema types the generator understands. Unknown types still generate; these
// are the ones with dedicated fallback shapes.
const (
	TypeOrganization   = "Organization"
	TypeLocalBusiness  = "LocalBusiness"
	TypeArticle        = "Article"
	TypeProduct        = "Product"
	TypeFAQPage        = "FAQPage"
	TypeWebSite        = "WebSite"
)
