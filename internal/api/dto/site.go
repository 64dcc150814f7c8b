package dto

// CreateSiteRequest adds a new audit target.
type CreateSiteRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Name string `json:"name,omitempty" validate:"omitempty,max=255"`
}

// CreateCompetitorRequest adds a tracked competitor under a site.
type CreateCompetitorRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Name string `json:"name,omitempty" validate:"omitempty,max=255"`
}
