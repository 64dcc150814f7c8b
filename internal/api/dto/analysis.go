package dto

// RunAuditRequest triggers a visibility audit for a site.
type RunAuditRequest struct {
	SiteID string `json:"site_id" validate:"required"`
}

// AnalyzeContentRequest submits pasted content for analysis.
type AnalyzeContentRequest struct {
	Content string `json:"content" validate:"required"`
}

// AnalyzeEntitiesRequest runs entity coverage analysis for a site.
type AnalyzeEntitiesRequest struct {
	SiteID string `json:"site_id" validate:"required"`
}

// GenerateSchemaRequest generates JSON-LD markup for a URL.
type GenerateSchemaRequest struct {
	SiteID     string `json:"site_id,omitempty"`
	URL        string `json:"url" validate:"required,url"`
	SchemaType string `json:"schema_type,omitempty"`
}

// GenerateSummaryRequest generates a citable summary for a site.
type GenerateSummaryRequest struct {
	SiteID      string `json:"site_id" validate:"required"`
	SummaryType string `json:"summary_type,omitempty"`
}

// GeneratePromptsRequest generates search prompt suggestions for a topic.
type GeneratePromptsRequest struct {
	Topic string `json:"topic" validate:"required,min=10"`
}

// AnalyzeCompetitorRequest audits a tracked competitor.
type AnalyzeCompetitorRequest struct {
	CompetitorID string `json:"competitor_id" validate:"required"`
}

// TrackCitationsRequest runs a citation check for a site.
type TrackCitationsRequest struct {
	SiteID string `json:"site_id" validate:"required"`
}

// ChatRequest is one chatbot message.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}
