package client

import "time"

// User is an account as returned by the API.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// Site is a tracked audit target.
type Site struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Competitor is a tracked competitor under a site.
type Competitor struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"site_id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Audit is one visibility audit snapshot.
type Audit struct {
	ID                int64     `json:"id"`
	SiteID            string    `json:"site_id"`
	AIVisibilityScore int       `json:"ai_visibility_score"`
	SchemaScore       int       `json:"schema_score"`
	SemanticScore     int       `json:"semantic_score"`
	CitationScore     int       `json:"citation_score"`
	TechnicalSEOScore int       `json:"technical_seo_score"`
	CreatedAt         time.Time `json:"created_at"`
}

// AuditResult pairs an audit with its overall score.
type AuditResult struct {
	Audit        *Audit `json:"audit"`
	OverallScore int    `json:"overall_score"`
}

// Plan is one subscription tier definition.
type Plan struct {
	Tier         string                 `json:"tier"`
	Name         string                 `json:"name"`
	MonthlyPrice float64                `json:"monthly_price"`
	YearlyPrice  float64                `json:"yearly_price"`
	Limits       map[string]interface{} `json:"limits"`
	Flags        map[string]interface{} `json:"flags"`
}

// Usage is the per-account counter record.
type Usage struct {
	UserID               int64     `json:"user_id"`
	CitationsUsed        int64     `json:"citations_used"`
	ContentGenerations   int64     `json:"content_generations_used"`
	ContentOptimizations int64     `json:"content_optimizations_used"`
	PromptSuggestions    int64     `json:"prompt_suggestions_used"`
	AuditsThisMonth      int64     `json:"audits_this_month"`
	PeriodStart          time.Time `json:"period_start"`
}

// ContentAnalysis is the content analyzer's result.
type ContentAnalysis struct {
	Score                int      `json:"score"`
	AIOptimizationScore  int      `json:"ai_optimization_score"`
	SemanticClarityScore int      `json:"semantic_clarity_score"`
	EntityCoverageScore  int      `json:"entity_coverage_score"`
	ReadabilityScore     int      `json:"readability_score"`
	WordCount            int      `json:"word_count"`
	AnalysisSummary      string   `json:"analysis_summary"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	Recommendations      []string `json:"recommendations"`
}

// ChatReply is one chatbot answer.
type ChatReply struct {
	Response           string   `json:"response"`
	SubscriptionLevel  string   `json:"subscription_level,omitempty"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty"`
}
