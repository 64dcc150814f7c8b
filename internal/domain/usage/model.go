package usage

import "time"

// Usage is the per-account counter record metered actions are compared
// against. PeriodStart anchors the counters to a calendar month (UTC); the
// usage service lazily resets the counters when a read crosses into a later
// month.
type Usage struct {
	UserID               int64     `json:"user_id"`
	CitationsUsed        int64     `json:"citations_used"`
	ContentGenerations   int64     `json:"content_generations_used"`
	ContentOptimizations int64     `json:"content_optimizations_used"`
	PromptSuggestions    int64     `json:"prompt_suggestions_used"`
	AuditsThisMonth      int64     `json:"audits_this_month"`
	LastAuditAt          time.Time `json:"last_audit_at,omitempty"`
	PeriodStart          time.Time `json:"period_start"`
	UpdatedAt            time.Time `json:"updated_at,omitempty"`
}

// Counter identifies one metered counter.
type Counter string

const (
	CounterCitations            Counter = "citations"
	CounterContentGenerations   Counter = "content_generations"
	CounterContentOptimizations Counter = "content_optimizations"
	CounterPromptSuggestions    Counter = "prompt_suggestions"
	CounterAudits               Counter = "audits"
)
