package plan

import (
	"fmt"
	"math"
)

// Tier identifies a subscription plan.
type Tier string

const (
	TierFree   Tier = "free"
	TierCore   Tier = "core"
	TierPro    Tier = "pro"
	TierAgency Tier = "agency"
)

// Tiers lists all known tiers in ascending order.
var Tiers = []Tier{TierFree, TierCore, TierPro, TierAgency}

// Limit is a monthly or absolute quota. Unlimited is a dedicated sentinel
// that compares as always-permitting; all comparisons go through Allows so
// callers never do arithmetic against the sentinel.
type Limit int64

// Unlimited is the "no limit" sentinel.
const Unlimited Limit = math.MaxInt64

// IsUnlimited reports whether the limit is the unlimited sentinel.
func (l Limit) IsUnlimited() bool {
	return l == Unlimited
}

// Allows reports whether the (used+1)-th action is permitted. A limit of
// exactly zero always refuses, regardless of usage.
func (l Limit) Allows(used int64) bool {
	if l.IsUnlimited() {
		return true
	}
	if l <= 0 {
		return false
	}
	return used < int64(l)
}

// String renders the limit for display.
func (l Limit) String() string {
	if l.IsUnlimited() {
		return "unlimited"
	}
	return fmt.Sprintf("%d", int64(l))
}

// AuditFrequency classifies how often a plan's sites are re-audited.
type AuditFrequency string

const (
	AuditMonthly AuditFrequency = "monthly"
	AuditWeekly  AuditFrequency = "weekly"
	AuditDaily   AuditFrequency = "daily"
)

// SchemaLevel is the depth of schema markup generation a plan includes.
type SchemaLevel string

const (
	SchemaNone     SchemaLevel = "none"
	SchemaBasic    SchemaLevel = "basic"
	SchemaAdvanced SchemaLevel = "advanced"
	SchemaFull     SchemaLevel = "full"
)

// CitationMode is the citation-tracking mode of a plan. Delayed mode carries
// the "first look is free" rule: tracking is permitted only while zero
// citations have been consumed this period.
type CitationMode string

const (
	CitationsNone     CitationMode = "none"
	CitationsDelayed  CitationMode = "delayed"
	CitationsStandard CitationMode = "standard"
	CitationsRealtime CitationMode = "realtime"
)

// ChatbotLevel is the product chatbot access level of a plan.
type ChatbotLevel string

const (
	ChatbotNone  ChatbotLevel = "none"
	ChatbotBasic ChatbotLevel = "basic"
	ChatbotFull  ChatbotLevel = "full"
)

// Feature enumerates the boolean feature flags. It is a closed set so the
// entitlement engine can switch over it exhaustively instead of looking
// flags up by string key.
type Feature int

const (
	FeatureEntityAnalysis Feature = iota
	FeatureVoiceAssistant
	FeatureLLMSummaries
	FeatureCompetitiveAnalysis
	FeatureContentOptimizer
	FeatureExport
	FeatureTeamCollaboration
	FeaturePrioritySupport
	FeatureDedicatedSupport
	FeatureEarlyAccess
)

// String returns the wire name of a feature flag.
func (f Feature) String() string {
	switch f {
	case FeatureEntityAnalysis:
		return "entity_analysis"
	case FeatureVoiceAssistant:
		return "voice_assistant"
	case FeatureLLMSummaries:
		return "llm_summaries"
	case FeatureCompetitiveAnalysis:
		return "competitive_analysis"
	case FeatureContentOptimizer:
		return "content_optimizer"
	case FeatureExport:
		return "export"
	case FeatureTeamCollaboration:
		return "team_collaboration"
	case FeaturePrioritySupport:
		return "priority_support"
	case FeatureDedicatedSupport:
		return "dedicated_support"
	case FeatureEarlyAccess:
		return "early_access"
	}
	return "unknown"
}

// Limits holds the numeric quotas of a plan.
type Limits struct {
	Sites                Limit `yaml:"sites" json:"sites"`
	Competitors          Limit `yaml:"competitors" json:"competitors"`
	AuditsPerMonth       Limit `yaml:"audits_per_month" json:"audits_per_month"`
	ContentGenerations   Limit `yaml:"content_generations" json:"content_generations"`
	ContentOptimizations Limit `yaml:"content_optimizations" json:"content_optimizations"`
	PromptSuggestions    Limit `yaml:"prompt_suggestions" json:"prompt_suggestions"`
	CitationsPerMonth    Limit `yaml:"citations_per_month" json:"citations_per_month"`
}

// Flags holds the feature-flag set of a plan.
type Flags struct {
	AuditFrequency      AuditFrequency `yaml:"audit_frequency" json:"audit_frequency"`
	SchemaLevel         SchemaLevel    `yaml:"schema_level" json:"schema_level"`
	CitationMode        CitationMode   `yaml:"citation_mode" json:"citation_mode"`
	ChatbotLevel        ChatbotLevel   `yaml:"chatbot_level" json:"chatbot_level"`
	EntityAnalysis      bool           `yaml:"entity_analysis" json:"entity_analysis"`
	VoiceAssistant      bool           `yaml:"voice_assistant" json:"voice_assistant"`
	LLMSummaries        bool           `yaml:"llm_summaries" json:"llm_summaries"`
	CompetitiveAnalysis bool           `yaml:"competitive_analysis" json:"competitive_analysis"`
	ContentOptimizer    bool           `yaml:"content_optimizer" json:"content_optimizer"`
	Export              bool           `yaml:"export" json:"export"`
	TeamCollaboration   bool           `yaml:"team_collaboration" json:"team_collaboration"`
	PrioritySupport     bool           `yaml:"priority_support" json:"priority_support"`
	DedicatedSupport    bool           `yaml:"dedicated_support" json:"dedicated_support"`
	EarlyAccess         bool           `yaml:"early_access" json:"early_access"`
}

// Plan is an immutable subscription tier definition. Plans are enumerated at
// startup and never created or mutated at runtime.
type Plan struct {
	Tier         Tier    `yaml:"tier" json:"tier"`
	Name         string  `yaml:"name" json:"name"`
	MonthlyPrice float64 `yaml:"monthly_price" json:"monthly_price"`
	YearlyPrice  float64 `yaml:"yearly_price" json:"yearly_price"`
	Limits       Limits  `yaml:"limits" json:"limits"`
	Flags        Flags   `yaml:"flags" json:"flags"`
}

// Validate checks that every limit is a non-negative finite number or the
// unlimited sentinel and that every enum flag holds a known value.
func (p *Plan) Validate() error {
	if p.Tier == "" || p.Name == "" {
		return fmt.Errorf("plan %q: tier and name are required", p.Tier)
	}
	if p.MonthlyPrice < 0 || p.YearlyPrice < 0 {
		return fmt.Errorf("plan %q: prices must be non-negative", p.Tier)
	}

	limits := map[string]Limit{
		"sites":                 p.Limits.Sites,
		"competitors":           p.Limits.Competitors,
		"audits_per_month":      p.Limits.AuditsPerMonth,
		"content_generations":   p.Limits.ContentGenerations,
		"content_optimizations": p.Limits.ContentOptimizations,
		"prompt_suggestions":    p.Limits.PromptSuggestions,
		"citations_per_month":   p.Limits.CitationsPerMonth,
	}
	for name, l := range limits {
		if l < 0 {
			return fmt.Errorf("plan %q: limit %s is negative", p.Tier, name)
		}
	}

	switch p.Flags.AuditFrequency {
	case AuditMonthly, AuditWeekly, AuditDaily:
	default:
		return fmt.Errorf("plan %q: unknown audit frequency %q", p.Tier, p.Flags.AuditFrequency)
	}
	switch p.Flags.SchemaLevel {
	case SchemaNone, SchemaBasic, SchemaAdvanced, SchemaFull:
	default:
		return fmt.Errorf("plan %q: unknown schema level %q", p.Tier, p.Flags.SchemaLevel)
	}
	switch p.Flags.CitationMode {
	case CitationsNone, CitationsDelayed, CitationsStandard, CitationsRealtime:
	default:
		return fmt.Errorf("plan %q: unknown citation mode %q", p.Tier, p.Flags.CitationMode)
	}
	switch p.Flags.ChatbotLevel {
	case ChatbotNone, ChatbotBasic, ChatbotFull:
	default:
		return fmt.Errorf("plan %q: unknown chatbot level %q", p.Tier, p.Flags.ChatbotLevel)
	}

	return nil
}

// HasFeature reports whether the plan includes the given feature flag.
func (p *Plan) HasFeature(f Feature) bool {
	switch f {
	case FeatureEntityAnalysis:
		return p.Flags.EntityAnalysis
	case FeatureVoiceAssistant:
		return p.Flags.VoiceAssistant
	case FeatureLLMSummaries:
		return p.Flags.LLMSummaries
	case FeatureCompetitiveAnalysis:
		return p.Flags.CompetitiveAnalysis
	case FeatureContentOptimizer:
		return p.Flags.ContentOptimizer
	case FeatureExport:
		return p.Flags.Export
	case FeatureTeamCollaboration:
		return p.Flags.TeamCollaboration
	case FeaturePrioritySupport:
		return p.Flags.PrioritySupport
	case FeatureDedicatedSupport:
		return p.Flags.DedicatedSupport
	case FeatureEarlyAccess:
		return p.Flags.EarlyAccess
	}
	return false
}
