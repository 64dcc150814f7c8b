// Package entitlement answers "is this action permitted for this account"
// questions from a plan definition and a usage snapshot. The engine is pure
// and never panics. An unresolved plan yields the most conservative answers
// so that a backend hiccup can never unlock paid behavior.
package entitlement

import (
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/usage"
)

// Action identifies a metered action.
type Action string

const (
	ActionRunAudit        Action = "run_audit"
	ActionGenerateContent Action = "generate_content"
	ActionOptimizeContent Action = "optimize_content"
	ActionGeneratePrompts Action = "generate_prompts"
	ActionTrackCitation   Action = "track_citation"
)

// restricted is the plan assumed when none can be resolved: every limit zero,
// every flag off.
var restricted = &plan.Plan{
	Tier: plan.TierFree,
	Name: "Restricted",
	Flags: plan.Flags{
		AuditFrequency: plan.AuditMonthly,
		SchemaLevel:    plan.SchemaNone,
		CitationMode:   plan.CitationsNone,
		ChatbotLevel:   plan.ChatbotNone,
	},
}

// Engine evaluates entitlement questions for one (plan, usage) pair.
type Engine struct {
	plan  *plan.Plan
	usage usage.Usage
}

// New creates an engine. A nil plan is replaced by the fully restricted
// plan rather than causing errors downstream.
func New(p *plan.Plan, u usage.Usage) Engine {
	if p == nil {
		p = restricted
	}
	return Engine{plan: p, usage: u}
}

// Plan returns the plan the engine evaluates against.
func (e Engine) Plan() *plan.Plan {
	return e.plan
}

// IsFeatureEnabled reports whether the plan includes a boolean feature flag.
func (e Engine) IsFeatureEnabled(f plan.Feature) bool {
	return e.plan.HasFeature(f)
}

// SchemaLevel returns the plan's schema generation level.
func (e Engine) SchemaLevel() plan.SchemaLevel {
	return e.plan.Flags.SchemaLevel
}

// CitationMode returns the plan's citation-tracking mode.
func (e Engine) CitationMode() plan.CitationMode {
	return e.plan.Flags.CitationMode
}

// ChatbotLevel returns the plan's product chatbot access level.
func (e Engine) ChatbotLevel() plan.ChatbotLevel {
	return e.plan.Flags.ChatbotLevel
}

// AuditFrequency returns the plan's audit frequency class.
func (e Engine) AuditFrequency() plan.AuditFrequency {
	return e.plan.Flags.AuditFrequency
}

// SiteLimit returns the plan's site-count limit.
func (e Engine) SiteLimit() plan.Limit {
	return e.plan.Limits.Sites
}

// CompetitorLimit returns the plan's per-site competitor-count limit.
func (e Engine) CompetitorLimit() plan.Limit {
	return e.plan.Limits.Competitors
}

// CanAddSite reports whether one more site may be created given the current
// site count.
func (e Engine) CanAddSite(current int64) bool {
	return e.plan.Limits.Sites.Allows(current)
}

// CanAddCompetitor reports whether one more competitor may be tracked under a
// site given the current competitor count.
func (e Engine) CanAddCompetitor(current int64) bool {
	return e.plan.Limits.Competitors.Allows(current)
}

// CanRunAudit reports whether another audit is permitted this period.
func (e Engine) CanRunAudit() bool {
	return e.plan.Limits.AuditsPerMonth.Allows(e.usage.AuditsThisMonth)
}

// CanGenerateContent reports whether another content generation is permitted
// this period.
func (e Engine) CanGenerateContent() bool {
	return e.plan.Limits.ContentGenerations.Allows(e.usage.ContentGenerations)
}

// CanOptimizeContent reports whether another content optimization is
// permitted. Plans without the optimizer carry a zero quota, so the limit
// comparison refuses on its own; the flag check keeps the two gates
// independent of each other.
func (e Engine) CanOptimizeContent() bool {
	if !e.plan.HasFeature(plan.FeatureContentOptimizer) {
		return false
	}
	return e.plan.Limits.ContentOptimizations.Allows(e.usage.ContentOptimizations)
}

// CanGeneratePrompts reports whether another prompt-suggestion run is
// permitted this period.
func (e Engine) CanGeneratePrompts() bool {
	return e.plan.Limits.PromptSuggestions.Allows(e.usage.PromptSuggestions)
}

// CanTrackMoreCitations is the quota gate for citation tracking.
func (e Engine) CanTrackMoreCitations() bool {
	return e.plan.Limits.CitationsPerMonth.Allows(e.usage.CitationsUsed)
}

// CanTrackCitations is the mode gate for citation tracking, layered on top of
// CanTrackMoreCitations. In delayed mode the first look is free: tracking is
// permitted only while zero citations have been consumed this period. Other
// modes are independent of usage.
func (e Engine) CanTrackCitations() bool {
	switch e.plan.Flags.CitationMode {
	case plan.CitationsNone:
		return false
	case plan.CitationsDelayed:
		return e.usage.CitationsUsed == 0
	case plan.CitationsStandard, plan.CitationsRealtime:
		return true
	}
	return false
}

// Can dispatches a metered-action check by action name.
func (e Engine) Can(a Action) bool {
	switch a {
	case ActionRunAudit:
		return e.CanRunAudit()
	case ActionGenerateContent:
		return e.CanGenerateContent()
	case ActionOptimizeContent:
		return e.CanOptimizeContent()
	case ActionGeneratePrompts:
		return e.CanGeneratePrompts()
	case ActionTrackCitation:
		return e.CanTrackMoreCitations()
	}
	return false
}
