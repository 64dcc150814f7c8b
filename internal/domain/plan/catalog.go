package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the full set of plans, keyed by tier. A Catalog is built once at
// process start and treated as immutable afterwards.
type Catalog map[Tier]*Plan

// defaults is the compiled-in plan table.
var defaults = []*Plan{
	{
		Tier:         TierFree,
		Name:         "Free",
		MonthlyPrice: 0,
		YearlyPrice:  0,
		Limits: Limits{
			Sites:                1,
			Competitors:          0,
			AuditsPerMonth:       1,
			ContentGenerations:   2,
			ContentOptimizations: 0,
			PromptSuggestions:    5,
			CitationsPerMonth:    0,
		},
		Flags: Flags{
			AuditFrequency: AuditMonthly,
			SchemaLevel:    SchemaBasic,
			CitationMode:   CitationsNone,
			ChatbotLevel:   ChatbotNone,
		},
	},
	{
		Tier:         TierCore,
		Name:         "Core",
		MonthlyPrice: 29,
		YearlyPrice:  290,
		Limits: Limits{
			Sites:                3,
			Competitors:          2,
			AuditsPerMonth:       2,
			ContentGenerations:   20,
			ContentOptimizations: 0,
			PromptSuggestions:    25,
			CitationsPerMonth:    10,
		},
		Flags: Flags{
			AuditFrequency: AuditWeekly,
			SchemaLevel:    SchemaBasic,
			CitationMode:   CitationsDelayed,
			ChatbotLevel:   ChatbotBasic,
			EntityAnalysis: true,
			LLMSummaries:   true,
		},
	},
	{
		Tier:         TierPro,
		Name:         "Pro",
		MonthlyPrice: 79,
		YearlyPrice:  790,
		Limits: Limits{
			Sites:                10,
			Competitors:          10,
			AuditsPerMonth:       30,
			ContentGenerations:   60,
			ContentOptimizations: 30,
			PromptSuggestions:    100,
			CitationsPerMonth:    100,
		},
		Flags: Flags{
			AuditFrequency:      AuditDaily,
			SchemaLevel:         SchemaAdvanced,
			CitationMode:        CitationsStandard,
			ChatbotLevel:        ChatbotFull,
			EntityAnalysis:      true,
			VoiceAssistant:      true,
			LLMSummaries:        true,
			CompetitiveAnalysis: true,
			ContentOptimizer:    true,
			Export:              true,
			PrioritySupport:     true,
		},
	},
	{
		Tier:         TierAgency,
		Name:         "Agency",
		MonthlyPrice: 199,
		YearlyPrice:  1990,
		Limits: Limits{
			Sites:                Unlimited,
			Competitors:          Unlimited,
			AuditsPerMonth:       Unlimited,
			ContentGenerations:   Unlimited,
			ContentOptimizations: Unlimited,
			PromptSuggestions:    Unlimited,
			CitationsPerMonth:    Unlimited,
		},
		Flags: Flags{
			AuditFrequency:      AuditDaily,
			SchemaLevel:         SchemaFull,
			CitationMode:        CitationsRealtime,
			ChatbotLevel:        ChatbotFull,
			EntityAnalysis:      true,
			VoiceAssistant:      true,
			LLMSummaries:        true,
			CompetitiveAnalysis: true,
			ContentOptimizer:    true,
			Export:              true,
			TeamCollaboration:   true,
			PrioritySupport:     true,
			DedicatedSupport:    true,
			EarlyAccess:         true,
		},
	},
}

// DefaultCatalog returns the compiled-in plan table.
func DefaultCatalog() (Catalog, error) {
	return buildCatalog(defaults)
}

// LoadCatalog returns the plan table, overridden by the YAML file at path
// when path is non-empty. The loaded table must define every tier.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plans file: %w", err)
	}

	var doc struct {
		Plans []*Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse plans file: %w", err)
	}

	return buildCatalog(doc.Plans)
}

func buildCatalog(plans []*Plan) (Catalog, error) {
	c := make(Catalog, len(plans))
	for _, p := range plans {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c[p.Tier]; dup {
			return nil, fmt.Errorf("duplicate plan tier %q", p.Tier)
		}
		c[p.Tier] = p
	}
	for _, t := range Tiers {
		if _, ok := c[t]; !ok {
			return nil, fmt.Errorf("missing plan for tier %q", t)
		}
	}
	return c, nil
}

// Get returns the plan for a tier, or nil when the tier is unknown.
func (c Catalog) Get(t Tier) *Plan {
	return c[t]
}

// Free returns the most restrictive plan. Used as the conservative answer
// whenever no plan can be resolved for an account.
func (c Catalog) Free() *Plan {
	return c[TierFree]
}

// All returns the plans in ascending tier order.
func (c Catalog) All() []*Plan {
	out := make([]*Plan, 0, len(c))
	for _, t := range Tiers {
		if p, ok := c[t]; ok {
			out = append(out, p)
		}
	}
	return out
}

// UnmarshalYAML accepts either a number or the string "unlimited".
func (l *Limit) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil && s == "unlimited" {
		*l = Unlimited
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("limit must be a number or \"unlimited\": %w", err)
	}
	*l = Limit(n)
	return nil
}

// MarshalYAML renders the unlimited sentinel as "unlimited".
func (l Limit) MarshalYAML() (interface{}, error) {
	if l.IsUnlimited() {
		return "unlimited", nil
	}
	return int64(l), nil
}
