package entitlement

import (
	"testing"

	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/usage"
)

func catalog(t *testing.T) plan.Catalog {
	t.Helper()
	c, err := plan.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}
	return c
}

func TestLimitAllows(t *testing.T) {
	tests := []struct {
		name  string
		limit plan.Limit
		used  int64
		want  bool
	}{
		{name: "under limit", limit: 5, used: 4, want: true},
		{name: "at limit", limit: 5, used: 5, want: false},
		{name: "over limit", limit: 5, used: 6, want: false},
		{name: "zero limit refuses at zero usage", limit: 0, used: 0, want: false},
		{name: "zero limit refuses always", limit: 0, used: 100, want: false},
		{name: "unlimited allows any usage", limit: plan.Unlimited, used: 1 << 40, want: true},
		{name: "unlimited allows zero usage", limit: plan.Unlimited, used: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.limit.Allows(tt.used); got != tt.want {
				t.Errorf("Limit(%s).Allows(%d) = %v, want %v", tt.limit, tt.used, got, tt.want)
			}
		})
	}
}

func TestCatalogLimitsValid(t *testing.T) {
	for _, p := range catalog(t).All() {
		if err := p.Validate(); err != nil {
			t.Errorf("plan %s failed validation: %v", p.Tier, err)
		}
	}
}

func TestCanRunAudit(t *testing.T) {
	c := catalog(t)

	tests := []struct {
		name  string
		tier  plan.Tier
		used  int64
		want  bool
	}{
		{name: "core under limit", tier: plan.TierCore, used: 1, want: true},
		{name: "core at limit of 2", tier: plan.TierCore, used: 2, want: false},
		{name: "free first audit", tier: plan.TierFree, used: 0, want: true},
		{name: "free second audit", tier: plan.TierFree, used: 1, want: false},
		{name: "agency unlimited", tier: plan.TierAgency, used: 100000, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(c.Get(tt.tier), usage.Usage{AuditsThisMonth: tt.used})
			if got := e.CanRunAudit(); got != tt.want {
				t.Errorf("CanRunAudit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanOptimizeContentZeroLimit(t *testing.T) {
	c := catalog(t)

	// Free and Core carry a zero optimization quota and no optimizer flag;
	// both gates must refuse regardless of usage.
	for _, tier := range []plan.Tier{plan.TierFree, plan.TierCore} {
		e := New(c.Get(tier), usage.Usage{})
		if e.CanOptimizeContent() {
			t.Errorf("tier %s: CanOptimizeContent() = true, want false", tier)
		}
	}

	e := New(c.Get(plan.TierPro), usage.Usage{ContentOptimizations: 0})
	if !e.CanOptimizeContent() {
		t.Error("pro: CanOptimizeContent() = false, want true")
	}
}

func TestCanTrackCitationsDelayedMode(t *testing.T) {
	c := catalog(t)

	tests := []struct {
		name string
		tier plan.Tier
		used int64
		want bool
	}{
		{name: "delayed mode with zero used", tier: plan.TierCore, used: 0, want: true},
		{name: "delayed mode after first citation", tier: plan.TierCore, used: 1, want: false},
		{name: "standard mode independent of usage", tier: plan.TierPro, used: 50, want: true},
		{name: "realtime mode independent of usage", tier: plan.TierAgency, used: 9999, want: true},
		{name: "none mode always refuses", tier: plan.TierFree, used: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(c.Get(tt.tier), usage.Usage{CitationsUsed: tt.used})
			if got := e.CanTrackCitations(); got != tt.want {
				t.Errorf("CanTrackCitations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNilPlanIsFullyRestricted(t *testing.T) {
	e := New(nil, usage.Usage{})

	if e.CanRunAudit() {
		t.Error("nil plan: CanRunAudit() = true, want false")
	}
	if e.CanGenerateContent() {
		t.Error("nil plan: CanGenerateContent() = true, want false")
	}
	if e.CanTrackCitations() {
		t.Error("nil plan: CanTrackCitations() = true, want false")
	}
	if e.CanAddSite(0) {
		t.Error("nil plan: CanAddSite(0) = true, want false")
	}
	if e.ChatbotLevel() != plan.ChatbotNone {
		t.Errorf("nil plan: ChatbotLevel() = %s, want none", e.ChatbotLevel())
	}
	for f := plan.FeatureEntityAnalysis; f <= plan.FeatureEarlyAccess; f++ {
		if e.IsFeatureEnabled(f) {
			t.Errorf("nil plan: feature %s enabled, want disabled", f)
		}
	}
}

func TestEngineQueriesAreIdempotent(t *testing.T) {
	c := catalog(t)
	e := New(c.Get(plan.TierCore), usage.Usage{AuditsThisMonth: 1, CitationsUsed: 0})

	for i := 0; i < 3; i++ {
		if !e.CanRunAudit() {
			t.Fatalf("call %d: CanRunAudit() changed answer", i)
		}
		if !e.CanTrackCitations() {
			t.Fatalf("call %d: CanTrackCitations() changed answer", i)
		}
		if e.IsFeatureEnabled(plan.FeatureContentOptimizer) {
			t.Fatalf("call %d: IsFeatureEnabled changed answer", i)
		}
	}
}

func TestCanDispatch(t *testing.T) {
	c := catalog(t)
	u := usage.Usage{
		AuditsThisMonth:      2,
		ContentGenerations:   5,
		PromptSuggestions:    0,
		CitationsUsed:        3,
		ContentOptimizations: 0,
	}
	e := New(c.Get(plan.TierCore), u)

	tests := []struct {
		action Action
		want   bool
	}{
		{ActionRunAudit, false},
		{ActionGenerateContent, true},
		{ActionOptimizeContent, false},
		{ActionGeneratePrompts, true},
		{ActionTrackCitation, true},
	}

	for _, tt := range tests {
		if got := e.Can(tt.action); got != tt.want {
			t.Errorf("Can(%s) = %v, want %v", tt.action, got, tt.want)
		}
	}
}
