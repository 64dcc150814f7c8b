package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/seogenix/backend/internal/domain/audit"
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/site"
	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/testutil"
)

func newChatbotService(o *testutil.MockOracle) (*ChatbotService, *testutil.MockSiteRepository, *testutil.MockAuditRepository) {
	sites := testutil.NewMockSiteRepository()
	audits := testutil.NewMockAuditRepository()
	svc := NewChatbotService(o, sites, audits, testutil.NewMockCitationRepository(), testutil.NewMockEntityRepository(), testLogger())
	return svc, sites, audits
}

func TestProductChatLockedWithoutAccess(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{"should never be returned"}}
	svc, _, _ := newChatbotService(o)

	_, err := svc.Product(context.Background(), 1, plan.ChatbotNone, "How do I improve?")
	if err == nil {
		t.Fatal("Product() error = nil, want feature lock")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeFeatureLocked {
		t.Fatalf("error = %v, want code %s", err, apperrors.ErrCodeFeatureLocked)
	}
	if appErr.Friendly != UpsellMessage {
		t.Errorf("Friendly = %q, want upsell message", appErr.Friendly)
	}
	if o.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0 for locked plan", o.Calls())
	}
}

func TestBasicChatInterceptsAnalysisQuestions(t *testing.T) {
	tests := []string{
		"Can you analyze my homepage?",
		"Please optimize my landing page",
		"Why did my score drop?",
		"Show me my citations from last week",
	}

	for _, message := range tests {
		t.Run(message, func(t *testing.T) {
			o := &testutil.MockOracle{Responses: []string{"should never be returned"}}
			svc, _, _ := newChatbotService(o)

			reply, err := svc.Product(context.Background(), 1, plan.ChatbotBasic, message)
			if err != nil {
				t.Fatalf("Product() error = %v", err)
			}
			if reply.Response != basicUpgradeMessage {
				t.Errorf("Response = %q, want upgrade message", reply.Response)
			}
			if len(reply.SuggestedQuestions) != len(basicSuggestedQuestions) {
				t.Errorf("SuggestedQuestions = %d, want %d", len(reply.SuggestedQuestions), len(basicSuggestedQuestions))
			}
			if o.Calls() != 0 {
				t.Errorf("oracle calls = %d, want 0 for intercepted message", o.Calls())
			}
		})
	}
}

func TestBasicChatAnswersNavigationQuestions(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{"Head to Sites in the sidebar and click Add Site."}}
	svc, _, _ := newChatbotService(o)

	reply, err := svc.Product(context.Background(), 1, plan.ChatbotBasic, "Where do I add a new website?")
	if err != nil {
		t.Fatalf("Product() error = %v", err)
	}
	if o.Calls() != 1 {
		t.Fatalf("oracle calls = %d, want 1", o.Calls())
	}
	if !strings.Contains(o.Requests[0].System, "navigate") {
		t.Errorf("system prompt = %q, want navigation framing", o.Requests[0].System)
	}
	if reply.SubscriptionLevel != string(plan.ChatbotBasic) {
		t.Errorf("SubscriptionLevel = %q, want %q", reply.SubscriptionLevel, plan.ChatbotBasic)
	}
}

func TestFullChatInjectsAccountContext(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{"Your citation score is the weak spot."}}
	svc, sites, audits := newChatbotService(o)

	ctx := context.Background()
	_ = sites.Create(ctx, &site.Site{ID: "site-1", UserID: 1, URL: "https://example.com"})
	_ = audits.Create(ctx, &audit.Audit{SiteID: "site-1", UserID: 1, AIVisibilityScore: 70})
	_ = audits.Create(ctx, &audit.Audit{SiteID: "site-1", UserID: 1, AIVisibilityScore: 74})

	reply, err := svc.Product(ctx, 1, plan.ChatbotFull, "what should I fix first?")
	if err != nil {
		t.Fatalf("Product() error = %v", err)
	}
	if reply.ContextUsed == nil {
		t.Fatal("ContextUsed = nil, want account snapshot")
	}
	if reply.ContextUsed.Sites != 1 || reply.ContextUsed.Audits != 2 {
		t.Errorf("context = %d sites / %d audits, want 1/2", reply.ContextUsed.Sites, reply.ContextUsed.Audits)
	}
	prompt := o.Requests[0].Prompt
	if !strings.Contains(prompt, "tracked sites: 1") || !strings.Contains(prompt, "audits on record: 2") {
		t.Errorf("prompt missing account counts:\n%s", prompt)
	}
}

func TestProductChatRejectsEmptyMessage(t *testing.T) {
	o := &testutil.MockOracle{}
	svc, _, _ := newChatbotService(o)

	_, err := svc.Product(context.Background(), 1, plan.ChatbotFull, "   ")
	if err == nil {
		t.Fatal("Product() error = nil, want bad request")
	}
	if o.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0", o.Calls())
	}
}

func TestLandingChatAnswersWithoutAccount(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{"SEOgenix audits your site for AI visibility."}}
	svc, _, _ := newChatbotService(o)

	reply, err := svc.Landing(context.Background(), "What does this product do?")
	if err != nil {
		t.Fatalf("Landing() error = %v", err)
	}
	if reply.Response == "" {
		t.Error("Response is empty")
	}
	if reply.SubscriptionLevel != "" {
		t.Errorf("SubscriptionLevel = %q, want empty for landing chat", reply.SubscriptionLevel)
	}
}
