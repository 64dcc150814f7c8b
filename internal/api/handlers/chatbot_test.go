package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/seogenix/backend/internal/analysis"
	"github.com/seogenix/backend/internal/api/middleware"
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/utils"
	"github.com/seogenix/backend/internal/pkg/validator"
	"github.com/seogenix/backend/internal/services"
	"github.com/seogenix/backend/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

type chatbotFixture struct {
	handler *ChatbotHandler
	oracle  *testutil.MockOracle
	users   *testutil.MockUserRepository
}

func newChatbotFixture(t *testing.T, tier plan.Tier) *chatbotFixture {
	t.Helper()

	log := testLogger()
	users := testutil.NewMockUserRepository()
	if err := users.Create(context.Background(), &user.User{Email: "t@example.com", Tier: tier}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	o := &testutil.MockOracle{Responses: []string{"Go to Sites and click Add Site."}}
	chatbot := analysis.NewChatbotService(
		o,
		testutil.NewMockSiteRepository(),
		testutil.NewMockAuditRepository(),
		testutil.NewMockCitationRepository(),
		testutil.NewMockEntityRepository(),
		log,
	)
	usageSvc := services.NewUsageService(testutil.NewMockUsageRepository(), users, testutil.TestCatalog(t), log)

	return &chatbotFixture{
		handler: NewChatbotHandler(chatbot, usageSvc, users, log, validator.New()),
		oracle:  o,
		users:   users,
	}
}

func chatRequest(userID int64, message string) *http.Request {
	body := strings.NewReader(`{"message": ` + quote(message) + `}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chatbot", body)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestChatbotLockedForFreeTier(t *testing.T) {
	f := newChatbotFixture(t, plan.TierFree)

	rec := httptest.NewRecorder()
	f.handler.Product(rec, chatRequest(1, "hello there"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	var resp utils.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response body does not parse: %v", err)
	}
	if resp.Response != analysis.UpsellMessage {
		t.Errorf("response = %q, want upsell message", resp.Response)
	}
	if f.oracle.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0 for locked plan", f.oracle.Calls())
	}
}

func TestChatbotAnswersForCoreTier(t *testing.T) {
	f := newChatbotFixture(t, plan.TierCore)

	rec := httptest.NewRecorder()
	f.handler.Product(rec, chatRequest(1, "Where do I add a website?"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var reply analysis.ChatReply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("response body does not parse: %v", err)
	}
	if reply.Response == "" {
		t.Error("Response is empty")
	}
	if reply.SubscriptionLevel != string(plan.ChatbotBasic) {
		t.Errorf("SubscriptionLevel = %q, want %q", reply.SubscriptionLevel, plan.ChatbotBasic)
	}
	if f.oracle.Calls() != 1 {
		t.Errorf("oracle calls = %d, want 1", f.oracle.Calls())
	}
}

func TestChatbotRequiresAuthentication(t *testing.T) {
	f := newChatbotFixture(t, plan.TierPro)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chatbot", strings.NewReader(`{"message":"hi"}`))
	rec := httptest.NewRecorder()
	f.handler.Product(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if f.oracle.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0 without auth", f.oracle.Calls())
	}
}

func TestLandingChatIsPublic(t *testing.T) {
	f := newChatbotFixture(t, plan.TierFree)
	f.oracle.Responses = []string{"SEOgenix helps sites get cited by AI assistants."}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/landing-chat", strings.NewReader(`{"message":"What is this?"}`))
	rec := httptest.NewRecorder()
	f.handler.Landing(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if f.oracle.Calls() != 1 {
		t.Errorf("oracle calls = %d, want 1", f.oracle.Calls())
	}
}
