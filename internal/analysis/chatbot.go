package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/seogenix/backend/internal/domain/audit"
	"github.com/seogenix/backend/internal/domain/citation"
	"github.com/seogenix/backend/internal/domain/entity"
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/site"
	"github.com/seogenix/backend/internal/oracle"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
)

const chatNavigationSystem = "You are the in-app assistant for SEOgenix, an AI visibility platform. Help the user navigate the product: where features live, what each tool does and how to use it. You cannot run analyses or discuss the user's own data. Keep answers short and friendly."

const chatAnalysisSystem = "You are the in-app assistant for SEOgenix, an AI visibility platform. You help the user understand their own visibility data and plan improvements. Use the account context provided. Keep answers concrete and actionable."

const chatLandingSystem = "You are the assistant on the SEOgenix marketing site. Answer questions about what SEOgenix does, its features and its plans. Be helpful and concise; do not invent pricing beyond the published plans. Politely decline questions unrelated to the product."

// UpsellMessage is returned to accounts whose plan has no chatbot access.
const UpsellMessage = "The AI assistant is available on paid plans. Upgrade to Core or higher to ask questions about the product, or to Pro for answers grounded in your own visibility data."

// basicUpgradeMessage is returned when a basic-level account asks for
// analysis the plan does not include.
const basicUpgradeMessage = "Analyzing your data is a Pro feature. On your current plan I can help you find your way around SEOgenix. Upgrade to Pro to ask about your own scores, citations and competitors."

// analysisKeywords gate basic-level chat. A message containing any of these
// asks for data analysis rather than navigation help and is intercepted
// before the oracle is called.
var analysisKeywords = []string{
	"analyze", "analyse", "audit my", "my score", "my site", "my data",
	"optimize", "optimise", "improve my", "my citations", "my competitors",
	"my ranking", "my visibility",
}

// basicSuggestedQuestions accompany the upgrade message so the user has
// somewhere to go next.
var basicSuggestedQuestions = []string{
	"Where do I add a new site?",
	"What does the AI visibility audit measure?",
	"How do I generate schema markup?",
	"What is included in the Pro plan?",
}

// ChatContext is the stored-data snapshot injected into full-level chats.
type ChatContext struct {
	Sites       int `json:"sites"`
	Audits      int `json:"audits"`
	Citations   int `json:"citations"`
	Entities    int `json:"entities"`
	Competitors int `json:"competitors"`
}

// ChatReply is one chatbot answer.
type ChatReply struct {
	Response           string       `json:"response"`
	SubscriptionLevel  string       `json:"subscription_level,omitempty"`
	SuggestedQuestions []string     `json:"suggested_questions,omitempty"`
	ContextUsed        *ChatContext `json:"context_used,omitempty"`
}

// ChatbotService answers product and landing-page chat messages. Access
// level decisions happen here, before any oracle call.
type ChatbotService struct {
	pipeline
	sites     site.Repository
	audits    audit.Repository
	citations citation.Repository
	entities  entity.Repository
}

func NewChatbotService(o oracle.Oracle, sites site.Repository, audits audit.Repository, citations citation.Repository, entities entity.Repository, log *logger.Logger) *ChatbotService {
	return &ChatbotService{
		pipeline:  pipeline{oracle: o, logger: log},
		sites:     sites,
		audits:    audits,
		citations: citations,
		entities:  entities,
	}
}

// Product answers an authenticated in-app chat message according to the
// account's chatbot level.
func (s *ChatbotService) Product(ctx context.Context, userID int64, level plan.ChatbotLevel, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.BadRequest("message is required")
	}

	switch level {
	case plan.ChatbotNone:
		return nil, errors.FeatureLocked("ai_chatbot").WithFriendly(UpsellMessage)
	case plan.ChatbotBasic:
		return s.basicChat(ctx, message)
	case plan.ChatbotFull:
		return s.fullChat(ctx, userID, message)
	default:
		return nil, errors.FeatureLocked("ai_chatbot").WithFriendly(UpsellMessage)
	}
}

func (s *ChatbotService) basicChat(ctx context.Context, message string) (*ChatReply, error) {
	lower := strings.ToLower(message)
	for _, kw := range analysisKeywords {
		if strings.Contains(lower, kw) {
			return &ChatReply{
				Response:           basicUpgradeMessage,
				SubscriptionLevel:  string(plan.ChatbotBasic),
				SuggestedQuestions: basicSuggestedQuestions,
			}, nil
		}
	}

	raw, err := s.complete(ctx, "chatbot", oracle.Request{
		System:      chatNavigationSystem,
		Prompt:      message,
		MaxTokens:   400,
		Temperature: tempChat,
	})
	if err != nil {
		return nil, errors.OracleError(err)
	}
	metrics.RecordOracleRequest("chatbot", metrics.OutcomeOK, 0)
	return &ChatReply{
		Response:          strings.TrimSpace(raw),
		SubscriptionLevel: string(plan.ChatbotBasic),
	}, nil
}

func (s *ChatbotService) fullChat(ctx context.Context, userID int64, message string) (*ChatReply, error) {
	cc := s.loadContext(ctx, userID)

	prompt := fmt.Sprintf(`Account context:
- tracked sites: %d
- audits on record: %d
- citations detected: %d
- entities mapped: %d
- competitors tracked: %d

User message: %s`, cc.Sites, cc.Audits, cc.Citations, cc.Entities, cc.Competitors, message)

	raw, err := s.complete(ctx, "chatbot", oracle.Request{
		System:      chatAnalysisSystem,
		Prompt:      prompt,
		MaxTokens:   600,
		Temperature: tempChat,
	})
	if err != nil {
		return nil, errors.OracleError(err)
	}
	metrics.RecordOracleRequest("chatbot", metrics.OutcomeOK, 0)
	return &ChatReply{
		Response:          strings.TrimSpace(raw),
		SubscriptionLevel: string(plan.ChatbotFull),
		ContextUsed:       cc,
	}, nil
}

// loadContext gathers account counts for the analysis-framed prompt. Lookup
// failures degrade to zero counts rather than failing the chat.
func (s *ChatbotService) loadContext(ctx context.Context, userID int64) *ChatContext {
	cc := &ChatContext{}
	sites, err := s.sites.List(ctx, userID)
	if err != nil {
		s.logger.WithError(err).Warn("Chat context site lookup failed")
		return cc
	}
	cc.Sites = len(sites)
	for _, st := range sites {
		if audits, err := s.audits.ListBySite(ctx, userID, st.ID, 50); err == nil {
			cc.Audits += len(audits)
		}
		if cits, err := s.citations.ListBySite(ctx, userID, st.ID, 200); err == nil {
			cc.Citations += len(cits)
		}
		if ents, err := s.entities.ListBySite(ctx, userID, st.ID); err == nil {
			cc.Entities += len(ents)
		}
		if comps, err := s.sites.ListCompetitors(ctx, userID, st.ID); err == nil {
			cc.Competitors += len(comps)
		}
	}
	return cc
}

// Landing answers an unauthenticated marketing-site question.
func (s *ChatbotService) Landing(ctx context.Context, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.BadRequest("message is required")
	}
	raw, err := s.complete(ctx, "landing_chat", oracle.Request{
		System:      chatLandingSystem,
		Prompt:      message,
		MaxTokens:   400,
		Temperature: tempChat,
	})
	if err != nil {
		return nil, errors.OracleError(err)
	}
	metrics.RecordOracleRequest("landing_chat", metrics.OutcomeOK, 0)
	return &ChatReply{Response: strings.TrimSpace(raw)}, nil
}
