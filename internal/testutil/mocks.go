package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/seogenix/backend/internal/domain/audit"
	"github.com/seogenix/backend/internal/domain/citation"
	"github.com/seogenix/backend/internal/domain/entity"
	"github.com/seogenix/backend/internal/domain/markup"
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/site"
	"github.com/seogenix/backend/internal/domain/summary"
	"github.com/seogenix/backend/internal/domain/usage"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/oracle"
	apperrors "github.com/seogenix/backend/internal/pkg/errors"
)

// MockUserRepository is an in-memory implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	Prefs       map[int64]*user.Preferences
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		Prefs:      make(map[int64]*user.Preferences),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, apperrors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, apperrors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) UpdateTier(ctx context.Context, id int64, tier string) error {
	u, ok := m.Users[id]
	if !ok {
		return apperrors.NotFound("User")
	}
	u.Tier = plan.Tier(tier)
	return nil
}

func (m *MockUserRepository) GetPreferences(ctx context.Context, userID int64) (*user.Preferences, error) {
	if p, ok := m.Prefs[userID]; ok {
		return p, nil
	}
	return &user.Preferences{UserID: userID, DismissedHints: []string{}}, nil
}

func (m *MockUserRepository) SavePreferences(ctx context.Context, p *user.Preferences) error {
	m.Prefs[p.UserID] = p
	return nil
}

// MockSiteRepository is an in-memory implementation of site.Repository
type MockSiteRepository struct {
	Sites       map[string]*site.Site
	Competitors map[string]*site.Competitor
	CreateError error
}

func NewMockSiteRepository() *MockSiteRepository {
	return &MockSiteRepository{
		Sites:       make(map[string]*site.Site),
		Competitors: make(map[string]*site.Competitor),
	}
}

func (m *MockSiteRepository) Create(ctx context.Context, s *site.Site) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Sites[s.ID] = s
	return nil
}

func (m *MockSiteRepository) GetByID(ctx context.Context, userID int64, id string) (*site.Site, error) {
	s, ok := m.Sites[id]
	if !ok || s.UserID != userID {
		return nil, apperrors.NotFound("Site")
	}
	return s, nil
}

func (m *MockSiteRepository) List(ctx context.Context, userID int64) ([]*site.Site, error) {
	var result []*site.Site
	for _, s := range m.Sites {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockSiteRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var n int64
	for _, s := range m.Sites {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *MockSiteRepository) Delete(ctx context.Context, userID int64, id string) error {
	s, ok := m.Sites[id]
	if !ok || s.UserID != userID {
		return apperrors.NotFound("Site")
	}
	delete(m.Sites, id)
	return nil
}

func (m *MockSiteRepository) CreateCompetitor(ctx context.Context, c *site.Competitor) error {
	m.Competitors[c.ID] = c
	return nil
}

func (m *MockSiteRepository) GetCompetitor(ctx context.Context, userID int64, id string) (*site.Competitor, error) {
	c, ok := m.Competitors[id]
	if !ok || c.UserID != userID {
		return nil, apperrors.NotFound("Competitor")
	}
	return c, nil
}

func (m *MockSiteRepository) ListCompetitors(ctx context.Context, userID int64, siteID string) ([]*site.Competitor, error) {
	var result []*site.Competitor
	for _, c := range m.Competitors {
		if c.UserID == userID && c.SiteID == siteID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockSiteRepository) CountCompetitors(ctx context.Context, userID int64, siteID string) (int64, error) {
	var n int64
	for _, c := range m.Competitors {
		if c.UserID == userID && c.SiteID == siteID {
			n++
		}
	}
	return n, nil
}

func (m *MockSiteRepository) DeleteCompetitor(ctx context.Context, userID int64, id string) error {
	c, ok := m.Competitors[id]
	if !ok || c.UserID != userID {
		return apperrors.NotFound("Competitor")
	}
	delete(m.Competitors, id)
	return nil
}

func (m *MockSiteRepository) ListAll(ctx context.Context) ([]*site.Site, error) {
	var result []*site.Site
	for _, s := range m.Sites {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockUsageRepository is an in-memory implementation of usage.Repository
type MockUsageRepository struct {
	Records map[int64]*usage.Usage
	Now     func() time.Time
}

func NewMockUsageRepository() *MockUsageRepository {
	return &MockUsageRepository{
		Records: make(map[int64]*usage.Usage),
		Now:     time.Now,
	}
}

func (m *MockUsageRepository) Get(ctx context.Context, userID int64) (*usage.Usage, error) {
	if u, ok := m.Records[userID]; ok {
		return u, nil
	}
	now := m.Now().UTC()
	u := &usage.Usage{
		UserID:      userID,
		PeriodStart: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
	m.Records[userID] = u
	return u, nil
}

func (m *MockUsageRepository) Save(ctx context.Context, u *usage.Usage) error {
	cp := *u
	m.Records[u.UserID] = &cp
	return nil
}

func (m *MockUsageRepository) Increment(ctx context.Context, userID int64, counter usage.Counter) error {
	u, ok := m.Records[userID]
	if !ok {
		return apperrors.NotFound("Usage record")
	}
	switch counter {
	case usage.CounterCitations:
		u.CitationsUsed++
	case usage.CounterContentGenerations:
		u.ContentGenerations++
	case usage.CounterContentOptimizations:
		u.ContentOptimizations++
	case usage.CounterPromptSuggestions:
		u.PromptSuggestions++
	case usage.CounterAudits:
		u.AuditsThisMonth++
	}
	return nil
}

// MockAuditRepository is an in-memory implementation of audit.Repository
type MockAuditRepository struct {
	Audits           []*audit.Audit
	CompetitorAudits []*audit.CompetitorAudit
	NextID           int64
	CreateError      error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{NextID: 1}
}

func (m *MockAuditRepository) Create(ctx context.Context, a *audit.Audit) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	a.ID = m.NextID
	m.NextID++
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	m.Audits = append(m.Audits, a)
	return nil
}

func (m *MockAuditRepository) ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*audit.Audit, error) {
	var result []*audit.Audit
	for i := len(m.Audits) - 1; i >= 0; i-- {
		a := m.Audits[i]
		if a.UserID == userID && a.SiteID == siteID {
			result = append(result, a)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (m *MockAuditRepository) Latest(ctx context.Context, userID int64, siteID string) (*audit.Audit, error) {
	list, _ := m.ListBySite(ctx, userID, siteID, 1)
	if len(list) == 0 {
		return nil, apperrors.NotFound("Audit")
	}
	return list[0], nil
}

func (m *MockAuditRepository) CreateCompetitorAudit(ctx context.Context, a *audit.CompetitorAudit) error {
	a.ID = m.NextID
	m.NextID++
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	m.CompetitorAudits = append(m.CompetitorAudits, a)
	return nil
}

func (m *MockAuditRepository) ListByCompetitor(ctx context.Context, userID int64, competitorID string, limit int) ([]*audit.CompetitorAudit, error) {
	var result []*audit.CompetitorAudit
	for i := len(m.CompetitorAudits) - 1; i >= 0; i-- {
		a := m.CompetitorAudits[i]
		if a.UserID == userID && a.CompetitorID == competitorID {
			result = append(result, a)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// MockCitationRepository is an in-memory implementation of citation.Repository
type MockCitationRepository struct {
	Citations []*citation.Citation
}

func NewMockCitationRepository() *MockCitationRepository {
	return &MockCitationRepository{}
}

func (m *MockCitationRepository) CreateBatch(ctx context.Context, citations []*citation.Citation) error {
	m.Citations = append(m.Citations, citations...)
	return nil
}

func (m *MockCitationRepository) ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*citation.Citation, error) {
	var result []*citation.Citation
	for i := len(m.Citations) - 1; i >= 0; i-- {
		c := m.Citations[i]
		if c.UserID == userID && c.SiteID == siteID {
			result = append(result, c)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// MockEntityRepository is an in-memory implementation of entity.Repository
type MockEntityRepository struct {
	Entities map[string][]*entity.Entity
}

func NewMockEntityRepository() *MockEntityRepository {
	return &MockEntityRepository{Entities: make(map[string][]*entity.Entity)}
}

func (m *MockEntityRepository) Replace(ctx context.Context, userID int64, siteID string, entities []*entity.Entity) error {
	m.Entities[siteID] = entities
	return nil
}

func (m *MockEntityRepository) ListBySite(ctx context.Context, userID int64, siteID string) ([]*entity.Entity, error) {
	return m.Entities[siteID], nil
}

// MockSummaryRepository is an in-memory implementation of summary.Repository
type MockSummaryRepository struct {
	Summaries []*summary.Summary
	NextID    int64
}

func NewMockSummaryRepository() *MockSummaryRepository {
	return &MockSummaryRepository{NextID: 1}
}

func (m *MockSummaryRepository) Create(ctx context.Context, s *summary.Summary) error {
	s.ID = m.NextID
	m.NextID++
	m.Summaries = append(m.Summaries, s)
	return nil
}

func (m *MockSummaryRepository) ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*summary.Summary, error) {
	var result []*summary.Summary
	for i := len(m.Summaries) - 1; i >= 0; i-- {
		s := m.Summaries[i]
		if s.UserID == userID && s.SiteID == siteID {
			result = append(result, s)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// MockMarkupRepository is an in-memory implementation of markup.Repository
type MockMarkupRepository struct {
	Schemas []*markup.Schema
	NextID  int64
}

func NewMockMarkupRepository() *MockMarkupRepository {
	return &MockMarkupRepository{NextID: 1}
}

func (m *MockMarkupRepository) Create(ctx context.Context, s *markup.Schema) error {
	s.ID = m.NextID
	m.NextID++
	m.Schemas = append(m.Schemas, s)
	return nil
}

func (m *MockMarkupRepository) ListBySite(ctx context.Context, userID int64, siteID string, limit int) ([]*markup.Schema, error) {
	var result []*markup.Schema
	for i := len(m.Schemas) - 1; i >= 0; i-- {
		s := m.Schemas[i]
		if s.UserID == userID && s.SiteID == siteID {
			result = append(result, s)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// MockOracle is a scripted oracle.Oracle. It returns Responses in order,
// repeating the last one when exhausted, and records every request so tests
// can assert on call counts and prompts.
type MockOracle struct {
	Responses []string
	Err       error
	Requests  []oracle.Request
}

func (m *MockOracle) Complete(ctx context.Context, req oracle.Request) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	i := len(m.Requests) - 1
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	return m.Responses[i], nil
}

// Calls reports how many times the oracle was invoked.
func (m *MockOracle) Calls() int {
	return len(m.Requests)
}

// StubFetcher is a canned fetch.PageFetcher.
type StubFetcher struct {
	Content string
	Err     error
	Fetched []string
}

func (f *StubFetcher) Page(ctx context.Context, url string, budget int) (string, error) {
	f.Fetched = append(f.Fetched, url)
	if f.Err != nil {
		return "", f.Err
	}
	if budget > 0 && len(f.Content) > budget {
		return f.Content[:budget], nil
	}
	return f.Content, nil
}
