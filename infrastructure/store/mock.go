package store

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

// MockGateway serves a generated in-memory demo dataset. It backs local
// development and acts as the fallback source when the live store has nothing
// for a client.
type MockGateway struct {
	mu      sync.Mutex
	clients map[string]*mockDataset
}

type mockDataset struct {
	workspaces []analytics.Workspace
	assistants []analytics.AssistantRef
	sessions   []analytics.RawSession
}

func NewMockGateway() *MockGateway {
	return &MockGateway{clients: make(map[string]*mockDataset)}
}

func (g *MockGateway) GetSessionsForClient(ctx context.Context, clientID string, filters analytics.SessionFilters) ([]analytics.RawSession, error) {
	data := g.dataset(clientID)

	slugInScope := make(map[string]bool, len(data.assistants))
	for _, a := range data.assistants {
		if filters.Workspace != "" && filters.Workspace != analytics.ScopeAll && a.WorkspaceID != filters.Workspace {
			continue
		}
		if !filters.WantsAssistant(a.ID) {
			continue
		}
		slugInScope[a.Slug] = true
	}

	start, end := filters.Range(time.Now())
	var result []analytics.RawSession
	for _, s := range data.sessions {
		if !slugInScope[s.AssistantSlug] {
			continue
		}
		if !start.IsZero() && s.StartedAt.Before(start) {
			continue
		}
		if s.StartedAt.After(end) {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (g *MockGateway) GetAssistantsForClient(ctx context.Context, clientID string) ([]analytics.AssistantRef, error) {
	data := g.dataset(clientID)
	out := make([]analytics.AssistantRef, len(data.assistants))
	copy(out, data.assistants)
	return out, nil
}

func (g *MockGateway) GetWorkspacesForClient(ctx context.Context, clientID string) ([]analytics.Workspace, error) {
	data := g.dataset(clientID)
	out := make([]analytics.Workspace, len(data.workspaces))
	copy(out, data.workspaces)
	return out, nil
}

func (g *MockGateway) dataset(clientID string) *mockDataset {
	g.mu.Lock()
	defer g.mu.Unlock()

	if data, ok := g.clients[clientID]; ok {
		return data
	}
	data := generateDataset(clientID)
	g.clients[clientID] = data
	return data
}

var (
	mockCountries  = []string{"NL", "DE", "US", "FR", "GB"}
	mockLanguages  = []string{"en", "nl", "de", "fr"}
	mockDevices    = []string{"desktop", "mobile", "tablet"}
	mockBrowsers   = []string{"Chrome", "Safari", "Firefox", "Edge"}
	mockCategories = []string{"billing", "shipping", "returns", "product", "account"}
	mockSentiments = []string{analytics.SentimentPositive, analytics.SentimentNeutral, analytics.SentimentNegative}
	mockOutcomes   = []string{analytics.OutcomeSelfService, analytics.OutcomeURLHandoff, analytics.OutcomeEmailHandoff}
	mockQuestions  = []string{
		"Where is my order?",
		"How do I return an item?",
		"Do you ship internationally?",
		"Can I change my subscription?",
		"What are your opening hours?",
	}
)

// generateDataset builds 60 days of demo activity for a client. The generator
// is seeded from the client id so repeated fetches see the same numbers.
func generateDataset(clientID string) *mockDataset {
	var seed int64
	for _, c := range clientID {
		seed = seed*31 + int64(c)
	}
	rng := rand.New(rand.NewSource(seed))

	workspaces := []analytics.Workspace{
		{ID: "ws-support", Name: "Customer Support", ClientID: clientID, Plan: "pro"},
		{ID: "ws-sales", Name: "Sales", ClientID: clientID, Plan: "starter"},
	}
	assistants := []analytics.AssistantRef{
		{ID: "ast-mila", Name: "Mila", Slug: "mila", WorkspaceID: "ws-support", Status: "active", ClientID: clientID},
		{ID: "ast-otto", Name: "Otto", Slug: "otto", WorkspaceID: "ws-support", Status: "active", ClientID: clientID},
		{ID: "ast-nova", Name: "Nova", Slug: "nova", WorkspaceID: "ws-sales", Status: "paused", ClientID: clientID},
	}

	data := &mockDataset{workspaces: workspaces, assistants: assistants}
	now := time.Now()

	for _, a := range assistants {
		for day := 60; day >= 0; day-- {
			date := now.AddDate(0, 0, -day)
			count := 2 + rng.Intn(8)
			for i := 0; i < count; i++ {
				data.sessions = append(data.sessions, generateSession(rng, a.Slug, date))
			}
		}
	}
	return data
}

func generateSession(rng *rand.Rand, slug string, date time.Time) analytics.RawSession {
	started := time.Date(date.Year(), date.Month(), date.Day(), 8+rng.Intn(12), rng.Intn(60), 0, 0, date.Location())
	duration := float64(30 + rng.Intn(600))

	s := analytics.RawSession{
		ID:            uuid.New().String(),
		AssistantSlug: slug,
		UserID:        fmt.Sprintf("user-%s-%d", slug, rng.Intn(200)),
		Returning:     rng.Float64() < 0.3,
		StartedAt:     started,
		EndedAt:       started.Add(time.Duration(duration) * time.Second),
		MessageCount:  2 + rng.Intn(20),
		DurationSec:   duration,
		Country:       mockCountries[rng.Intn(len(mockCountries))],
		Device:        mockDevices[rng.Intn(len(mockDevices))],
		Language:      mockLanguages[rng.Intn(len(mockLanguages))],
		Browser:       mockBrowsers[rng.Intn(len(mockBrowsers))],
		Animations:    rng.Intn(5),
		Questions:     []string{mockQuestions[rng.Intn(len(mockQuestions))]},
	}
	if s.Animations > 0 && rng.Float64() < 0.2 {
		s.EasterEggs = 1 + rng.Intn(2)
	}
	if rng.Float64() < 0.1 {
		s.Unanswered = []string{mockQuestions[rng.Intn(len(mockQuestions))]}
	}

	// Roughly one in seven sessions has not been analyzed yet
	if rng.Intn(7) > 0 {
		resolution := analytics.ResolutionResolved
		switch rng.Intn(10) {
		case 0, 1:
			resolution = analytics.ResolutionPartial
		case 2:
			resolution = analytics.ResolutionUnresolved
		}
		s.Analysis = &analytics.Analysis{
			Category:         mockCategories[rng.Intn(len(mockCategories))],
			Sentiment:        mockSentiments[rng.Intn(len(mockSentiments))],
			ResolutionStatus: resolution,
			Escalated:        rng.Float64() < 0.08,
			SessionOutcome:   mockOutcomes[rng.Intn(len(mockOutcomes))],
			EngagementLevel:  "medium",
			ConversationType: "support",
			ChatTokens:       500 + rng.Intn(4000),
			AnalysisTokens:   100 + rng.Intn(500),
		}
	}
	return s
}
