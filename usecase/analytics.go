package usecase

import (
	"context"
	"fmt"

	"github.com/Kadoinkus/chatbot-platform/config"
	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

// AnalyticsService fetches raw records through the session gateway once per
// request and runs the pure analytics core over them. It holds no state
// beyond its collaborators and is safe to share across requests.
type AnalyticsService struct {
	gateway analytics.ISessionGateway
	pricing config.Pricing
}

func NewAnalyticsService(gateway analytics.ISessionGateway, pricing config.Pricing) *AnalyticsService {
	return &AnalyticsService{gateway: gateway, pricing: pricing}
}

// GetDashboard returns the aggregated KPIs for every assistant in scope.
func (s *AnalyticsService) GetDashboard(ctx context.Context, clientID string, filters analytics.SessionFilters) (*analytics.DashboardStats, error) {
	bundles, stats, assistants, err := s.buildBundles(ctx, clientID, filters)
	if err != nil {
		return nil, err
	}

	workspaces, err := s.gateway.GetWorkspacesForClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspaces: %w", err)
	}

	dashboard := &analytics.DashboardStats{
		Aggregated:      Aggregate(bundles, s.pricing),
		Stats:           stats,
		TotalWorkspaces: len(workspaces),
		TotalAssistants: len(assistants),
	}
	for _, a := range assistants {
		if a.Status == "active" {
			dashboard.ActiveAssistants++
		}
	}
	return dashboard, nil
}

// GetAssistantAnalytics returns one assistant's metrics and formula results.
func (s *AnalyticsService) GetAssistantAnalytics(ctx context.Context, clientID, assistantID string, filters analytics.SessionFilters) (*analytics.AssistantAnalytics, error) {
	assistants, err := s.gateway.GetAssistantsForClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assistants: %w", err)
	}

	var target *analytics.AssistantRef
	for i := range assistants {
		if assistants[i].ID == assistantID {
			target = &assistants[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("assistant %s not found", assistantID)
	}

	filters.AssistantIDs = []string{assistantID}
	sessions, err := s.gateway.GetSessionsForClient(ctx, clientID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	normalized, stats := NormalizeAssistantSessions(*target, sessions)
	bundle := BuildAssistantMetrics(*target, normalized, s.pricing)
	return s.toAnalytics(bundle, stats), nil
}

// CompareAssistants returns one analytics row per requested assistant plus
// the weighted rollup across the set.
func (s *AnalyticsService) CompareAssistants(ctx context.Context, clientID string, assistantIDs []string, filters analytics.SessionFilters) (*analytics.ComparisonResult, error) {
	filters.AssistantIDs = assistantIDs
	bundles, _, _, err := s.buildBundles(ctx, clientID, filters)
	if err != nil {
		return nil, err
	}

	result := &analytics.ComparisonResult{
		Aggregated: Aggregate(bundles, s.pricing),
	}
	for _, bundle := range bundles {
		result.Rows = append(result.Rows, s.toAnalytics(bundle, ToConversationStats(bundle.Sessions)))
	}
	return result, nil
}

// GetTimeSeries returns the date-aligned comparison series for one metric.
func (s *AnalyticsService) GetTimeSeries(ctx context.Context, clientID, metric string, filters analytics.SessionFilters) ([]analytics.TimeSeriesPoint, error) {
	bundles, _, _, err := s.buildBundles(ctx, clientID, filters)
	if err != nil {
		return nil, err
	}
	return BuildTimeSeries(bundles, metric), nil
}

// GetConversationStats returns the canonical stats over every session in
// scope, joined or not.
func (s *AnalyticsService) GetConversationStats(ctx context.Context, clientID string, filters analytics.SessionFilters) (analytics.ConversationStats, error) {
	_, stats, _, err := s.buildBundles(ctx, clientID, filters)
	return stats, err
}

// buildBundles fetches assistants and sessions once, normalizes, and groups
// sessions into one bundle per in-scope assistant. Assistants with zero
// sessions in the window still get a bundle; sessions with no matching
// assistant stay in the stats but belong to no bundle.
func (s *AnalyticsService) buildBundles(ctx context.Context, clientID string, filters analytics.SessionFilters) ([]*analytics.AssistantWithMetrics, analytics.ConversationStats, []analytics.AssistantRef, error) {
	assistants, err := s.gateway.GetAssistantsForClient(ctx, clientID)
	if err != nil {
		return nil, analytics.ConversationStats{}, nil, fmt.Errorf("failed to get assistants: %w", err)
	}

	sessions, err := s.gateway.GetSessionsForClient(ctx, clientID, filters)
	if err != nil {
		return nil, analytics.ConversationStats{}, nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	var inScope []analytics.AssistantRef
	for _, a := range assistants {
		if filters.Workspace != "" && filters.Workspace != analytics.ScopeAll && a.WorkspaceID != filters.Workspace {
			continue
		}
		if !filters.WantsAssistant(a.ID) {
			continue
		}
		inScope = append(inScope, a)
	}

	normalized, stats := NormalizeSessions(sessions, inScope)

	grouped := make(map[string][]analytics.NormalizedSession)
	for _, n := range normalized {
		if n.Assistant != nil {
			grouped[n.Assistant.ID] = append(grouped[n.Assistant.ID], n)
		}
	}

	bundles := make([]*analytics.AssistantWithMetrics, 0, len(inScope))
	for _, a := range inScope {
		bundles = append(bundles, BuildAssistantMetrics(a, grouped[a.ID], s.pricing))
	}
	return bundles, stats, inScope, nil
}

func (s *AnalyticsService) toAnalytics(bundle *analytics.AssistantWithMetrics, stats analytics.ConversationStats) *analytics.AssistantAnalytics {
	return &analytics.AssistantAnalytics{
		Metrics:       bundle,
		Stats:         stats,
		Resolution:    ResolutionBreakdown(bundle),
		Cost:          CostBreakdown(bundle, s.pricing),
		Handoffs:      HandoffCounts(bundle),
		ReturnRate:    ReturnRate(bundle),
		EasterEggRate: EasterEggRate(bundle),
		TopCountry:    TopCountry(bundle),
		TopLanguage:   TopLanguage(bundle),
		TopDevice:     TopDevice(bundle),
		TopBrowser:    TopBrowser(bundle),
	}
}
