package store

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

// FallbackGateway composes two session gateways: it serves from the primary
// and falls back to the secondary when the primary errors or returns nothing
// for a client. Callers see one ISessionGateway and never learn which source
// answered.
type FallbackGateway struct {
	primary   analytics.ISessionGateway
	secondary analytics.ISessionGateway
}

func NewFallbackGateway(primary, secondary analytics.ISessionGateway) *FallbackGateway {
	return &FallbackGateway{primary: primary, secondary: secondary}
}

func (g *FallbackGateway) GetSessionsForClient(ctx context.Context, clientID string, filters analytics.SessionFilters) ([]analytics.RawSession, error) {
	sessions, err := g.primary.GetSessionsForClient(ctx, clientID, filters)
	if err != nil {
		logrus.Warnf("Primary session store failed for client %s, serving fallback: %v", clientID, err)
		return g.secondary.GetSessionsForClient(ctx, clientID, filters)
	}
	if len(sessions) == 0 {
		logrus.Warnf("Primary session store empty for client %s, serving fallback", clientID)
		return g.secondary.GetSessionsForClient(ctx, clientID, filters)
	}
	return sessions, nil
}

func (g *FallbackGateway) GetAssistantsForClient(ctx context.Context, clientID string) ([]analytics.AssistantRef, error) {
	assistants, err := g.primary.GetAssistantsForClient(ctx, clientID)
	if err != nil {
		logrus.Warnf("Primary assistant lookup failed for client %s, serving fallback: %v", clientID, err)
		return g.secondary.GetAssistantsForClient(ctx, clientID)
	}
	if len(assistants) == 0 {
		return g.secondary.GetAssistantsForClient(ctx, clientID)
	}
	return assistants, nil
}

func (g *FallbackGateway) GetWorkspacesForClient(ctx context.Context, clientID string) ([]analytics.Workspace, error) {
	workspaces, err := g.primary.GetWorkspacesForClient(ctx, clientID)
	if err != nil {
		logrus.Warnf("Primary workspace lookup failed for client %s, serving fallback: %v", clientID, err)
		return g.secondary.GetWorkspacesForClient(ctx, clientID)
	}
	if len(workspaces) == 0 {
		return g.secondary.GetWorkspacesForClient(ctx, clientID)
	}
	return workspaces, nil
}
