package usecase

import (
	"context"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
	"github.com/Kadoinkus/chatbot-platform/domains/health"
)

type HealthService struct {
	gateway   analytics.ISessionGateway
	storeName string
}

func NewHealthService(gateway analytics.ISessionGateway, storeName string) *HealthService {
	return &HealthService{gateway: gateway, storeName: storeName}
}

// GetSystemHealth probes the session store and reports assistant counts.
func (s *HealthService) GetSystemHealth(ctx context.Context, clientID string) (*health.SystemHealth, error) {
	systemHealth := &health.SystemHealth{
		Status: "healthy",
		Store:  health.StoreHealth{Connected: true, Source: s.storeName},
	}

	assistants, err := s.gateway.GetAssistantsForClient(ctx, clientID)
	if err != nil {
		systemHealth.Status = "unhealthy"
		systemHealth.Store.Connected = false
		systemHealth.Store.Message = err.Error()
		return systemHealth, nil
	}

	systemHealth.TotalAssistants = len(assistants)
	for _, a := range assistants {
		if a.Status == "active" {
			systemHealth.ActiveAssistants++
		}
	}

	workspaces, err := s.gateway.GetWorkspacesForClient(ctx, clientID)
	if err != nil {
		systemHealth.Status = "degraded"
		systemHealth.Store.Message = err.Error()
		return systemHealth, nil
	}
	systemHealth.TotalWorkspaces = len(workspaces)

	return systemHealth, nil
}
