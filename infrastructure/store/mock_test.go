package store

import (
	"context"
	"testing"
	"time"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

func TestMockGatewayServesConsistentDataset(t *testing.T) {
	gateway := NewMockGateway()
	ctx := context.Background()

	assistants, err := gateway.GetAssistantsForClient(ctx, "client-1")
	if err != nil {
		t.Fatalf("GetAssistantsForClient: %v", err)
	}
	if len(assistants) == 0 {
		t.Fatal("expected demo assistants")
	}

	first, err := gateway.GetSessionsForClient(ctx, "client-1", analytics.SessionFilters{Period: analytics.Period30Days})
	if err != nil {
		t.Fatalf("GetSessionsForClient: %v", err)
	}
	second, _ := gateway.GetSessionsForClient(ctx, "client-1", analytics.SessionFilters{Period: analytics.Period30Days})

	if len(first) == 0 {
		t.Fatal("expected demo sessions in the last 30 days")
	}
	if len(first) != len(second) {
		t.Errorf("repeated fetches disagree: %d vs %d", len(first), len(second))
	}
}

func TestMockGatewayWorkspaceScope(t *testing.T) {
	gateway := NewMockGateway()
	ctx := context.Background()

	workspaces, err := gateway.GetWorkspacesForClient(ctx, "client-1")
	if err != nil || len(workspaces) < 2 {
		t.Fatalf("expected at least 2 demo workspaces, got %v, %v", workspaces, err)
	}

	scoped, err := gateway.GetSessionsForClient(ctx, "client-1", analytics.SessionFilters{
		Period:    analytics.Period30Days,
		Workspace: workspaces[0].ID,
	})
	if err != nil {
		t.Fatalf("GetSessionsForClient: %v", err)
	}
	all, _ := gateway.GetSessionsForClient(ctx, "client-1", analytics.SessionFilters{Period: analytics.Period30Days})

	if len(scoped) == 0 || len(scoped) >= len(all) {
		t.Errorf("workspace scope did not narrow the set: %d of %d", len(scoped), len(all))
	}

	assistants, _ := gateway.GetAssistantsForClient(ctx, "client-1")
	slugs := map[string]string{}
	for _, a := range assistants {
		slugs[a.Slug] = a.WorkspaceID
	}
	for _, s := range scoped {
		if slugs[s.AssistantSlug] != workspaces[0].ID {
			t.Fatalf("session %s leaked from workspace %s", s.ID, slugs[s.AssistantSlug])
		}
	}
}

func TestMockGatewayAssistantScope(t *testing.T) {
	gateway := NewMockGateway()
	ctx := context.Background()

	assistants, _ := gateway.GetAssistantsForClient(ctx, "client-1")
	target := assistants[0]

	scoped, err := gateway.GetSessionsForClient(ctx, "client-1", analytics.SessionFilters{
		Period:       analytics.Period7Days,
		AssistantIDs: []string{target.ID},
	})
	if err != nil {
		t.Fatalf("GetSessionsForClient: %v", err)
	}
	if len(scoped) == 0 {
		t.Fatal("expected sessions for the scoped assistant")
	}
	for _, s := range scoped {
		if s.AssistantSlug != target.Slug {
			t.Fatalf("session %s belongs to %s, not %s", s.ID, s.AssistantSlug, target.Slug)
		}
	}
}

func TestMockGatewayPeriodWindow(t *testing.T) {
	gateway := NewMockGateway()
	ctx := context.Background()

	sessions, err := gateway.GetSessionsForClient(ctx, "client-1", analytics.SessionFilters{Period: analytics.Period7Days})
	if err != nil {
		t.Fatalf("GetSessionsForClient: %v", err)
	}

	cutoff := time.Now().AddDate(0, 0, -7)
	for _, s := range sessions {
		if s.StartedAt.Before(cutoff) {
			t.Fatalf("session %s outside the 7 day window: %s", s.ID, s.StartedAt)
		}
	}
}
