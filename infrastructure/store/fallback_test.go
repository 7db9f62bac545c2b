package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

type staticGateway struct {
	sessions   []analytics.RawSession
	assistants []analytics.AssistantRef
	workspaces []analytics.Workspace
	err        error
	calls      int
}

func (g *staticGateway) GetSessionsForClient(ctx context.Context, clientID string, filters analytics.SessionFilters) ([]analytics.RawSession, error) {
	g.calls++
	return g.sessions, g.err
}

func (g *staticGateway) GetAssistantsForClient(ctx context.Context, clientID string) ([]analytics.AssistantRef, error) {
	g.calls++
	return g.assistants, g.err
}

func (g *staticGateway) GetWorkspacesForClient(ctx context.Context, clientID string) ([]analytics.Workspace, error) {
	g.calls++
	return g.workspaces, g.err
}

func demoSessions() []analytics.RawSession {
	return []analytics.RawSession{{ID: "s1", AssistantSlug: "mila", StartedAt: time.Now()}}
}

func TestFallbackServesPrimaryWhenPopulated(t *testing.T) {
	primary := &staticGateway{sessions: demoSessions()}
	secondary := &staticGateway{sessions: []analytics.RawSession{{ID: "mock"}}}
	gateway := NewFallbackGateway(primary, secondary)

	sessions, err := gateway.GetSessionsForClient(context.Background(), "client-1", analytics.SessionFilters{})
	if err != nil {
		t.Fatalf("GetSessionsForClient: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "s1" {
		t.Errorf("expected primary data, got %+v", sessions)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary should not be touched, got %d calls", secondary.calls)
	}
}

func TestFallbackOnPrimaryError(t *testing.T) {
	primary := &staticGateway{err: errors.New("connection refused")}
	secondary := &staticGateway{sessions: demoSessions()}
	gateway := NewFallbackGateway(primary, secondary)

	sessions, err := gateway.GetSessionsForClient(context.Background(), "client-1", analytics.SessionFilters{})
	if err != nil {
		t.Fatalf("expected fallback to absorb primary error, got %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("expected secondary data, got %+v", sessions)
	}
}

func TestFallbackOnEmptyPrimary(t *testing.T) {
	primary := &staticGateway{}
	secondary := &staticGateway{sessions: demoSessions()}
	gateway := NewFallbackGateway(primary, secondary)

	sessions, err := gateway.GetSessionsForClient(context.Background(), "client-1", analytics.SessionFilters{})
	if err != nil {
		t.Fatalf("GetSessionsForClient: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("expected secondary data on empty primary, got %+v", sessions)
	}
}

func TestFallbackAssistantsAndWorkspaces(t *testing.T) {
	primary := &staticGateway{err: errors.New("down")}
	secondary := &staticGateway{
		assistants: []analytics.AssistantRef{{ID: "ast-1"}},
		workspaces: []analytics.Workspace{{ID: "ws-1"}},
	}
	gateway := NewFallbackGateway(primary, secondary)

	assistants, err := gateway.GetAssistantsForClient(context.Background(), "client-1")
	if err != nil || len(assistants) != 1 {
		t.Errorf("expected fallback assistants, got %v, %v", assistants, err)
	}
	workspaces, err := gateway.GetWorkspacesForClient(context.Background(), "client-1")
	if err != nil || len(workspaces) != 1 {
		t.Errorf("expected fallback workspaces, got %v, %v", workspaces, err)
	}
}
