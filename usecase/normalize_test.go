package usecase

import (
	"reflect"
	"testing"
	"time"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

func testAssistants() []analytics.AssistantRef {
	return []analytics.AssistantRef{
		{ID: "ast-1", Name: "Mila", Slug: "mila", WorkspaceID: "ws-1", Status: "active", ClientID: "client-1"},
		{ID: "ast-2", Name: "Otto", Slug: "otto", WorkspaceID: "ws-1", Status: "active", ClientID: "client-1"},
	}
}

func rawSession(slug string, mutate func(*analytics.RawSession)) analytics.RawSession {
	s := analytics.RawSession{
		ID:            "sess-" + slug,
		AssistantSlug: slug,
		UserID:        "user-1",
		StartedAt:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		MessageCount:  4,
		DurationSec:   120,
	}
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func analyzed(sentiment, resolution string) func(*analytics.RawSession) {
	return func(s *analytics.RawSession) {
		s.Analysis = &analytics.Analysis{Sentiment: sentiment, ResolutionStatus: resolution}
	}
}

func TestNormalizeSessionsJoinsBySlug(t *testing.T) {
	sessions := []analytics.RawSession{
		rawSession("mila", nil),
		rawSession("otto", nil),
		rawSession("ghost", nil), // no matching assistant
	}

	normalized, stats := NormalizeSessions(sessions, testAssistants())

	if len(normalized) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(normalized))
	}
	if normalized[0].Assistant == nil || normalized[0].Assistant.ID != "ast-1" {
		t.Errorf("expected mila session joined to ast-1, got %+v", normalized[0].Assistant)
	}
	if normalized[1].Assistant == nil || normalized[1].Assistant.ID != "ast-2" {
		t.Errorf("expected otto session joined to ast-2, got %+v", normalized[1].Assistant)
	}
	if normalized[2].Assistant != nil {
		t.Errorf("expected unjoinable session to keep nil assistant, got %+v", normalized[2].Assistant)
	}
	if stats.TotalSessions != 3 {
		t.Errorf("expected unjoinable session counted in stats, got total %d", stats.TotalSessions)
	}
}

func TestNormalizeSessionsRoundTripStats(t *testing.T) {
	sessions := []analytics.RawSession{
		rawSession("mila", analyzed(analytics.SentimentPositive, analytics.ResolutionResolved)),
		rawSession("mila", analyzed(analytics.SentimentNegative, analytics.ResolutionUnresolved)),
		rawSession("otto", nil),
	}

	normalized, stats := NormalizeSessions(sessions, testAssistants())

	if direct := ToConversationStats(normalized); !reflect.DeepEqual(stats, direct) {
		t.Errorf("adapter stats drifted from canonical formula:\n adapter: %+v\n direct:  %+v", stats, direct)
	}
}

func TestNormalizeAssistantSessionsAttachesFixedAssistant(t *testing.T) {
	target := testAssistants()[0]
	sessions := []analytics.RawSession{rawSession("mila", nil), rawSession("mila", nil)}

	normalized, stats := NormalizeAssistantSessions(target, sessions)

	for i, n := range normalized {
		if n.Assistant == nil || n.Assistant.ID != target.ID {
			t.Errorf("session %d: expected assistant %s attached, got %+v", i, target.ID, n.Assistant)
		}
	}
	if stats.TotalSessions != 2 {
		t.Errorf("expected 2 sessions, got %d", stats.TotalSessions)
	}
}

func TestNormalizeAssistantMetricsFlattensAndFillsWorkspace(t *testing.T) {
	assistants := testAssistants()
	bundles := []analytics.AssistantWithMetrics{
		{
			// Bundle identity lacks workspace; must be filled from the directory
			Assistant: analytics.AssistantRef{ID: "ast-1", Name: "Mila", Slug: "mila"},
			Sessions: []analytics.NormalizedSession{
				{RawSession: rawSession("mila", nil)},
				{RawSession: rawSession("mila", nil)},
			},
		},
		{
			Assistant: assistants[1],
			Sessions: []analytics.NormalizedSession{
				{RawSession: rawSession("otto", nil)},
			},
		},
	}

	normalized, stats := NormalizeAssistantMetrics(bundles, assistants)

	if len(normalized) != 3 {
		t.Fatalf("expected 3 flattened sessions, got %d", len(normalized))
	}
	if normalized[0].Assistant == nil || normalized[0].Assistant.WorkspaceID != "ws-1" {
		t.Errorf("expected workspace filled from directory, got %+v", normalized[0].Assistant)
	}
	if stats.TotalSessions != 3 {
		t.Errorf("expected stats over all flattened sessions, got %d", stats.TotalSessions)
	}
}

func TestToConversationStatsEmptyInput(t *testing.T) {
	stats := ToConversationStats(nil)

	if !reflect.DeepEqual(stats, analytics.ConversationStats{}) {
		t.Errorf("expected zero-valued stats on empty input, got %+v", stats)
	}
}

func TestToConversationStatsMissingAnalysis(t *testing.T) {
	sessions := []analytics.NormalizedSession{
		{RawSession: rawSession("mila", analyzed(analytics.SentimentPositive, analytics.ResolutionResolved))},
		{RawSession: rawSession("mila", nil)}, // unanalyzed: no sentiment bucket, still in totals
	}

	stats := ToConversationStats(sessions)

	if stats.TotalSessions != 2 {
		t.Errorf("expected 2 total sessions, got %d", stats.TotalSessions)
	}
	if stats.Positive != 1 || stats.Neutral != 0 || stats.Negative != 0 {
		t.Errorf("unanalyzed session leaked into sentiment tally: %+v", stats)
	}
	if stats.ResolutionRate != 50 {
		t.Errorf("expected resolution rate 50, got %v", stats.ResolutionRate)
	}
}
