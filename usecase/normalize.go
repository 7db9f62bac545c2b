package usecase

import (
	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

// ToConversationStats is the single canonical stats formula. Every
// normalization entry point returns exactly its output; nothing else in the
// codebase computes these numbers.
func ToConversationStats(sessions []analytics.NormalizedSession) analytics.ConversationStats {
	stats := analytics.ConversationStats{TotalSessions: len(sessions)}
	if len(sessions) == 0 {
		return stats
	}

	var totalDuration float64
	for _, s := range sessions {
		totalDuration += s.DurationSec
		if s.Analysis == nil {
			continue
		}
		if s.Analysis.ResolutionStatus == analytics.ResolutionResolved {
			stats.Resolved++
		}
		switch s.Analysis.Sentiment {
		case analytics.SentimentPositive:
			stats.Positive++
		case analytics.SentimentNeutral:
			stats.Neutral++
		case analytics.SentimentNegative:
			stats.Negative++
		}
	}

	stats.ResolutionRate = float64(stats.Resolved) / float64(stats.TotalSessions) * 100
	stats.AvgDurationSec = totalDuration / float64(stats.TotalSessions)
	return stats
}

// NormalizeSessions joins each session to its assistant by slug. Sessions with
// no matching assistant keep a nil assistant reference and are never dropped.
func NormalizeSessions(sessions []analytics.RawSession, assistants []analytics.AssistantRef) ([]analytics.NormalizedSession, analytics.ConversationStats) {
	bySlug := make(map[string]*analytics.AssistantRef, len(assistants))
	for i := range assistants {
		bySlug[assistants[i].Slug] = &assistants[i]
	}

	normalized := make([]analytics.NormalizedSession, 0, len(sessions))
	for _, s := range sessions {
		normalized = append(normalized, analytics.NormalizedSession{
			RawSession: s,
			Assistant:  bySlug[s.AssistantSlug],
		})
	}

	return normalized, ToConversationStats(normalized)
}

// NormalizeAssistantSessions attaches one fixed assistant to every session
// (assistant-scoped views).
func NormalizeAssistantSessions(assistant analytics.AssistantRef, sessions []analytics.RawSession) ([]analytics.NormalizedSession, analytics.ConversationStats) {
	normalized := make([]analytics.NormalizedSession, 0, len(sessions))
	for _, s := range sessions {
		normalized = append(normalized, analytics.NormalizedSession{
			RawSession: s,
			Assistant:  &assistant,
		})
	}

	return normalized, ToConversationStats(normalized)
}

// NormalizeAssistantMetrics flattens per-assistant bundles into one session
// list. Each bundle's own identity is attached; fields the bundle lacks
// (workspace) are filled from the assistant directory when available. A
// session that already carries an assistant keeps it.
func NormalizeAssistantMetrics(bundles []analytics.AssistantWithMetrics, assistants []analytics.AssistantRef) ([]analytics.NormalizedSession, analytics.ConversationStats) {
	byID := make(map[string]analytics.AssistantRef, len(assistants))
	for _, a := range assistants {
		byID[a.ID] = a
	}

	var normalized []analytics.NormalizedSession
	for _, bundle := range bundles {
		identity := bundle.Assistant
		if identity.WorkspaceID == "" {
			if full, ok := byID[identity.ID]; ok {
				identity.WorkspaceID = full.WorkspaceID
				if identity.ClientID == "" {
					identity.ClientID = full.ClientID
				}
			}
		}
		ref := identity
		for _, s := range bundle.Sessions {
			if s.Assistant == nil {
				s.Assistant = &ref
			}
			normalized = append(normalized, s)
		}
	}

	return normalized, ToConversationStats(normalized)
}
