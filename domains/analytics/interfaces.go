package analytics

import (
	"context"
	"time"
)

// Period presets accepted by SessionFilters
const (
	PeriodToday  = "today"
	Period7Days  = "7days"
	Period30Days = "30days"
	Period90Days = "90days"
)

// ScopeAll selects every workspace or assistant of a client.
const ScopeAll = "all"

// SessionFilters scopes a session query. Period presets take precedence over
// the explicit Start/End pair when both are set.
type SessionFilters struct {
	Period       string    `json:"period,omitempty"`
	Start        time.Time `json:"start,omitempty"`
	End          time.Time `json:"end,omitempty"`
	Workspace    string    `json:"workspace,omitempty"`  // "all" or one workspace id
	AssistantIDs []string  `json:"assistants,omitempty"` // empty means all
}

// Range resolves the filter to a concrete [start, end) window relative to now.
// A zero return start means "all time".
func (f SessionFilters) Range(now time.Time) (time.Time, time.Time) {
	switch f.Period {
	case PeriodToday:
		return now.Truncate(24 * time.Hour), now
	case Period7Days:
		return now.AddDate(0, 0, -7), now
	case Period30Days:
		return now.AddDate(0, 0, -30), now
	case Period90Days:
		return now.AddDate(0, 0, -90), now
	}
	if !f.Start.IsZero() || !f.End.IsZero() {
		end := f.End
		if end.IsZero() {
			end = now
		}
		return f.Start, end
	}
	return time.Time{}, now
}

// WantsAssistant reports whether the filter's assistant scope includes id.
func (f SessionFilters) WantsAssistant(id string) bool {
	if len(f.AssistantIDs) == 0 {
		return true
	}
	for _, want := range f.AssistantIDs {
		if want == ScopeAll || want == id {
			return true
		}
	}
	return false
}

// ISessionGateway supplies raw sessions and assistant/workspace metadata for a
// client. Implementations may be a live database, the demo dataset, or a
// fallback composition of both; the analytics core never knows which.
type ISessionGateway interface {
	GetSessionsForClient(ctx context.Context, clientID string, filters SessionFilters) ([]RawSession, error)
	GetAssistantsForClient(ctx context.Context, clientID string) ([]AssistantRef, error)
	GetWorkspacesForClient(ctx context.Context, clientID string) ([]Workspace, error)
}

// ISessionWriter persists sessions and attaches analysis results. Only the
// enrichment path writes; the analytics core is read-only.
type ISessionWriter interface {
	SaveSession(ctx context.Context, clientID string, session *RawSession) error
	SaveAnalysis(ctx context.Context, sessionID string, analysis *Analysis) error
}
