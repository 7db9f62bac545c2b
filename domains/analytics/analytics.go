package analytics

import "time"

// Sentiment labels attached by session analysis
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Resolution status of a session
const (
	ResolutionResolved   = "resolved"
	ResolutionPartial    = "partial"
	ResolutionUnresolved = "unresolved"
)

// Session outcomes that indicate a handoff out of the chat
const (
	OutcomeURLHandoff   = "url_handoff"
	OutcomeEmailHandoff = "email_handoff"
	OutcomeSelfService  = "self_service"
)

// Analysis holds the derived annotations for one session. A session without
// analysis (not yet processed) carries a nil *Analysis; consumers treat every
// missing field as "unknown", never as a default bucket.
type Analysis struct {
	Category         string `json:"category,omitempty"`
	Sentiment        string `json:"sentiment,omitempty"`
	ResolutionStatus string `json:"resolution_status,omitempty"`
	Escalated        bool   `json:"escalated"`
	SessionOutcome   string `json:"session_outcome,omitempty"`
	EngagementLevel  string `json:"engagement_level,omitempty"`
	ConversationType string `json:"conversation_type,omitempty"`
	ChatTokens       int    `json:"chat_tokens"`
	AnalysisTokens   int    `json:"analysis_tokens"`
}

// RawSession is one end-to-end conversation between a visitor and an assistant,
// exactly as the store returns it.
type RawSession struct {
	ID            string    `json:"id"`
	AssistantSlug string    `json:"assistant_slug"`
	UserID        string    `json:"user_id"`
	Returning     bool      `json:"returning"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"ended_at"`
	MessageCount  int       `json:"message_count"`
	DurationSec   float64   `json:"duration_sec"`
	Country       string    `json:"country,omitempty"`
	Device        string    `json:"device,omitempty"`
	Language      string    `json:"language,omitempty"`
	Browser       string    `json:"browser,omitempty"`
	Animations    int       `json:"animations"`
	EasterEggs    int       `json:"easter_eggs"`
	Questions     []string  `json:"questions,omitempty"`
	Unanswered    []string  `json:"unanswered,omitempty"`
	Analysis      *Analysis `json:"analysis,omitempty"`
}

// AssistantRef is the minimal assistant identity the analytics layer needs for
// display and grouping.
type AssistantRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Image       string `json:"image,omitempty"`
	WorkspaceID string `json:"workspace_id"`
	Status      string `json:"status"`
	ClientID    string `json:"client_id"`
}

// NormalizedSession is a RawSession with its owning assistant attached. The
// assistant pointer is nil when no assistant matched the session's slug; the
// session is still kept and counted.
type NormalizedSession struct {
	RawSession
	Assistant *AssistantRef `json:"assistant,omitempty"`
}

// ConversationStats is the canonical summary of one session list. It is
// always computable; an empty list yields the zero value, never NaN.
type ConversationStats struct {
	TotalSessions  int     `json:"total_sessions"`
	Resolved       int     `json:"resolved"`
	ResolutionRate float64 `json:"resolution_rate"`
	AvgDurationSec float64 `json:"avg_duration_sec"`
	Positive       int     `json:"positive"`
	Neutral        int     `json:"neutral"`
	Negative       int     `json:"negative"`
}

// MetricsOverview holds the per-assistant totals the formula library and the
// aggregator consume.
type MetricsOverview struct {
	TotalSessions  int     `json:"total_sessions"`
	TotalMessages  int     `json:"total_messages"`
	AvgDurationSec float64 `json:"avg_duration_sec"`
	ResolutionRate float64 `json:"resolution_rate"`
	EscalationRate float64 `json:"escalation_rate"`
	ChatTokens     int     `json:"chat_tokens"`
	AnalysisTokens int     `json:"analysis_tokens"`
	ResolvedToday  int     `json:"resolved_today"`
	EscalatedToday int     `json:"escalated_today"`
}

// SentimentBreakdown carries both counts and 0-100 percentages. Sessions
// without analysis are absent from the tally entirely.
type SentimentBreakdown struct {
	PositiveCount int     `json:"positive_count"`
	NeutralCount  int     `json:"neutral_count"`
	NegativeCount int     `json:"negative_count"`
	PositivePct   float64 `json:"positive_pct"`
	NeutralPct    float64 `json:"neutral_pct"`
	NegativePct   float64 `json:"negative_pct"`
}

// AnimationStats counts avatar animation activity per assistant.
type AnimationStats struct {
	TotalSessions  int `json:"total_sessions"`
	WithEasterEggs int `json:"with_easter_eggs"`
}

// BreakdownEntry is one row of a ranked breakdown (countries, languages,
// devices, browsers). Breakdown slices are sorted descending by count at
// construction time; rank 0 is "top" and formulas never re-sort.
type BreakdownEntry struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DailyMetric is one dated row of an assistant's activity series.
type DailyMetric struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Sessions int     `json:"sessions"`
	Messages int     `json:"messages"`
	Tokens   int     `json:"tokens"`
	Cost     float64 `json:"cost"`
}

// AssistantWithMetrics bundles one assistant with its sessions and the
// pre-shaped sub-objects the formula library reads.
type AssistantWithMetrics struct {
	Assistant  AssistantRef        `json:"assistant"`
	Sessions   []NormalizedSession `json:"sessions,omitempty"`
	Overview   MetricsOverview     `json:"overview"`
	Sentiment  SentimentBreakdown  `json:"sentiment"`
	Animations AnimationStats      `json:"animations"`
	Questions  []string            `json:"questions,omitempty"`
	Unanswered []string            `json:"unanswered,omitempty"`
	Countries  []BreakdownEntry    `json:"countries"`
	Languages  []BreakdownEntry    `json:"languages"`
	Devices    []BreakdownEntry    `json:"devices"`
	Browsers   []BreakdownEntry    `json:"browsers"`
	Daily      []DailyMetric       `json:"daily"`
}

// SentimentPercentages is the weighted sentiment mix of an assistant set,
// re-normalized so the three shares sum to 100.
type SentimentPercentages struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// AggregatedMetrics is the rollup of a set of assistants. Counters are exact
// sums; every rate is weighted by each assistant's own session count.
type AggregatedMetrics struct {
	TotalAssistants     int                  `json:"total_assistants"`
	TotalSessions       int                  `json:"total_sessions"`
	TotalMessages       int                  `json:"total_messages"`
	TotalChatTokens     int                  `json:"total_chat_tokens"`
	TotalAnalysisTokens int                  `json:"total_analysis_tokens"`
	ResolvedToday       int                  `json:"resolved_today"`
	EscalatedToday      int                  `json:"escalated_today"`
	AvgResolutionRate   float64              `json:"avg_resolution_rate"`
	AvgEscalationRate   float64              `json:"avg_escalation_rate"`
	AvgDurationSec      float64              `json:"avg_duration_sec"`
	Sentiment           SentimentPercentages `json:"sentiment"`
	TotalCost           float64              `json:"total_cost"`
	CostPerSession      float64              `json:"cost_per_session"`
}
