package analytics

// ResolutionBreakdown counts session outcomes. Resolved/partial/unresolved
// are mutually exclusive buckets keyed on resolution status; escalated is an
// orthogonal counter (a resolved session may also be escalated).
type ResolutionBreakdown struct {
	Resolved   int `json:"resolved"`
	Partial    int `json:"partial"`
	Unresolved int `json:"unresolved"`
	Escalated  int `json:"escalated"`
}

// CostBreakdown is the token-derived spend of one assistant.
type CostBreakdown struct {
	ChatCost       float64 `json:"chat_cost"`
	AnalysisCost   float64 `json:"analysis_cost"`
	TotalCost      float64 `json:"total_cost"`
	CostPerSession float64 `json:"cost_per_session"`
}

// HandoffCounts tallies sessions that ended in a handoff. The two categories
// are mutually exclusive; sessions ending any other way count toward neither.
type HandoffCounts struct {
	URLHandoffs   int `json:"url_handoffs"`
	EmailHandoffs int `json:"email_handoffs"`
}

// ReturnRateBreakdown splits an assistant's audience into new and returning
// users.
type ReturnRateBreakdown struct {
	NewUsers       int     `json:"new_users"`
	ReturningUsers int     `json:"returning_users"`
	ReturnRate     float64 `json:"return_rate"`
}
