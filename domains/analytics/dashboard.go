package analytics

// DashboardStats is the client-level rollup backing the dashboard KPI header.
type DashboardStats struct {
	Aggregated       AggregatedMetrics `json:"aggregated"`
	Stats            ConversationStats `json:"stats"`
	TotalWorkspaces  int               `json:"total_workspaces"`
	TotalAssistants  int               `json:"total_assistants"`
	ActiveAssistants int               `json:"active_assistants"`
}

// AssistantAnalytics bundles one assistant's metrics with every derived
// formula result, so presentation surfaces never recompute them.
type AssistantAnalytics struct {
	Metrics       *AssistantWithMetrics `json:"metrics"`
	Stats         ConversationStats     `json:"stats"`
	Resolution    ResolutionBreakdown   `json:"resolution"`
	Cost          CostBreakdown         `json:"cost"`
	Handoffs      HandoffCounts         `json:"handoffs"`
	ReturnRate    ReturnRateBreakdown   `json:"return_rate"`
	EasterEggRate float64               `json:"easter_egg_rate"`
	TopCountry    string                `json:"top_country"`
	TopLanguage   string                `json:"top_language"`
	TopDevice     string                `json:"top_device"`
	TopBrowser    string                `json:"top_browser"`
}

// ComparisonResult is a multi-assistant comparison set: one analytics row per
// assistant plus the rollup across the whole set.
type ComparisonResult struct {
	Rows       []*AssistantAnalytics `json:"rows"`
	Aggregated AggregatedMetrics     `json:"aggregated"`
}
