package health

// StoreHealth reports whether the session store answered the probe and which
// source served it.
type StoreHealth struct {
	Connected bool   `json:"connected"`
	Source    string `json:"source"` // e.g. "sqlite3", "postgres+mock"
	Message   string `json:"message,omitempty"`
}

// SystemHealth represents overall system health
type SystemHealth struct {
	Status           string      `json:"status"` // "healthy", "degraded", "unhealthy"
	Store            StoreHealth `json:"store"`
	TotalWorkspaces  int         `json:"total_workspaces"`
	TotalAssistants  int         `json:"total_assistants"`
	ActiveAssistants int         `json:"active_assistants"`
}
