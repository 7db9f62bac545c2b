package analytics

// Workspace is the billing/organizational grouping of assistants under a
// client, as far as analytics needs to know it.
type Workspace struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ClientID string `json:"client_id"`
	Plan     string `json:"plan,omitempty"`
}
