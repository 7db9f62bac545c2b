package assistant

import (
	"context"
	"time"
)

// Assistant statuses
const (
	StatusActive   = "active"
	StatusPaused   = "paused"
	StatusArchived = "archived"
)

// Assistant represents one deployed conversational assistant ("bot") owned by
// a workspace.
type Assistant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	WorkspaceID string    `json:"workspace_id"`
	ClientID    string    `json:"client_id"`
	Status      string    `json:"status"`
	Model       string    `json:"model,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Workspace groups assistants for billing and organization.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClientID  string    `json:"client_id"`
	Plan      string    `json:"plan,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAssistantRequest is the request body for creating an assistant
type CreateAssistantRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	WorkspaceID string `json:"workspace_id" validate:"required"`
	Model       string `json:"model,omitempty"`
}

// UpdateAssistantRequest is the request body for updating an assistant
type UpdateAssistantRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	Status      *string `json:"status,omitempty"`
	Model       *string `json:"model,omitempty"`
}

// IAssistantRepository defines database operations for assistants and
// workspaces.
type IAssistantRepository interface {
	Create(ctx context.Context, a *Assistant) error
	GetByID(ctx context.Context, id string) (*Assistant, error)
	GetAllForClient(ctx context.Context, clientID string) ([]*Assistant, error)
	Update(ctx context.Context, a *Assistant) error
	Delete(ctx context.Context, id string) error

	CreateWorkspace(ctx context.Context, w *Workspace) error
	GetWorkspaces(ctx context.Context, clientID string) ([]*Workspace, error)
}
