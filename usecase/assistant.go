package usecase

import (
	"context"
	"fmt"

	"github.com/Kadoinkus/chatbot-platform/domains/assistant"
)

type AssistantService struct {
	repo assistant.IAssistantRepository
}

func NewAssistantService(repo assistant.IAssistantRepository) *AssistantService {
	return &AssistantService{repo: repo}
}

func (s *AssistantService) CreateAssistant(ctx context.Context, clientID string, req assistant.CreateAssistantRequest) (*assistant.Assistant, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("assistant name is required")
	}
	if req.WorkspaceID == "" {
		return nil, fmt.Errorf("workspace is required")
	}

	a := &assistant.Assistant{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		WorkspaceID: req.WorkspaceID,
		ClientID:    clientID,
		Model:       req.Model,
		Status:      assistant.StatusActive,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create assistant: %w", err)
	}
	return a, nil
}

func (s *AssistantService) GetAssistant(ctx context.Context, id string) (*assistant.Assistant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AssistantService) GetAllAssistants(ctx context.Context, clientID string) ([]*assistant.Assistant, error) {
	return s.repo.GetAllForClient(ctx, clientID)
}

func (s *AssistantService) UpdateAssistant(ctx context.Context, id string, req assistant.UpdateAssistantRequest) (*assistant.Assistant, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Image != nil {
		a.Image = *req.Image
	}
	if req.Status != nil {
		a.Status = *req.Status
	}
	if req.Model != nil {
		a.Model = *req.Model
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update assistant: %w", err)
	}
	return a, nil
}

func (s *AssistantService) DeleteAssistant(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *AssistantService) CreateWorkspace(ctx context.Context, clientID, name, plan string) (*assistant.Workspace, error) {
	if name == "" {
		return nil, fmt.Errorf("workspace name is required")
	}
	w := &assistant.Workspace{Name: name, ClientID: clientID, Plan: plan}
	if err := s.repo.CreateWorkspace(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return w, nil
}

func (s *AssistantService) GetWorkspaces(ctx context.Context, clientID string) ([]*assistant.Workspace, error) {
	return s.repo.GetWorkspaces(ctx, clientID)
}
