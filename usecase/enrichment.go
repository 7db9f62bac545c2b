package usecase

import (
	"context"
	"fmt"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
	"github.com/Kadoinkus/chatbot-platform/infrastructure/ai"
)

// EnrichmentService ingests finished sessions and attaches AI-derived
// analysis to them. Analysis failures leave the session stored but
// unanalyzed; the analytics core handles that shape natively.
type EnrichmentService struct {
	writer   analytics.ISessionWriter
	analyzer *ai.Service
}

func NewEnrichmentService(writer analytics.ISessionWriter, analyzer *ai.Service) *EnrichmentService {
	return &EnrichmentService{writer: writer, analyzer: analyzer}
}

// IngestSession stores one finished session.
func (s *EnrichmentService) IngestSession(ctx context.Context, clientID string, session *analytics.RawSession) error {
	if session.AssistantSlug == "" {
		return fmt.Errorf("assistant slug is required")
	}
	if session.StartedAt.IsZero() {
		return fmt.Errorf("session start time is required")
	}
	return s.writer.SaveSession(ctx, clientID, session)
}

// AnalyzeSession runs AI analysis over a session transcript and persists the
// result.
func (s *EnrichmentService) AnalyzeSession(ctx context.Context, sessionID, transcript string) (*analytics.Analysis, error) {
	if s.analyzer == nil {
		return nil, fmt.Errorf("analysis service not configured")
	}

	analysis, err := s.analyzer.AnalyzeSession(ctx, transcript)
	if err != nil {
		return nil, err
	}

	if err := s.writer.SaveAnalysis(ctx, sessionID, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}
