package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

type Service struct {
	client *openai.Client
	model  string
}

func NewService(apiToken string) *Service {
	if apiToken == "" {
		return nil
	}
	return &Service{
		client: openai.NewClient(apiToken),
		model:  "gpt-4o-mini",
	}
}

const analysisSystemPrompt = "You are a conversation analysis expert for customer-service chatbots. Always respond with valid JSON only."

// AnalyzeSession derives an Analysis from a session transcript. Sessions
// whose analysis fails stay unanalyzed; the analytics core treats them as
// "unknown" rather than defaulting them into a bucket.
func (s *Service) AnalyzeSession(ctx context.Context, transcript string) (*analytics.Analysis, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("AI service not initialized")
	}

	if transcript == "" {
		return nil, fmt.Errorf("empty transcript")
	}

	prompt := fmt.Sprintf(`Analyze the following chatbot conversation. Respond with ONLY a JSON object in this exact format:
{"category": "billing", "sentiment": "neutral", "resolution_status": "resolved", "escalated": false, "session_outcome": "self_service", "engagement_level": "medium", "conversation_type": "support"}

sentiment must be one of: "positive", "neutral", "negative".
resolution_status must be one of: "resolved", "partial", "unresolved".
session_outcome must be one of: "self_service", "url_handoff", "email_handoff".

Conversation:
%s`, transcript)

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: analysisSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   200,
		Temperature: 0.2,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		logrus.Errorf("Failed to analyze session: %v", err)
		return nil, fmt.Errorf("failed to analyze session: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no analysis response")
	}

	responseText := strings.TrimSpace(resp.Choices[0].Message.Content)

	// Extract the JSON object in case the model added extra text
	jsonStart := strings.Index(responseText, "{")
	jsonEnd := strings.LastIndex(responseText, "}")
	if jsonStart >= 0 && jsonEnd > jsonStart {
		responseText = responseText[jsonStart : jsonEnd+1]
	}

	var result analytics.Analysis
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		logrus.Warnf("Failed to parse analysis response: %v, response: %s", err, responseText)
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	result.AnalysisTokens = resp.Usage.TotalTokens
	return &result, nil
}
