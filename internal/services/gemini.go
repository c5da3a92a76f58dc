package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"promptforge-backend/internal/models"
)

// GeminiService is the model gateway. It is constructed once in main and
// passed to whoever needs it; there is no package-level client.
type GeminiService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiService(ctx context.Context, apiKey, modelName string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:    client,
		modelName: modelName,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// Generate issues a stateless single-turn call: one system instruction, one
// user prompt, one completion.
func (s *GeminiService) Generate(ctx context.Context, system, prompt string) (string, error) {
	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(0)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &GatewayError{Err: err}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", &GatewayError{Err: fmt.Errorf("model returned empty response")}
	}
	return text, nil
}

// Chat issues a single-turn continuation of a caller-supplied conversation.
// The full history arrives on every call (the server stores nothing); the
// newest turn is the last entry, so the continuation message itself is empty.
func (s *GeminiService) Chat(ctx context.Context, system string, history []models.ChatMessage) (string, error) {
	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	cs := model.StartChat()
	cs.History = make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(""))
	if err != nil {
		return "", &GatewayError{Err: err}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", &GatewayError{Err: fmt.Errorf("model returned empty response")}
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
