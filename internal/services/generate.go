package services

import (
	"context"
	"strings"

	"promptforge-backend/internal/models"
	"promptforge-backend/internal/templates"
)

// ModelGateway is the capability the generation pipeline consumes. Satisfied
// by GeminiService in production and by fakes in tests.
type ModelGateway interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
	Chat(ctx context.Context, system string, history []models.ChatMessage) (string, error)
}

// classifierInstruction pins the model to the two category tokens. Anything
// else fails classification; the pipeline never coerces an answer.
const classifierInstruction = "Classify the project the user describes as either 'reactjs' (a frontend web application) or 'nodejs' (a backend or command-line application). Respond with exactly one word in lowercase: reactjs or nodejs. Do not return anything extra."

// chatSystemPrompt is the fixed general-purpose instruction for
// conversational continuation calls.
const chatSystemPrompt = `You are an expert full-stack developer working inside a browser-based runtime. The project lives in /home/project and you cannot use native binaries, so prefer Vite for web servers and Node.js standard APIs for scripts.

When you change or create files, respond with a single <boltArtifact> element containing one <boltAction type="file" filePath="..."> per file with its FULL contents. Never truncate files or reference earlier versions of them. Keep explanations outside the artifact short.

When the user message contains a <bolt_file_modifications> block, it reflects edits the user made since your last reply; treat those contents as the current state of the files.`

// GenerateService composes the classifier, the template catalog and the
// model gateway into the two generation operations.
type GenerateService struct {
	gateway ModelGateway
}

func NewGenerateService(gateway ModelGateway) *GenerateService {
	return &GenerateService{gateway: gateway}
}

// ClassifyPrompt maps a free-text project description to a Category via a
// stateless gateway call. Out-of-enum output is a hard failure.
func (s *GenerateService) ClassifyPrompt(ctx context.Context, prompt string) (templates.Category, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", &ValidationError{Message: "Prompt is required"}
	}

	raw, err := s.gateway.Generate(ctx, classifierInstruction, prompt)
	if err != nil {
		return "", err
	}

	// Models occasionally wrap the answer in a code fence.
	normalized := strings.Trim(strings.TrimSpace(raw), "`")
	cat, ok := templates.ParseCategory(normalized)
	if !ok {
		return "", &ClassificationError{Output: normalized}
	}
	return cat, nil
}

// ScaffoldPrompts classifies the description, selects the matching template
// bundle and assembles the instruction fragments that seed a caller-driven
// generation session. Categorization happens before any template lookup;
// this operation makes no second model call.
func (s *GenerateService) ScaffoldPrompts(ctx context.Context, prompt string) (*models.ScaffoldResponse, error) {
	cat, err := s.ClassifyPrompt(ctx, prompt)
	if err != nil {
		return nil, err
	}

	bundle := templates.Lookup(cat)
	return &models.ScaffoldResponse{
		Prompts:   []string{templates.BasePrompt, templates.ArtifactMessage(bundle)},
		UIPrompts: []string{bundle.UIPrompt},
	}, nil
}

// Chat continues a caller-owned conversation with one non-streaming
// completion. The caller encodes the new turn as the last history entry.
func (s *GenerateService) Chat(ctx context.Context, history []models.ChatMessage) (string, error) {
	for _, msg := range history {
		if msg.Role != models.RoleUser && msg.Role != models.RoleModel {
			return "", &ValidationError{Message: "Message roles must be 'user' or 'model'"}
		}
	}
	return s.gateway.Chat(ctx, chatSystemPrompt, history)
}
