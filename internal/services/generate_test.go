package services

import (
	"context"
	"errors"
	"testing"

	"promptforge-backend/internal/models"
	"promptforge-backend/internal/templates"
)

type fakeGateway struct {
	generateResp  string
	generateErr   error
	chatResp      string
	chatErr       error
	generateCalls int
	chatCalls     int
	lastSystem    string
	lastPrompt    string
	lastHistory   []models.ChatMessage
}

func (f *fakeGateway) Generate(ctx context.Context, system, prompt string) (string, error) {
	f.generateCalls++
	f.lastSystem = system
	f.lastPrompt = prompt
	return f.generateResp, f.generateErr
}

func (f *fakeGateway) Chat(ctx context.Context, system string, history []models.ChatMessage) (string, error) {
	f.chatCalls++
	f.lastSystem = system
	f.lastHistory = history
	return f.chatResp, f.chatErr
}

func TestClassifyPrompt(t *testing.T) {
	tests := []struct {
		name       string
		modelReply string
		expected   templates.Category
		wantErr    bool
	}{
		{"react token", "reactjs", templates.CategoryReact, false},
		{"node token", "nodejs", templates.CategoryNode, false},
		{"uppercase with newline", "ReactJS\n", templates.CategoryReact, false},
		{"code fenced", "`nodejs`", templates.CategoryNode, false},
		{"out of enum", "vuejs", "", true},
		{"chatty answer", "The project should be reactjs.", "", true},
		{"empty reply", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{generateResp: tc.modelReply}
			svc := NewGenerateService(gw)

			cat, err := svc.ClassifyPrompt(context.Background(), "build me a todo app")
			if tc.wantErr {
				var classErr *ClassificationError
				if !errors.As(err, &classErr) {
					t.Fatalf("Expected ClassificationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if cat != tc.expected {
				t.Errorf("Expected category %q, got %q", tc.expected, cat)
			}
		})
	}
}

func TestClassifyPrompt_EmptyPromptSkipsGateway(t *testing.T) {
	gw := &fakeGateway{generateResp: "reactjs"}
	svc := NewGenerateService(gw)

	_, err := svc.ClassifyPrompt(context.Background(), "   ")
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if gw.generateCalls != 0 {
		t.Errorf("Expected no gateway call for empty prompt, got %d", gw.generateCalls)
	}
}

func TestScaffoldPrompts_React(t *testing.T) {
	gw := &fakeGateway{generateResp: "reactjs"}
	svc := NewGenerateService(gw)

	result, err := svc.ScaffoldPrompts(context.Background(), "build me a todo app")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bundle := templates.Lookup(templates.CategoryReact)
	if len(result.Prompts) != 2 {
		t.Fatalf("Expected 2 prompt fragments, got %d", len(result.Prompts))
	}
	if result.Prompts[0] != templates.BasePrompt {
		t.Error("prompts[0] must be the fixed global base instruction")
	}
	if result.Prompts[1] != templates.ArtifactMessage(bundle) {
		t.Error("prompts[1] must be the artifact disclosure message")
	}
	if len(result.UIPrompts) != 1 || result.UIPrompts[0] != bundle.UIPrompt {
		t.Error("uiPrompts must equal the bundle's UI text exactly")
	}
	if gw.generateCalls != 1 {
		t.Errorf("Scaffold assembly must make exactly one model call, made %d", gw.generateCalls)
	}
}

func TestScaffoldPrompts_ClassificationFailure(t *testing.T) {
	gw := &fakeGateway{generateResp: "svelte"}
	svc := NewGenerateService(gw)

	result, err := svc.ScaffoldPrompts(context.Background(), "build me a todo app")
	var classErr *ClassificationError
	if !errors.As(err, &classErr) {
		t.Fatalf("Expected ClassificationError, got %v", err)
	}
	if result != nil {
		t.Error("No partial scaffold result may be returned on classification failure")
	}
}

func TestScaffoldPrompts_GatewayFailure(t *testing.T) {
	gw := &fakeGateway{generateErr: &GatewayError{Err: errors.New("upstream timeout")}}
	svc := NewGenerateService(gw)

	_, err := svc.ScaffoldPrompts(context.Background(), "build me a todo app")
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("Expected GatewayError to propagate unchanged, got %v", err)
	}
}

func TestChat_EmptyHistoryStillIssuesContinuation(t *testing.T) {
	gw := &fakeGateway{chatResp: "Hello! What would you like to build?"}
	svc := NewGenerateService(gw)

	reply, err := svc.Chat(context.Background(), []models.ChatMessage{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reply != gw.chatResp {
		t.Errorf("Expected gateway reply, got %q", reply)
	}
	if gw.chatCalls != 1 {
		t.Errorf("Expected one chat call, got %d", gw.chatCalls)
	}
}

func TestChat_RejectsUnknownRole(t *testing.T) {
	gw := &fakeGateway{chatResp: "ignored"}
	svc := NewGenerateService(gw)

	_, err := svc.Chat(context.Background(), []models.ChatMessage{
		{Role: "assistant", Content: "hi"},
	})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if gw.chatCalls != 0 {
		t.Errorf("Expected no gateway call for malformed history, got %d", gw.chatCalls)
	}
}

func TestChat_PassesHistoryWholesale(t *testing.T) {
	gw := &fakeGateway{chatResp: "done"}
	svc := NewGenerateService(gw)

	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "make a todo app"},
		{Role: models.RoleModel, Content: "here you go"},
		{Role: models.RoleUser, Content: "now add dark mode"},
	}

	if _, err := svc.Chat(context.Background(), history); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(gw.lastHistory) != 3 {
		t.Fatalf("Expected full history forwarded, got %d entries", len(gw.lastHistory))
	}
	if gw.lastHistory[2].Content != "now add dark mode" {
		t.Error("Newest turn must stay the last history entry")
	}
}
