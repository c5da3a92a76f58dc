package models

// Gemini role tokens. The service keeps no conversation state; the caller
// sends the full history on every chat call with the newest turn last.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is a single role-tagged entry in a caller-owned conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the single completion returned by the chat endpoint.
type ChatResponse struct {
	Message string `json:"message"`
}
