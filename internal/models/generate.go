package models

// TemplateRequest carries the free-text project description to classify.
type TemplateRequest struct {
	Prompt string `json:"prompt"`
}

// ScaffoldResponse seeds a caller-driven code-generation session: Prompts is
// the ordered list of instruction fragments for the model, UIPrompts the
// template text the frontend renders.
type ScaffoldResponse struct {
	Prompts   []string `json:"prompts"`
	UIPrompts []string `json:"uiPrompts"`
}

// ErrorResponse is the uniform error envelope for all API routes.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RateLimitResponse is the envelope returned on admission denial. It is
// deliberately distinct from ErrorResponse so clients can tell a budget
// rejection from a pipeline failure.
type RateLimitResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
