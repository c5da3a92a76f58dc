package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Files       json.RawMessage `json:"files,omitempty"`
	ChatHistory json.RawMessage `json:"chat_history,omitempty"`
	IsPublic    bool            `json:"is_public"`
	Tags        []string        `json:"tags"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateProjectRequest struct {
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Files       json.RawMessage `json:"files"`
	ChatHistory json.RawMessage `json:"chat_history"`
	IsPublic    bool            `json:"is_public"`
	Tags        []string        `json:"tags"`
}

type UpdateProjectRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Files       json.RawMessage `json:"files"`
	ChatHistory json.RawMessage `json:"chat_history"`
	IsPublic    *bool           `json:"is_public"`
	Tags        []string        `json:"tags"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type ProjectListResponse struct {
	Projects   []*Project `json:"projects"`
	Pagination Pagination `json:"pagination"`
}
