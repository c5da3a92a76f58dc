package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"promptforge-backend/internal/middleware"
	"promptforge-backend/internal/models"
)

type projectRepository interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID, search string, limit, offset int) ([]*models.Project, int, error)
	ListPublic(ctx context.Context, search string, limit, offset int) ([]*models.Project, int, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectHandler struct {
	projectRepo projectRepository
}

func NewProjectHandler(projectRepo projectRepository) *ProjectHandler {
	return &ProjectHandler{projectRepo: projectRepo}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" || len(req.Files) == 0 {
		writeError(w, http.StatusBadRequest, "Project title and files are required")
		return
	}

	project := &models.Project{
		UserID:      middleware.GetUserID(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		Files:       req.Files,
		ChatHistory: req.ChatHistory,
		IsPublic:    req.IsPublic,
		Tags:        req.Tags,
	}

	if err := h.projectRepo.Create(r.Context(), project); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.projectRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		handleServiceError(w, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if project.UserID != userID && !project.IsPublic {
		writeError(w, http.StatusForbidden, "Not authorized to access this project")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) ListUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page, limit := paginationParams(r)
	search := r.URL.Query().Get("search")

	projects, total, err := h.projectRepo.ListByUser(r.Context(), userID, search, limit, (page-1)*limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(projects, total, page, limit))
}

func (h *ProjectHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	page, limit := paginationParams(r)
	search := r.URL.Query().Get("search")

	projects, total, err := h.projectRepo.ListPublic(r.Context(), search, limit, (page-1)*limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(projects, total, page, limit))
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		handleServiceError(w, err)
		return
	}

	if project.UserID != middleware.GetUserID(r.Context()) {
		writeError(w, http.StatusForbidden, "Not authorized to update this project")
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Files != nil {
		project.Files = req.Files
	}
	if req.ChatHistory != nil {
		project.ChatHistory = req.ChatHistory
	}
	if req.IsPublic != nil {
		project.IsPublic = *req.IsPublic
	}
	if req.Tags != nil {
		project.Tags = req.Tags
	}

	if err := h.projectRepo.Update(r.Context(), project); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.projectRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		handleServiceError(w, err)
		return
	}

	if project.UserID != middleware.GetUserID(r.Context()) {
		writeError(w, http.StatusForbidden, "Not authorized to delete this project")
		return
	}

	if err := h.projectRepo.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

func paginationParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func listResponse(projects []*models.Project, total, page, limit int) models.ProjectListResponse {
	if projects == nil {
		projects = []*models.Project{}
	}
	return models.ProjectListResponse{
		Projects: projects,
		Pagination: models.Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: (total + limit - 1) / limit,
		},
	}
}
