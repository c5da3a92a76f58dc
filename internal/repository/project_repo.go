package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptforge-backend/internal/models"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) error {
	p.ID = uuid.New()
	if p.Files == nil {
		p.Files = []byte("{}")
	}
	if p.ChatHistory == nil {
		p.ChatHistory = []byte("[]")
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	query := `INSERT INTO projects (id, user_id, title, description, files, chat_history, is_public, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		p.ID, p.UserID, p.Title, p.Description, p.Files, p.ChatHistory, p.IsPublic, p.Tags,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p := &models.Project{}
	query := `SELECT id, user_id, title, description, files, chat_history, is_public, tags, created_at, updated_at
		FROM projects WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &p.Files, &p.ChatHistory,
		&p.IsPublic, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByUser returns one page of the owner's projects, newest first.
// Listing skips the files and chat_history payloads; detail views load them
// via GetByID.
func (r *ProjectRepo) ListByUser(ctx context.Context, userID uuid.UUID, search string, limit, offset int) ([]*models.Project, int, error) {
	var args []interface{}
	argIdx := 1

	where := fmt.Sprintf("WHERE user_id = $%d", argIdx)
	args = append(args, userID)
	argIdx++

	if search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM projects "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT id, user_id, title, description, is_public, tags, created_at, updated_at
		FROM projects %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects, err := scanProjectList(rows)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// ListPublic returns one page of public projects, newest first.
func (r *ProjectRepo) ListPublic(ctx context.Context, search string, limit, offset int) ([]*models.Project, int, error) {
	var args []interface{}
	argIdx := 1

	where := "WHERE is_public = TRUE"
	if search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM projects "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT id, user_id, title, description, is_public, tags, created_at, updated_at
		FROM projects %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects, err := scanProjectList(rows)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepo) Update(ctx context.Context, p *models.Project) error {
	query := `UPDATE projects
		SET title = $1, description = $2, files = $3, chat_history = $4, is_public = $5, tags = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		p.Title, p.Description, p.Files, p.ChatHistory, p.IsPublic, p.Tags, p.ID,
	).Scan(&p.UpdatedAt)
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	return err
}

func scanProjectList(rows pgx.Rows) ([]*models.Project, error) {
	var projects []*models.Project
	for rows.Next() {
		p := &models.Project{}
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Title, &p.Description,
			&p.IsPublic, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
