package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

type InfographicRepo struct {
	pool *pgxpool.Pool
}

func NewInfographicRepo(pool *pgxpool.Pool) *InfographicRepo {
	return &InfographicRepo{pool: pool}
}

func (r *InfographicRepo) Create(ctx context.Context, g *models.Infographic) error {
	g.ID = uuid.New()
	if len(g.ContentJSON) == 0 {
		g.ContentJSON = json.RawMessage("{}")
	}

	query := `INSERT INTO infographics (id, user_id, title, content_json, original_filename)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		g.ID, g.UserID, g.Title, g.ContentJSON, g.OriginalFilename,
	).Scan(&g.CreatedAt)
}

func (r *InfographicRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Infographic, error) {
	g := &models.Infographic{}
	query := `SELECT id, user_id, title, content_json, original_filename, created_at
		FROM infographics WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.UserID, &g.Title, &g.ContentJSON, &g.OriginalFilename, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *InfographicRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Infographic, error) {
	query := `SELECT id, user_id, title, content_json, original_filename, created_at
		FROM infographics WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Infographic
	for rows.Next() {
		g := &models.Infographic{}
		err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.ContentJSON, &g.OriginalFilename, &g.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, nil
}

func (r *InfographicRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM infographics WHERE id = $1", id)
	return err
}
