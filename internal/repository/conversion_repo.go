package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

type ConversionRepo struct {
	pool *pgxpool.Pool
}

func NewConversionRepo(pool *pgxpool.Pool) *ConversionRepo {
	return &ConversionRepo{pool: pool}
}

func (r *ConversionRepo) Create(ctx context.Context, c *models.Conversion) error {
	c.ID = uuid.New()

	query := `INSERT INTO conversions (id, user_id, conversion_type, input_filename, output_filename, content_type, success, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		c.ID, c.UserID, c.ConversionType, c.InputFilename, c.OutputFilename, c.ContentType, c.Success, c.Message,
	).Scan(&c.CreatedAt)
}

func (r *ConversionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Conversion, error) {
	query := `SELECT id, user_id, conversion_type, input_filename, output_filename, content_type, success, message, created_at
		FROM conversions WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Conversion
	for rows.Next() {
		c := &models.Conversion{}
		err := rows.Scan(&c.ID, &c.UserID, &c.ConversionType, &c.InputFilename, &c.OutputFilename, &c.ContentType, &c.Success, &c.Message, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, nil
}
