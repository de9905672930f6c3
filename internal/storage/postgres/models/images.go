package models

import (
	"context"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ImageModel struct {
	DB *pgxpool.Pool
}

func (m *ImageModel) Insert(ctx context.Context, image *models.MovieImage) error {
	err := m.DB.QueryRow(
		ctx,
		`INSERT INTO movie_images (movie_id, user_id, image) VALUES ($1, $2, $3) RETURNING id, uploaded`,
		image.MovieID,
		image.UserID,
		image.Image,
	).Scan(&image.ID, &image.Uploaded)
	return postgres.ClassifyError(err)
}
