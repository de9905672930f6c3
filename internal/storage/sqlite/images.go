package sqlite

import (
	"context"
	"mymdb/proj/internal/domain/models"
	"time"
)

func (m *ImageModel) Insert(ctx context.Context, image *models.MovieImage) error {
	rec := imageRecord{
		MovieID:  image.MovieID,
		UserID:   image.UserID,
		Image:    image.Image,
		Uploaded: time.Now().UTC(),
	}
	if err := m.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return ClassifyError(err)
	}
	image.ID = rec.ID
	image.Uploaded = rec.Uploaded
	return nil
}
