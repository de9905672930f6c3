package sqlite

import (
	"context"
	"mymdb/proj/internal/domain/filters"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage"

	"gorm.io/gorm"
)

func (m *MovieModel) Get(ctx context.Context, id int64) (*models.Movie, error) {
	var rec movieRecord
	if err := m.DB.WithContext(ctx).Take(&rec, "id = ?", id).Error; err != nil {
		return nil, ClassifyError(err)
	}
	movie := rec.toModel()
	return &movie, nil
}

func (m *MovieModel) List(ctx context.Context, filters filters.Filters) ([]models.Movie, int, error) {
	var (
		records []movieRecord
		total   int64
	)
	db := m.DB.WithContext(ctx)
	if err := db.Model(&movieRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("year DESC, title ASC, id ASC").
		Limit(filters.Limit()).
		Offset(filters.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	movies := make([]models.Movie, 0, len(records))
	for _, rec := range records {
		movies = append(movies, rec.toModel())
	}
	return movies, int(total), nil
}

func (m *MovieModel) Count(ctx context.Context) (int, error) {
	var total int64
	if err := m.DB.WithContext(ctx).Model(&movieRecord{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// GetWithRelated resolves the movie, its director and score in one statement
// and the writers, cast and images in one statement each.
func (m *MovieModel) GetWithRelated(ctx context.Context, id int64) (*models.MovieDetail, error) {
	db := m.DB.WithContext(ctx)
	var row movieDetailRow
	res := db.Table("movies AS m").
		Select(`m.id, m.title, m.plot, m.year, m.rating, m.runtime, m.website, m.director_id,
			d.id AS d_id, d.first_name AS d_first_name, d.last_name AS d_last_name,
			d.born AS d_born, d.died AS d_died,
			COALESCE((SELECT SUM(v.value) FROM votes AS v WHERE v.movie_id = m.id), 0) AS score`).
		Joins("LEFT JOIN persons AS d ON d.id = m.director_id").
		Where("m.id = ?", id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, ClassifyError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrNotFound
	}
	detail := &models.MovieDetail{
		Movie:    row.Movie.toModel(),
		Director: row.director(),
		Score:    int(row.Score),
		Writers:  []models.Person{},
		Actors:   []models.Actor{},
		Images:   []models.MovieImage{},
	}

	var writers []personRecord
	err := db.Table("persons AS p").
		Select("p.id, p.first_name, p.last_name, p.born, p.died").
		Joins("JOIN movie_writers AS w ON w.person_id = p.id").
		Where("w.movie_id = ?", id).
		Order("p.last_name, p.first_name, p.id").
		Scan(&writers).Error
	if err != nil {
		return nil, err
	}
	for _, w := range writers {
		detail.Writers = append(detail.Writers, w.toModel())
	}

	var actors []actorRow
	err = db.Table("roles AS r").
		Select("p.id, p.first_name, p.last_name, p.born, p.died, r.name AS role_name").
		Joins("JOIN persons AS p ON p.id = r.person_id").
		Where("r.movie_id = ?", id).
		Order("r.id").
		Scan(&actors).Error
	if err != nil {
		return nil, err
	}
	for _, a := range actors {
		detail.Actors = append(detail.Actors, models.Actor{Person: a.Person.toModel(), Role: a.RoleName})
	}

	var images []imageRecord
	err = db.Where("movie_id = ?", id).Order("uploaded DESC, id DESC").Find(&images).Error
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		detail.Images = append(detail.Images, img.toModel())
	}
	return detail, nil
}

func (m *MovieModel) Top(ctx context.Context, limit int) ([]models.MovieScore, error) {
	var rows []movieScoreRow
	err := m.DB.WithContext(ctx).Table("movies AS m").
		Select("m.id, m.title, m.plot, m.year, m.rating, m.runtime, m.website, m.director_id, SUM(v.value) AS score").
		Joins("JOIN votes AS v ON v.movie_id = m.id").
		Group("m.id").
		Order("score DESC, m.title ASC, m.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	top := make([]models.MovieScore, 0, len(rows))
	for _, row := range rows {
		top = append(top, models.MovieScore{Movie: row.Movie.toModel(), Score: int(row.Score)})
	}
	return top, nil
}

func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie, writerIDs []int64, roles []models.Role) error {
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := newMovieRecord(movie)
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		movie.ID = rec.ID
		if len(writerIDs) > 0 {
			writers := make([]movieWriterRecord, 0, len(writerIDs))
			for _, personID := range writerIDs {
				writers = append(writers, movieWriterRecord{MovieID: movie.ID, PersonID: personID})
			}
			if err := tx.Create(&writers).Error; err != nil {
				return err
			}
		}
		for i := range roles {
			role := roleRecord{MovieID: movie.ID, PersonID: roles[i].PersonID, Name: roles[i].Name}
			if err := tx.Create(&role).Error; err != nil {
				return err
			}
			roles[i].ID = role.ID
			roles[i].MovieID = movie.ID
		}
		return nil
	})
	return ClassifyError(err)
}

func (m *MovieModel) Delete(ctx context.Context, id int64) error {
	res := m.DB.WithContext(ctx).Delete(&movieRecord{}, id)
	if res.Error != nil {
		return ClassifyError(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
