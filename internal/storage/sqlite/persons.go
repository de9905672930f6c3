package sqlite

import (
	"context"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage"
)

func (m *PersonModel) Insert(ctx context.Context, person *models.Person) error {
	rec := personRecord{FirstName: person.FirstName, LastName: person.LastName, Born: person.Born, Died: person.Died}
	if err := m.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return ClassifyError(err)
	}
	person.ID = rec.ID
	return nil
}

func (m *PersonModel) GetWithCredits(ctx context.Context, id int64) (*models.PersonDetail, error) {
	db := m.DB.WithContext(ctx)
	var rec personRecord
	if err := db.Take(&rec, "id = ?", id).Error; err != nil {
		return nil, ClassifyError(err)
	}
	detail := &models.PersonDetail{
		Person:         rec.toModel(),
		Directed:       []models.Movie{},
		WritingCredits: []models.Movie{},
		ActingCredits:  []models.Credit{},
	}

	var directed []movieRecord
	if err := db.Where("director_id = ?", id).Order("year DESC, title ASC").Find(&directed).Error; err != nil {
		return nil, err
	}
	for _, m := range directed {
		detail.Directed = append(detail.Directed, m.toModel())
	}

	var written []movieRecord
	err := db.Table("movies AS m").
		Select("m.*").
		Joins("JOIN movie_writers AS w ON w.movie_id = m.id").
		Where("w.person_id = ?", id).
		Order("m.year DESC, m.title ASC").
		Scan(&written).Error
	if err != nil {
		return nil, err
	}
	for _, m := range written {
		detail.WritingCredits = append(detail.WritingCredits, m.toModel())
	}

	var credits []creditRow
	err = db.Table("roles AS r").
		Select("m.id, m.title, m.plot, m.year, m.rating, m.runtime, m.website, m.director_id, r.name AS role_name").
		Joins("JOIN movies AS m ON m.id = r.movie_id").
		Where("r.person_id = ?", id).
		Order("m.year DESC, m.title ASC, r.id").
		Scan(&credits).Error
	if err != nil {
		return nil, err
	}
	for _, c := range credits {
		detail.ActingCredits = append(detail.ActingCredits, models.Credit{Movie: c.Movie.toModel(), Role: c.RoleName})
	}
	return detail, nil
}

func (m *PersonModel) Delete(ctx context.Context, id int64) error {
	res := m.DB.WithContext(ctx).Delete(&personRecord{}, id)
	if res.Error != nil {
		return ClassifyError(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
