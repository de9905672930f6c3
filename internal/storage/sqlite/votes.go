package sqlite

import (
	"context"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage"
	"time"
)

func (m *VoteModel) Get(ctx context.Context, id int64) (*models.Vote, error) {
	var rec voteRecord
	if err := m.DB.WithContext(ctx).Take(&rec, "id = ?", id).Error; err != nil {
		return nil, ClassifyError(err)
	}
	vote := rec.toModel()
	return &vote, nil
}

func (m *VoteModel) GetForUser(ctx context.Context, movieID, userID int64) (*models.Vote, error) {
	var rec voteRecord
	err := m.DB.WithContext(ctx).Where("movie_id = ? AND user_id = ?", movieID, userID).Take(&rec).Error
	if err != nil {
		return nil, ClassifyError(err)
	}
	vote := rec.toModel()
	return &vote, nil
}

func (m *VoteModel) Insert(ctx context.Context, vote *models.Vote) error {
	rec := voteRecord{
		UserID:  vote.UserID,
		MovieID: vote.MovieID,
		Value:   int16(vote.Value),
		VotedOn: time.Now().UTC(),
	}
	if err := m.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return ClassifyError(err)
	}
	vote.ID = rec.ID
	vote.VotedOn = &rec.VotedOn
	return nil
}

func (m *VoteModel) UpdateValue(ctx context.Context, vote *models.Vote) error {
	votedOn := time.Now().UTC()
	res := m.DB.WithContext(ctx).
		Model(&voteRecord{}).
		Where("id = ?", vote.ID).
		Updates(map[string]any{"value": int16(vote.Value), "voted_on": votedOn})
	if res.Error != nil {
		return ClassifyError(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	vote.VotedOn = &votedOn
	return nil
}

func (m *VoteModel) Score(ctx context.Context, movieID int64) (int, error) {
	var score int64
	err := m.DB.WithContext(ctx).
		Model(&voteRecord{}).
		Select("COALESCE(SUM(value), 0)").
		Where("movie_id = ?", movieID).
		Scan(&score).Error
	if err != nil {
		return 0, err
	}
	return int(score), nil
}
