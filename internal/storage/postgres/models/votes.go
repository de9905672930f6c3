package models

import (
	"context"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VoteModel struct {
	DB *pgxpool.Pool
}

const voteColumns = "id, user_id, movie_id, value, voted_on"

func (m *VoteModel) Get(ctx context.Context, id int64) (*models.Vote, error) {
	rows, err := m.DB.Query(ctx, `SELECT `+voteColumns+` FROM votes WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	vote, err := pgx.CollectOneRow(rows, scanVote)
	if err != nil {
		return nil, postgres.ClassifyError(err)
	}
	return &vote, nil
}

func (m *VoteModel) GetForUser(ctx context.Context, movieID, userID int64) (*models.Vote, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT `+voteColumns+` FROM votes WHERE movie_id = $1 AND user_id = $2`,
		movieID,
		userID,
	)
	if err != nil {
		return nil, err
	}
	vote, err := pgx.CollectOneRow(rows, scanVote)
	if err != nil {
		return nil, postgres.ClassifyError(err)
	}
	return &vote, nil
}

// Insert fails with storage.ErrConflict when the user already voted for the
// movie.
func (m *VoteModel) Insert(ctx context.Context, vote *models.Vote) error {
	err := m.DB.QueryRow(
		ctx,
		`INSERT INTO votes (user_id, movie_id, value) VALUES ($1, $2, $3) RETURNING id, voted_on`,
		vote.UserID,
		vote.MovieID,
		int16(vote.Value),
	).Scan(&vote.ID, &vote.VotedOn)
	return postgres.ClassifyError(err)
}

func (m *VoteModel) UpdateValue(ctx context.Context, vote *models.Vote) error {
	err := m.DB.QueryRow(
		ctx,
		`UPDATE votes SET value = $1, voted_on = now() WHERE id = $2 RETURNING voted_on`,
		int16(vote.Value),
		vote.ID,
	).Scan(&vote.VotedOn)
	return postgres.ClassifyError(err)
}

func (m *VoteModel) Score(ctx context.Context, movieID int64) (int, error) {
	var score int64
	err := m.DB.QueryRow(ctx, `SELECT COALESCE(sum(value), 0) FROM votes WHERE movie_id = $1`, movieID).Scan(&score)
	if err != nil {
		return 0, err
	}
	return int(score), nil
}
