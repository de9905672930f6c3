package votes

import (
	"context"
	"errors"
	"log/slog"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage"
)

type VotesStorage interface {
	Get(ctx context.Context, id int64) (*models.Vote, error)
	GetForUser(ctx context.Context, movieID, userID int64) (*models.Vote, error)
	Insert(ctx context.Context, vote *models.Vote) error
	UpdateValue(ctx context.Context, vote *models.Vote) error
	Score(ctx context.Context, movieID int64) (int, error)
}

type VoteService struct {
	log     *slog.Logger
	storage VotesStorage
}

func New(log *slog.Logger, storage VotesStorage) *VoteService {
	return &VoteService{
		log:     log,
		storage: storage,
	}
}

// GetOrBlank returns the user's vote for the movie, or an unsaved blank
// vote when there is none.
func (s *VoteService) GetOrBlank(ctx context.Context, movieID, userID int64) (*models.Vote, error) {
	const op = "votes.VoteService.GetOrBlank"
	log := s.log.With("op", op, "movieID", movieID, "userID", userID)
	vote, err := s.storage.GetForUser(ctx, movieID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &models.Vote{UserID: userID, MovieID: movieID, Value: models.VoteBlank}, nil
		}
		log.Error(err.Error())
		return nil, err
	}
	return vote, nil
}

// Cast records the user's vote for the movie, creating it or changing the
// existing one. If a concurrent request created the row between our read
// and insert, that row is updated once instead.
func (s *VoteService) Cast(ctx context.Context, movieID, userID int64, value models.VoteValue) (*models.Vote, error) {
	const op = "votes.VoteService.Cast"
	log := s.log.With("op", op, "movieID", movieID, "userID", userID, "value", value)
	if !value.Valid() {
		return nil, ErrInvalidValue
	}
	vote, err := s.GetOrBlank(ctx, movieID, userID)
	if err != nil {
		return nil, err
	}
	if vote.IsSaved() {
		return s.update(ctx, log, vote, value)
	}
	vote.Value = value
	err = s.storage.Insert(ctx, vote)
	switch {
	case err == nil:
		log.Info("vote created", "voteID", vote.ID)
		return vote, nil
	case errors.Is(err, storage.ErrForeignKey):
		log.Info("movie not found")
		return nil, ErrMovieNotFound
	case !errors.Is(err, storage.ErrConflict):
		log.Error(err.Error())
		return nil, err
	}
	log.Info("lost race on first vote, updating existing vote")
	existing, err := s.storage.GetForUser(ctx, movieID, userID)
	if err != nil {
		log.Error("failed to reload vote after conflict", "errMsg", err.Error())
		return nil, err
	}
	return s.update(ctx, log, existing, value)
}

func (s *VoteService) Get(ctx context.Context, id int64) (*models.Vote, error) {
	const op = "votes.VoteService.Get"
	log := s.log.With("op", op, "id", id)
	vote, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("vote not found")
			return nil, ErrVoteNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return vote, nil
}

// Update changes the value of a saved vote. Ownership is checked by the
// caller.
func (s *VoteService) Update(ctx context.Context, vote *models.Vote, value models.VoteValue) (*models.Vote, error) {
	const op = "votes.VoteService.Update"
	log := s.log.With("op", op, "voteID", vote.ID, "value", value)
	if !value.Valid() {
		return nil, ErrInvalidValue
	}
	return s.update(ctx, log, vote, value)
}

func (s *VoteService) update(ctx context.Context, log *slog.Logger, vote *models.Vote, value models.VoteValue) (*models.Vote, error) {
	updated := *vote
	updated.Value = value
	if err := s.storage.UpdateValue(ctx, &updated); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("vote not found")
			return nil, ErrVoteNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("vote updated", "voteID", updated.ID)
	return &updated, nil
}

// Score is the sum of all vote values for the movie, 0 without votes.
func (s *VoteService) Score(ctx context.Context, movieID int64) (int, error) {
	const op = "votes.VoteService.Score"
	score, err := s.storage.Score(ctx, movieID)
	if err != nil {
		s.log.Error(err.Error(), "op", op, "movieID", movieID)
		return 0, err
	}
	return score, nil
}
