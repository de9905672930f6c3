package votes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage"
	"mymdb/proj/internal/storage/sqlite"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func setup(t *testing.T) (*VoteService, *sqlite.Models, int64) {
	t.Helper()
	db, err := sqlite.New(":memory:", testLog)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	m := sqlite.NewModels(db)
	movie := models.Movie{Title: "Heat", Year: 1995, Runtime: 170}
	require.NoError(t, m.Movie.Insert(context.Background(), &movie, nil, nil))
	return New(testLog, m.Vote), m, movie.ID
}

func countVotes(t *testing.T, m *sqlite.Models, movieID int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, m.Vote.DB.Table("votes").Where("movie_id = ?", movieID).Count(&n).Error)
	return n
}

func TestGetOrBlank(t *testing.T) {
	svc, _, movieID := setup(t)
	ctx := context.Background()

	blank, err := svc.GetOrBlank(ctx, movieID, 5)
	require.NoError(t, err)
	assert.False(t, blank.IsSaved())
	assert.Equal(t, models.VoteBlank, blank.Value)
	assert.Equal(t, int64(5), blank.UserID)
	assert.Equal(t, movieID, blank.MovieID)

	cast, err := svc.Cast(ctx, movieID, 5, models.VoteUp)
	require.NoError(t, err)
	got, err := svc.GetOrBlank(ctx, movieID, 5)
	require.NoError(t, err)
	assert.Equal(t, cast.ID, got.ID)
}

func TestCastChangesScore(t *testing.T) {
	svc, m, movieID := setup(t)
	ctx := context.Background()

	score, err := svc.Score(ctx, movieID)
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	up, err := svc.Cast(ctx, movieID, 1, models.VoteUp)
	require.NoError(t, err)
	assert.True(t, up.IsSaved())
	before, err := svc.Score(ctx, movieID)
	require.NoError(t, err)

	down, err := svc.Cast(ctx, movieID, 1, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, up.ID, down.ID)
	after, err := svc.Score(ctx, movieID)
	require.NoError(t, err)

	assert.Equal(t, -2, after-before)
	assert.EqualValues(t, 1, countVotes(t, m, movieID))
}

func TestRepeatedCastsKeepOneRow(t *testing.T) {
	svc, m, movieID := setup(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := svc.Cast(ctx, movieID, 3, models.VoteUp)
		require.NoError(t, err)
	}
	_, err := svc.Cast(ctx, movieID, 4, models.VoteDown)
	require.NoError(t, err)

	assert.EqualValues(t, 2, countVotes(t, m, movieID))
	score, err := svc.Score(ctx, movieID)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestCastInvalidValue(t *testing.T) {
	svc, m, movieID := setup(t)
	for _, v := range []models.VoteValue{0, 2, -5} {
		_, err := svc.Cast(context.Background(), movieID, 1, v)
		assert.ErrorIs(t, err, ErrInvalidValue)
	}
	assert.Zero(t, countVotes(t, m, movieID))
}

func TestCastUnknownMovie(t *testing.T) {
	svc, _, movieID := setup(t)
	_, err := svc.Cast(context.Background(), movieID+1, 1, models.VoteUp)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestUpdate(t *testing.T) {
	svc, _, movieID := setup(t)
	ctx := context.Background()
	vote, err := svc.Cast(ctx, movieID, 1, models.VoteUp)
	require.NoError(t, err)

	got, err := svc.Get(ctx, vote.ID)
	require.NoError(t, err)
	assert.True(t, got.IsOwnedBy(1))
	assert.False(t, got.IsOwnedBy(2))

	updated, err := svc.Update(ctx, got, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, models.VoteDown, updated.Value)
	assert.Equal(t, models.VoteUp, got.Value)

	_, err = svc.Update(ctx, got, 0)
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = svc.Get(ctx, vote.ID+10)
	assert.ErrorIs(t, err, ErrVoteNotFound)
}

// racyStorage behaves as if another request inserted the user's vote right
// after the first lookup.
type racyStorage struct {
	winner      models.Vote
	lookups     int
	inserts     int
	updates     int
	updateError error
}

func (s *racyStorage) Get(context.Context, int64) (*models.Vote, error) {
	return nil, storage.ErrNotFound
}

func (s *racyStorage) GetForUser(context.Context, int64, int64) (*models.Vote, error) {
	s.lookups++
	if s.lookups == 1 {
		return nil, storage.ErrNotFound
	}
	v := s.winner
	return &v, nil
}

func (s *racyStorage) Insert(context.Context, *models.Vote) error {
	s.inserts++
	return storage.ErrConflict
}

func (s *racyStorage) UpdateValue(_ context.Context, v *models.Vote) error {
	s.updates++
	if s.updateError != nil {
		return s.updateError
	}
	s.winner.Value = v.Value
	return nil
}

func (s *racyStorage) Score(context.Context, int64) (int, error) {
	return int(s.winner.Value), nil
}

func TestCastLostRaceUpdatesOnce(t *testing.T) {
	fake := &racyStorage{winner: models.Vote{ID: 9, UserID: 1, MovieID: 2, Value: models.VoteUp}}
	svc := New(testLog, fake)

	vote, err := svc.Cast(context.Background(), 2, 1, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, int64(9), vote.ID)
	assert.Equal(t, models.VoteDown, vote.Value)
	assert.Equal(t, 1, fake.inserts)
	assert.Equal(t, 1, fake.updates)
}

func TestCastLostRaceDoesNotLoop(t *testing.T) {
	boom := errors.New("boom")
	fake := &racyStorage{winner: models.Vote{ID: 9, UserID: 1, MovieID: 2}, updateError: boom}
	svc := New(testLog, fake)

	_, err := svc.Cast(context.Background(), 2, 1, models.VoteUp)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, fake.inserts)
	assert.Equal(t, 1, fake.updates)
}
