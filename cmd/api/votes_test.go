package main

import (
	"context"
	"fmt"
	"mymdb/proj/internal/domain/models"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVote(t *testing.T) {
	app := NewTestApplication(nil, t)
	router := app.routes()
	ids := seedMovies(t, app, 1)
	target := fmt.Sprintf("/movie/%d/vote", ids[0])
	alice := sessionFor(t, app, aliceID)

	rec := do(t, router, http.MethodPost, target, map[string]int{"value": 1}, alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode(t, rec)
	up := field[models.Vote](t, resp, "vote")
	assert.Equal(t, models.VoteUp, up.Value)
	assert.Equal(t, aliceID, up.UserID)
	assert.Equal(t, 1, field[int](t, resp, "score"))
	assert.Equal(t, fmt.Sprintf("%s/%d", target, up.ID), field[string](t, resp, "vote_url"))

	// casting again replaces the existing vote
	rec = do(t, router, http.MethodPost, target, map[string]int{"value": -1}, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode(t, rec)
	down := field[models.Vote](t, resp, "vote")
	assert.Equal(t, up.ID, down.ID)
	assert.Equal(t, models.VoteDown, down.Value)
	assert.Equal(t, -1, field[int](t, resp, "score"))

	rec = do(t, router, http.MethodPost, target, map[string]int{"value": 1}, sessionFor(t, app, bobID))
	assert.Equal(t, 0, field[int](t, decode(t, rec), "score"))
}

func TestCastVoteRejects(t *testing.T) {
	app := NewTestApplication(nil, t)
	router := app.routes()
	ids := seedMovies(t, app, 1)
	target := fmt.Sprintf("/movie/%d/vote", ids[0])

	testCases := []struct {
		name   string
		target string
		body   any
		cookie *http.Cookie
		status int
	}{
		{"anonymous", target, map[string]int{"value": 1}, nil, http.StatusUnauthorized},
		{"inactive", target, map[string]int{"value": 1}, sessionFor(t, app, inactiveID), http.StatusForbidden},
		{"out of range", target, map[string]int{"value": 2}, sessionFor(t, app, aliceID), http.StatusUnprocessableEntity},
		{"blank", target, map[string]int{"value": 0}, sessionFor(t, app, aliceID), http.StatusUnprocessableEntity},
		{"malformed", target, "up", sessionFor(t, app, aliceID), http.StatusBadRequest},
		{"unknown movie", "/movie/999/vote", map[string]int{"value": 1}, sessionFor(t, app, aliceID), http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, tc.target, tc.body, tc.cookie)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
	score, err := app.Services.Votes.Score(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestUpdateVote(t *testing.T) {
	app := NewTestApplication(nil, t)
	router := app.routes()
	ids := seedMovies(t, app, 2)
	alice := sessionFor(t, app, aliceID)

	rec := do(t, router, http.MethodPost, fmt.Sprintf("/movie/%d/vote", ids[0]), map[string]int{"value": 1}, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	vote := field[models.Vote](t, decode(t, rec), "vote")
	target := fmt.Sprintf("/movie/%d/vote/%d", ids[0], vote.ID)

	t.Run("owner", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, target, map[string]int{"value": -1}, alice)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, models.VoteDown, field[models.Vote](t, resp, "vote").Value)
		assert.Equal(t, -1, field[int](t, resp, "score"))
	})
	t.Run("not owner", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, target, map[string]int{"value": 1}, sessionFor(t, app, bobID))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		saved, err := app.Services.Votes.Get(context.Background(), vote.ID)
		require.NoError(t, err)
		assert.Equal(t, models.VoteDown, saved.Value)
		assert.Equal(t, aliceID, saved.UserID)
	})
	t.Run("other movie", func(t *testing.T) {
		other := fmt.Sprintf("/movie/%d/vote/%d", ids[1], vote.ID)
		rec := do(t, router, http.MethodPost, other, map[string]int{"value": 1}, alice)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
	t.Run("unknown vote", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, fmt.Sprintf("/movie/%d/vote/999", ids[0]), map[string]int{"value": 1}, alice)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
	t.Run("invalid value", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, target, map[string]int{"value": 5}, alice)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
