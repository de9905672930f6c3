package main

import (
	"errors"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/lib/validator"
	"mymdb/proj/internal/services/votes"
	"net/http"
)

type voteRequest struct {
	Value models.VoteValue `json:"value" validate:"votevalue"`
}

func (app *Application) readVote(w http.ResponseWriter, r *http.Request) (models.VoteValue, bool) {
	var req voteRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return 0, false
	}
	if errs := validator.ValidateStruct(app.validator, req); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return 0, false
	}
	return req.Value, true
}

func (app *Application) castVote(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	value, ok := app.readVote(w, r)
	if !ok {
		return
	}
	user := contextGetUser(r)
	vote, err := app.Services.Votes.Cast(r.Context(), movieID, user.ID, value)
	if err != nil {
		switch {
		case errors.Is(err, votes.ErrMovieNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, votes.ErrInvalidValue):
			app.Http.UnprocessableEntity(w, r, map[string]string{"value": err.Error()})
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.respondWithVote(w, r, vote)
}

func (app *Application) updateVote(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	voteID, ok := app.extractIDParam(w, r, "voteID")
	if !ok {
		return
	}
	vote, err := app.Services.Votes.Get(r.Context(), voteID)
	if err != nil {
		if errors.Is(err, votes.ErrVoteNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	if vote.MovieID != movieID {
		app.Http.NotFound(w, r, votes.ErrVoteNotFound.Error())
		return
	}
	if !vote.IsOwnedBy(contextGetUser(r).ID) {
		app.Http.Forbidden(w, r, "You can only change your own vote")
		return
	}
	value, ok := app.readVote(w, r)
	if !ok {
		return
	}
	vote, err = app.Services.Votes.Update(r.Context(), vote, value)
	if err != nil {
		if errors.Is(err, votes.ErrVoteNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.respondWithVote(w, r, vote)
}

func (app *Application) respondWithVote(w http.ResponseWriter, r *http.Request, vote *models.Vote) {
	score, err := app.Services.Votes.Score(r.Context(), vote.MovieID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"vote": vote, "score": score, "vote_url": voteURL(vote)}, "")
}
