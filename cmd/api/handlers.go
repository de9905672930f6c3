package main

import (
	"errors"
	"fmt"
	"mymdb/proj/internal/domain/fields"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/lib/validator"
	"mymdb/proj/internal/services/movies"
	"net/http"

	"github.com/go-chi/render"
)

func (app *Application) healthcheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, struct {
		Status  string `json:"status"`
		Debug   bool   `json:"debug"`
		Version string `json:"version"`
	}{
		Status:  "available",
		Debug:   app.cfg.Debug,
		Version: version,
	})
}

// userInfo is what pages show about the requesting user.
type userInfo struct {
	Authenticated bool   `json:"authenticated"`
	ID            int64  `json:"id,omitempty"`
	Username      string `json:"username,omitempty"`
	IsAdmin       bool   `json:"is_admin"`
}

func newUserInfo(user *models.User) userInfo {
	if user.IsAnonymous() {
		return userInfo{}
	}
	return userInfo{Authenticated: true, ID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin()}
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	var query struct {
		Page string `query:"page"`
	}
	if err := app.decoder.Decode(&query, r.URL.Query()); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	list, metadata, err := app.Services.Movies.List(r.Context(), query.Page)
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrInvalidPage):
			app.Http.BadRequest(w, r, err.Error())
		case errors.Is(err, movies.ErrPageNotFound):
			app.Http.NotFound(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{
		"movies":   list,
		"metadata": metadata,
		"user":     newUserInfo(contextGetUser(r)),
	}, "")
}

func (app *Application) topMovies(w http.ResponseWriter, r *http.Request) {
	var query struct {
		Limit int `query:"limit"`
	}
	if err := app.decoder.Decode(&query, r.URL.Query()); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if query.Limit < 0 || query.Limit > 100 {
		app.Http.BadRequest(w, r, "limit must be between 1 and 100")
		return
	}
	top, err := app.Services.Movies.Top(r.Context(), query.Limit)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": top}, "")
}

type imageView struct {
	models.MovieImage
	URL string `json:"url"`
}

type movieDetailView struct {
	*models.MovieDetail
	Images []imageView `json:"images"`
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	detail, err := app.Services.Movies.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	view := movieDetailView{MovieDetail: detail, Images: make([]imageView, 0, len(detail.Images))}
	for _, img := range detail.Images {
		view.Images = append(view.Images, imageView{MovieImage: img, URL: app.Services.Images.URL(img.Image)})
	}
	user := contextGetUser(r)
	data := envelop{"movie": view, "user": newUserInfo(user)}
	if !user.IsAnonymous() {
		vote, err := app.Services.Votes.GetOrBlank(r.Context(), id, user.ID)
		if err != nil {
			app.Http.ServerError(w, r, err, "")
			return
		}
		data["vote"] = vote
		data["vote_url"] = voteURL(vote)
		data["image_upload_url"] = fmt.Sprintf("/movie/%d/image", id)
	}
	app.Http.Ok(w, r, data, "")
}

// voteURL is where the vote form posts to: the update endpoint for a saved
// vote, the create endpoint otherwise.
func voteURL(vote *models.Vote) string {
	if vote.IsSaved() {
		return fmt.Sprintf("/movie/%d/vote/%d", vote.MovieID, vote.ID)
	}
	return fmt.Sprintf("/movie/%d/vote", vote.MovieID)
}

type roleRequest struct {
	PersonID int64  `json:"person_id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,max=140"`
}

type createMovieRequest struct {
	Title      string              `json:"title" validate:"required,max=255"`
	Plot       string              `json:"plot"`
	Year       int32               `json:"year" validate:"required,gt=1887"`
	Rating     fields.Rating       `json:"rating"`
	Runtime    fields.MovieRuntime `json:"runtime" validate:"required,gt=0"`
	Website    string              `json:"website" validate:"omitempty,url"`
	DirectorID *int64              `json:"director_id" validate:"omitempty,gt=0"`
	WriterIDs  []int64             `json:"writer_ids" validate:"unique,dive,gt=0"`
	Roles      []roleRequest       `json:"roles" validate:"dive"`
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var req createMovieRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, req); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	movie := &models.Movie{
		Title:      req.Title,
		Plot:       req.Plot,
		Year:       req.Year,
		Rating:     req.Rating,
		Runtime:    req.Runtime,
		Website:    req.Website,
		DirectorID: req.DirectorID,
	}
	roles := make([]models.Role, 0, len(req.Roles))
	for _, role := range req.Roles {
		roles = append(roles, models.Role{PersonID: role.PersonID, Name: role.Name})
	}
	if err := app.Services.Movies.CreateMovie(r.Context(), movie, req.WriterIDs, roles); err != nil {
		switch {
		case errors.Is(err, movies.ErrUnknownPerson):
			app.Http.UnprocessableEntity(w, r, map[string]string{"persons": err.Error()})
		case errors.Is(err, movies.ErrDuplicateCredit):
			app.Http.UnprocessableEntity(w, r, map[string]string{"roles": err.Error()})
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"movie": movie, "roles": roles}, "")
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.Services.Movies.DeleteMovie(r.Context(), id); err != nil {
		app.handleDeleteError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) handleDeleteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, movies.ErrMovieNotFound), errors.Is(err, movies.ErrPersonNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, movies.ErrStillReferenced):
		app.Http.Conflict(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
