package main

import (
	"errors"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/lib/validator"
	"mymdb/proj/internal/services/movies"
	"net/http"
	"time"
)

const dateLayout = "2006-01-02"

type createPersonRequest struct {
	FirstName string `json:"first_name" validate:"required,max=140"`
	LastName  string `json:"last_name" validate:"required,max=140"`
	Born      string `json:"born" validate:"required,datetime=2006-01-02"`
	Died      string `json:"died" validate:"omitempty,datetime=2006-01-02"`
}

func (app *Application) createPerson(w http.ResponseWriter, r *http.Request) {
	var req createPersonRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, req); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	born, _ := time.Parse(dateLayout, req.Born)
	person := &models.Person{FirstName: req.FirstName, LastName: req.LastName, Born: born}
	if req.Died != "" {
		died, _ := time.Parse(dateLayout, req.Died)
		if died.Before(born) {
			app.Http.UnprocessableEntity(w, r, map[string]string{"died": "Value must not be before born"})
			return
		}
		person.Died = &died
	}
	if err := app.Services.Movies.CreatePerson(r.Context(), person); err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"person": person}, "")
}

func (app *Application) getPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	person, err := app.Services.Movies.Person(r.Context(), id)
	if err != nil {
		if errors.Is(err, movies.ErrPersonNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"person": person, "user": newUserInfo(contextGetUser(r))}, "")
}

func (app *Application) deletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.Services.Movies.DeletePerson(r.Context(), id); err != nil {
		app.handleDeleteError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}
