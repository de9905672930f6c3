package main

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type personItem struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func createPersonViaAPI(t *testing.T, handler http.Handler, admin *http.Cookie, first, last string) int64 {
	t.Helper()
	rec := do(t, handler, http.MethodPost, "/persons", map[string]string{
		"first_name": first,
		"last_name":  last,
		"born":       "1950-03-14",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return field[personItem](t, decode(t, rec), "person").ID
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	app := NewTestApplication(nil, t)
	router := app.routes()
	ids := seedMovies(t, app, 1)

	requests := []struct {
		method string
		target string
		body   any
	}{
		{http.MethodPost, "/persons", map[string]string{"first_name": "A", "last_name": "B", "born": "1950-01-01"}},
		{http.MethodPost, "/movies", map[string]any{"title": "X", "year": 2000, "runtime": 90}},
		{http.MethodDelete, fmt.Sprintf("/movie/%d", ids[0]), nil},
		{http.MethodDelete, "/person/1", nil},
	}
	for _, req := range requests {
		t.Run(req.method+" "+req.target, func(t *testing.T) {
			rec := do(t, router, req.method, req.target, req.body, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			rec = do(t, router, req.method, req.target, req.body, sessionFor(t, app, aliceID))
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
	rec := do(t, router, http.MethodGet, fmt.Sprintf("/movie/%d", ids[0]), nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateMovieAndPerson(t *testing.T) {
	app := NewTestApplication(nil, t)
	router := app.routes()
	admin := sessionFor(t, app, adminID)

	director := createPersonViaAPI(t, router, admin, "Sofia", "Coppola")
	actor := createPersonViaAPI(t, router, admin, "Bill", "Murray")

	rec := do(t, router, http.MethodPost, "/movies", map[string]any{
		"title":       "Lost in Translation",
		"year":        2003,
		"rating":      4,
		"runtime":     "102 mins",
		"director_id": director,
		"writer_ids":  []int64{director},
		"roles":       []map[string]any{{"person_id": actor, "name": "Bob Harris"}},
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	movieID := field[movieItem](t, decode(t, rec), "movie").ID

	rec = do(t, router, http.MethodGet, fmt.Sprintf("/movie/%d", movieID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := field[struct {
		Director personItem   `json:"director"`
		Writers  []personItem `json:"writers"`
		Actors   []struct {
			personItem
			Role string `json:"role"`
		} `json:"actors"`
	}](t, decode(t, rec), "movie")
	assert.Equal(t, director, detail.Director.ID)
	require.Len(t, detail.Writers, 1)
	require.Len(t, detail.Actors, 1)
	assert.Equal(t, "Bob Harris", detail.Actors[0].Role)
	assert.Equal(t, "Murray", detail.Actors[0].LastName)

	rec = do(t, router, http.MethodGet, fmt.Sprintf("/person/%d", actor), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	credits := field[struct {
		ActingCredits []struct {
			ID   int64  `json:"id"`
			Role string `json:"role"`
		} `json:"acting_credits"`
	}](t, decode(t, rec), "person")
	require.Len(t, credits.ActingCredits, 1)
	assert.Equal(t, movieID, credits.ActingCredits[0].ID)
}

func TestCreateRejects(t *testing.T) {
	app := NewTestApplication(nil, t)
	router := app.routes()
	admin := sessionFor(t, app, adminID)
	actor := createPersonViaAPI(t, router, admin, "Bill", "Murray")

	testCases := []struct {
		name   string
		target string
		body   any
		status int
	}{
		{"person bad date", "/persons", map[string]string{"first_name": "A", "last_name": "B", "born": "14.03.1950"}, http.StatusUnprocessableEntity},
		{"person died before born", "/persons", map[string]string{"first_name": "A", "last_name": "B", "born": "1950-01-01", "died": "1940-01-01"}, http.StatusUnprocessableEntity},
		{"movie missing title", "/movies", map[string]any{"year": 2000, "runtime": 90}, http.StatusUnprocessableEntity},
		{"movie bad rating", "/movies", map[string]any{"title": "X", "year": 2000, "runtime": 90, "rating": 42}, http.StatusBadRequest},
		{"movie unknown person", "/movies", map[string]any{"title": "X", "year": 2000, "runtime": 90, "writer_ids": []int64{999}}, http.StatusUnprocessableEntity},
		{"movie role without name", "/movies", map[string]any{
			"title": "X", "year": 2000, "runtime": 90,
			"roles": []map[string]any{{"person_id": actor}},
		}, http.StatusUnprocessableEntity},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, tc.target, tc.body, admin)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
	movies, _, err := app.Services.Movies.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestDeleteEndpoints(t *testing.T) {
	app := NewTestApplication(nil, t)
	router := app.routes()
	admin := sessionFor(t, app, adminID)
	actor := createPersonViaAPI(t, router, admin, "Bill", "Murray")
	loner := createPersonViaAPI(t, router, admin, "Nobody", "Known")

	rec := do(t, router, http.MethodPost, "/movies", map[string]any{
		"title": "Groundhog Day", "year": 1993, "runtime": 101,
		"roles": []map[string]any{{"person_id": actor, "name": "Phil"}},
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	credited := field[movieItem](t, decode(t, rec), "movie").ID
	plain := seedMovies(t, app, 1)[0]
	do(t, router, http.MethodPost, fmt.Sprintf("/movie/%d/vote", plain), map[string]int{"value": 1}, sessionFor(t, app, aliceID))

	testCases := []struct {
		name   string
		target string
		status int
	}{
		{"credited person", fmt.Sprintf("/person/%d", actor), http.StatusConflict},
		{"credited movie", fmt.Sprintf("/movie/%d", credited), http.StatusConflict},
		{"movie with votes", fmt.Sprintf("/movie/%d", plain), http.StatusNoContent},
		{"deleted movie", fmt.Sprintf("/movie/%d", plain), http.StatusNotFound},
		{"uncredited person", fmt.Sprintf("/person/%d", loner), http.StatusNoContent},
		{"unknown person", "/person/999", http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodDelete, tc.target, nil, admin)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
	rec = do(t, router, http.MethodGet, fmt.Sprintf("/movie/%d", credited), nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
