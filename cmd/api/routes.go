package main

import (
	"mymdb/proj/internal/lib/logger"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		app.Http.Response(w, r, nil, "", http.StatusMethodNotAllowed)
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logger.LogAdapter(app.log),
		NoColor: true,
	}))
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)

	router.Get("/healthcheck", app.healthcheck)
	router.Route("/movies", func(r chi.Router) {
		r.With(app.cachePage).Get("/", app.listMovies)
		r.Get("/top", app.topMovies)
		r.With(app.requireAdmin).Post("/", app.createMovie)
	})
	router.Route("/movie/{id}", func(r chi.Router) {
		r.Get("/", app.getMovie)
		r.With(app.requireAdmin).Delete("/", app.deleteMovie)
		r.Group(func(r chi.Router) {
			r.Use(app.requireActivatedUser)
			r.Post("/vote", app.castVote)
			r.Post("/vote/{voteID}", app.updateVote)
			r.Post("/image", app.uploadImage)
		})
	})
	router.With(app.requireAdmin).Post("/persons", app.createPerson)
	router.Route("/person/{id}", func(r chi.Router) {
		r.Get("/", app.getPerson)
		r.With(app.requireAdmin).Delete("/", app.deletePerson)
	})
	return router
}
