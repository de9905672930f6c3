package services

import (
	"log/slog"
	"mymdb/proj/internal/config"
	"mymdb/proj/internal/services/auth"
	"mymdb/proj/internal/services/images"
	"mymdb/proj/internal/services/movies"
	"mymdb/proj/internal/services/votes"
)

type Services struct {
	Auth   *auth.AuthService
	Movies *movies.MovieService
	Votes  *votes.VoteService
	Images *images.ImageService
}

type MovieStorage interface {
	movies.MoviesStorage
	images.MoviesStorage
}

// Storage is the persistence a Services set runs on. Both the postgres and
// the sqlite models satisfy it.
type Storage struct {
	Movies  MovieStorage
	Persons movies.PersonsStorage
	Votes   votes.VotesStorage
	Images  images.ImagesStorage
}

func New(
	log *slog.Logger,
	cfg *config.Config,
	storage Storage,
	sso auth.UserProvider,
	blobs images.BlobStore,
) *Services {
	return &Services{
		Auth:   auth.New(log, sso, cfg.AppSecret),
		Movies: movies.New(log, storage.Movies, storage.Persons, cfg.Listing.PageSize),
		Votes:  votes.New(log, storage.Votes),
		Images: images.New(log, blobs, storage.Images, storage.Movies, cfg.Images.MaxUploadSize),
	}
}
