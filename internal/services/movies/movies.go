package movies

import (
	"context"
	"errors"
	"log/slog"
	"mymdb/proj/internal/domain/filters"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage"
)

const (
	DefaultPageSize = 10
	DefaultTopLimit = 10
)

type MoviesStorage interface {
	List(ctx context.Context, filters filters.Filters) ([]models.Movie, int, error)
	Count(ctx context.Context) (int, error)
	GetWithRelated(ctx context.Context, id int64) (*models.MovieDetail, error)
	Top(ctx context.Context, limit int) ([]models.MovieScore, error)
	Insert(ctx context.Context, movie *models.Movie, writerIDs []int64, roles []models.Role) error
	Delete(ctx context.Context, id int64) error
}

type PersonsStorage interface {
	Insert(ctx context.Context, person *models.Person) error
	GetWithCredits(ctx context.Context, id int64) (*models.PersonDetail, error)
	Delete(ctx context.Context, id int64) error
}

type MovieService struct {
	log      *slog.Logger
	movies   MoviesStorage
	persons  PersonsStorage
	pageSize int
}

func New(log *slog.Logger, movies MoviesStorage, persons PersonsStorage, pageSize int) *MovieService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &MovieService{
		log:      log,
		movies:   movies,
		persons:  persons,
		pageSize: pageSize,
	}
}

// List returns one page of the catalog. rawPage is a positive number, the
// literal "last" or empty for the first page.
func (s *MovieService) List(ctx context.Context, rawPage string) ([]models.Movie, *filters.Metadata, error) {
	const op = "movies.MovieService.List"
	log := s.log.With("op", op, "page", rawPage)
	page, isLast, ok := filters.ParsePage(rawPage)
	if !ok {
		log.Info("invalid page")
		return nil, nil, ErrInvalidPage
	}
	if isLast {
		total, err := s.movies.Count(ctx)
		if err != nil {
			log.Error(err.Error())
			return nil, nil, err
		}
		page = filters.NumPages(total, s.pageSize)
	}
	movies, total, err := s.movies.List(ctx, filters.Filters{Page: page, PageSize: s.pageSize})
	if err != nil {
		log.Error(err.Error())
		return nil, nil, err
	}
	if page > filters.NumPages(total, s.pageSize) {
		log.Info("page out of range")
		return nil, nil, ErrPageNotFound
	}
	metadata := filters.CalculateMetadata(total, page, s.pageSize)
	return movies, &metadata, nil
}

func (s *MovieService) Detail(ctx context.Context, id int64) (*models.MovieDetail, error) {
	const op = "movies.MovieService.Detail"
	log := s.log.With("op", op, "id", id)
	movie, err := s.movies.GetWithRelated(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) Person(ctx context.Context, id int64) (*models.PersonDetail, error) {
	const op = "movies.MovieService.Person"
	log := s.log.With("op", op, "id", id)
	person, err := s.persons.GetWithCredits(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("person not found")
			return nil, ErrPersonNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return person, nil
}

// Top returns the highest scored movies. Movies nobody voted for are left
// out.
func (s *MovieService) Top(ctx context.Context, limit int) ([]models.MovieScore, error) {
	const op = "movies.MovieService.Top"
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	top, err := s.movies.Top(ctx, limit)
	if err != nil {
		s.log.Error(err.Error(), "op", op, "limit", limit)
		return nil, err
	}
	return top, nil
}

func (s *MovieService) CreatePerson(ctx context.Context, person *models.Person) error {
	const op = "movies.MovieService.CreatePerson"
	log := s.log.With("op", op, "person", person.String())
	if err := s.persons.Insert(ctx, person); err != nil {
		log.Error(err.Error())
		return err
	}
	log.Info("person created", "id", person.ID)
	return nil
}

// CreateMovie stores the movie with its writers and cast atomically.
func (s *MovieService) CreateMovie(ctx context.Context, movie *models.Movie, writerIDs []int64, roles []models.Role) error {
	const op = "movies.MovieService.CreateMovie"
	log := s.log.With("op", op, "movie", movie.String())
	err := s.movies.Insert(ctx, movie, writerIDs, roles)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrForeignKey):
			log.Info("unknown person referenced")
			return ErrUnknownPerson
		case errors.Is(err, storage.ErrConflict):
			log.Info("duplicate credit")
			return ErrDuplicateCredit
		}
		log.Error(err.Error())
		return err
	}
	log.Info("movie created", "id", movie.ID)
	return nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id int64) error {
	const op = "movies.MovieService.DeleteMovie"
	return s.delete(ctx, s.log.With("op", op, "id", id), s.movies.Delete, id, ErrMovieNotFound)
}

func (s *MovieService) DeletePerson(ctx context.Context, id int64) error {
	const op = "movies.MovieService.DeletePerson"
	return s.delete(ctx, s.log.With("op", op, "id", id), s.persons.Delete, id, ErrPersonNotFound)
}

func (s *MovieService) delete(
	ctx context.Context,
	log *slog.Logger,
	del func(context.Context, int64) error,
	id int64,
	errNotFound error,
) error {
	if err := del(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Info("not found")
			return errNotFound
		case errors.Is(err, storage.ErrForeignKey):
			log.Info("refusing to delete, still credited")
			return ErrStillReferenced
		}
		log.Error(err.Error())
		return err
	}
	log.Info("deleted")
	return nil
}
