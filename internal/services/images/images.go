package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// sniffLen is how much of the upload is inspected to detect its type.
const sniffLen = 3072

type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

type ImagesStorage interface {
	Insert(ctx context.Context, image *models.MovieImage) error
}

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
}

type ImageService struct {
	log     *slog.Logger
	blobs   BlobStore
	images  ImagesStorage
	movies  MoviesStorage
	maxSize int64
}

func New(log *slog.Logger, blobs BlobStore, images ImagesStorage, movies MoviesStorage, maxSize int64) *ImageService {
	return &ImageService{
		log:     log,
		blobs:   blobs,
		images:  images,
		movies:  movies,
		maxSize: maxSize,
	}
}

// Upload stores file under <movieID>/<uuid><ext> and records it against the
// movie.
func (s *ImageService) Upload(ctx context.Context, movieID, userID int64, file io.Reader, size int64) (*models.MovieImage, error) {
	const op = "images.ImageService.Upload"
	log := s.log.With("op", op, "movieID", movieID, "userID", userID, "size", size)
	if size <= 0 {
		return nil, ErrEmpty
	}
	if s.maxSize > 0 && size > s.maxSize {
		log.Info("upload too large", "maxSize", s.maxSize)
		return nil, ErrTooLarge
	}
	if _, err := s.movies.Get(ctx, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		log.Error("failed to read upload", "errMsg", err.Error())
		return nil, err
	}
	head = head[:n]
	mtype := mimetype.Detect(head)
	if !strings.HasPrefix(mtype.String(), "image/") {
		log.Info("rejected upload", "mimetype", mtype.String())
		return nil, ErrNotAnImage
	}

	key := fmt.Sprintf("%d/%s%s", movieID, uuid.NewString(), mtype.Extension())
	body := io.MultiReader(bytes.NewReader(head), file)
	if err := s.blobs.Put(ctx, key, body, size, mtype.String()); err != nil {
		log.Error("failed to store blob", "key", key, "errMsg", err.Error())
		return nil, err
	}
	image := &models.MovieImage{MovieID: movieID, UserID: userID, Image: key}
	if err := s.images.Insert(ctx, image); err != nil {
		if rmErr := s.blobs.Remove(ctx, key); rmErr != nil {
			log.Warn("failed to remove orphaned blob", "key", key, "errMsg", rmErr.Error())
		}
		if errors.Is(err, storage.ErrForeignKey) {
			log.Info("movie deleted during upload")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("image uploaded", "key", key, "id", image.ID)
	return image, nil
}

func (s *ImageService) URL(key string) string {
	return s.blobs.URL(key)
}
