package images

import "errors"

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrNotAnImage    = errors.New("uploaded file is not an image")
	ErrTooLarge      = errors.New("uploaded file is too large")
	ErrEmpty         = errors.New("uploaded file is empty")
)
