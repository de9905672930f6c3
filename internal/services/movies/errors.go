package movies

import "errors"

var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrPersonNotFound  = errors.New("person not found")
	ErrInvalidPage     = errors.New("page must be a positive number or \"last\"")
	ErrPageNotFound    = errors.New("page not found")
	ErrStillReferenced = errors.New("still referenced by a credit")
	ErrUnknownPerson   = errors.New("referenced person does not exist")
	ErrDuplicateCredit = errors.New("duplicate credit")
)
