package fields

import "errors"

var (
	ErrInvalidRuntimeFormat = errors.New("invalid runtime format")
	ErrInvalidRating        = errors.New("rating must be one of 0 (NR), 1 (G), 2 (PG), 3 (PG-13), 4 (R), 5 (NC-17)")
)
