package votes

import "errors"

var (
	ErrVoteNotFound  = errors.New("vote not found")
	ErrMovieNotFound = errors.New("movie not found")
	ErrInvalidValue  = errors.New("vote value must be 1 or -1")
)
