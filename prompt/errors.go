package prompt

import "errors"

var (
	ErrEmptyTrackPool    = errors.New("track pool is empty")
	ErrEmptyGenrePool    = errors.New("no genres present across tracks")
	ErrInvalidGenreCount = errors.New("genre count must be at least 1")
)
