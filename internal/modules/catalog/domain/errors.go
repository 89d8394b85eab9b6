package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrArtistNotFound      = errors.New("artist not found")
	ErrArtistSelfReference = errors.New("given artists can not include the user id")
	ErrSongNotFound        = errors.New("song not found")
)
