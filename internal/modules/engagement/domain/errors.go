package domain

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSongNotFound    = errors.New("given song does not exist")
	ErrCommentNotFound = errors.New("given comment does not exist")
	ErrCommentMismatch = errors.New("given comment does not refer to given song")
)
