package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrReservedName = errors.New(`playlist name "TOP10" not allowed`)
	ErrPlanRequired = errors.New("only premium consumers can create a playlist")
	ErrSongNotFound = errors.New("song not found")
)
