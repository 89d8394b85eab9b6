package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminRequired      = errors.New("only administrators can create artists")
	ErrAmbiguousRole      = errors.New("user does not hold exactly one role")
)
