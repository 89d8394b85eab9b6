package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrCardNotFound        = errors.New("prepaid card not found")
	ErrInsufficientFunds   = errors.New("given card(s) not enough to pay the subscription")
	ErrConsumerNotFound    = errors.New("consumer not found")
	ErrCardNumberExhausted = errors.New("could not draw an unused card number")
)
