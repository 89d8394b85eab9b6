package domain

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

// ReportWindow is the number of whole months covered by a report
const ReportWindow = 12

// GenrePlaybacks is one row of the monthly genre report
type GenrePlaybacks struct {
	Month     string `json:"month" db:"month"`
	Genre     string `json:"genre" db:"genre"`
	Playbacks int64  `json:"playbacks" db:"playbacks"`
}

type ReportRepository interface {
	// GenrePlaybacks counts plays per month and genre for play dates in [from, to)
	GenrePlaybacks(ctx context.Context, from, to time.Time) ([]GenrePlaybacks, error)
}
