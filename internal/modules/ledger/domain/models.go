package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Period is a subscription length a consumer can pay for
type Period string

const (
	PeriodMonth    Period = "month"
	PeriodQuarter  Period = "quarter"
	PeriodSemester Period = "semester"
)

// ParsePeriod validates a period name
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodMonth, PeriodQuarter, PeriodSemester:
		return p, nil
	}
	return "", fmt.Errorf("%w: period can only be month, quarter or semester", ErrInvalidInput)
}

// Price is the amount that must be debited from cards for the period
func (p Period) Price() int {
	switch p {
	case PeriodMonth:
		return 7
	case PeriodQuarter:
		return 21
	case PeriodSemester:
		return 42
	}
	return 0
}

// Months is how far the period extends a subscription
func (p Period) Months() int {
	switch p {
	case PeriodMonth:
		return 1
	case PeriodQuarter:
		return 3
	case PeriodSemester:
		return 6
	}
	return 0
}

type Plan string

const (
	PlanRegular Plan = "regular"
	PlanPremium Plan = "premium"
)

// Face values an administrator may issue
var FaceValues = []int{10, 25, 50}

// CardIDLength is the number of decimal digits in a card id
const CardIDLength = 16

// ValidCardID reports whether id is exactly CardIDLength decimal digits
func ValidCardID(id string) bool {
	if len(id) != CardIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

type PrepaidCard struct {
	ID        string    `json:"id" db:"id"`
	FaceValue int       `json:"face_value" db:"face_value"`
	Balance   int       `json:"balance" db:"balance"`
	ExpiresOn time.Time `json:"expires_on" db:"expires_on"`
	IssuedBy  uuid.UUID `json:"issued_by" db:"issued_by"`
	IssuedOn  time.Time `json:"issued_on" db:"issued_on"`
}

// Spendable reports whether the card can contribute on day today.
// A card is still valid on its expiry date.
func (c PrepaidCard) Spendable(today time.Time) bool {
	return c.Balance > 0 && !today.After(c.ExpiresOn)
}

type Subscription struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Plan      Plan       `json:"plan" db:"plan"`
	StartsOn  time.Time  `json:"starts_on" db:"starts_on"`
	ExpiresOn *time.Time `json:"expires_on,omitempty" db:"expires_on"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// PlanStatus is a consumer's plan as of a given day
type PlanStatus struct {
	Plan      Plan       `json:"plan"`
	ExpiresOn *time.Time `json:"expires_on,omitempty"`
}

// IsPremium reports whether the status grants premium features
func (s PlanStatus) IsPremium() bool {
	return s.Plan == PlanPremium
}

// StatusAt derives the plan from the latest premium expiry. Premium holds
// while today is strictly before that expiry.
func StatusAt(latestPremiumExpiry *time.Time, today time.Time) PlanStatus {
	if latestPremiumExpiry != nil && today.Before(*latestPremiumExpiry) {
		return PlanStatus{Plan: PlanPremium, ExpiresOn: latestPremiumExpiry}
	}
	return PlanStatus{Plan: PlanRegular}
}

// RenewalStart is the first day of a newly funded period: the current
// premium expiry when it is still ahead, otherwise today.
func RenewalStart(latestPremiumExpiry *time.Time, today time.Time) time.Time {
	if StatusAt(latestPremiumExpiry, today).IsPremium() {
		return *latestPremiumExpiry
	}
	return today
}
