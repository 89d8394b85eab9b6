package domain

import "time"

// Contribution is what one card pays towards a subscription
type Contribution struct {
	CardID    string `db:"card_id"`
	Amount    int    `db:"amount"`
	Remaining int    `db:"-"`
}

// Allocation is the outcome of walking a list of cards against a price
type Allocation struct {
	Price         int
	Total         int
	Contributions []Contribution
}

// Covered reports whether the contributing cards reach the price
func (a Allocation) Covered() bool {
	return a.Total >= a.Price
}

// Allocate walks cards in the given order. A card contributes its whole
// balance when it is spendable and the running total is still short of
// price; once the price is reached the remaining cards are not consulted.
// Every contributing card is emptied except the last one, which keeps the
// overshoot.
func Allocate(cards []PrepaidCard, price int, today time.Time) Allocation {
	a := Allocation{Price: price}
	for _, c := range cards {
		if a.Total >= price {
			break
		}
		if !c.Spendable(today) {
			continue
		}
		a.Total += c.Balance
		a.Contributions = append(a.Contributions, Contribution{CardID: c.ID, Amount: c.Balance})
	}

	if a.Covered() && len(a.Contributions) > 0 {
		last := &a.Contributions[len(a.Contributions)-1]
		last.Remaining = a.Total - price
		last.Amount -= last.Remaining
	}
	return a
}
