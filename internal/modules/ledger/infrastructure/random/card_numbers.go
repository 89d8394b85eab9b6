package random

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/domain"
)

var ten = big.NewInt(10)

// CardNumbers draws uniformly distributed card ids from a random reader
type CardNumbers struct {
	reader io.Reader
}

// NewCardNumbers uses crypto/rand
func NewCardNumbers() *CardNumbers {
	return &CardNumbers{reader: rand.Reader}
}

func NewCardNumbersFrom(r io.Reader) *CardNumbers {
	return &CardNumbers{reader: r}
}

func (c *CardNumbers) Next() (string, error) {
	digits := make([]byte, domain.CardIDLength)
	for i := range digits {
		n, err := rand.Int(c.reader, ten)
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
