package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/application"
)

// flexInt accepts both 25 and "25". Older clients send numbers as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", s)
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type issueCardsBody struct {
	NumberCards flexInt `json:"number_cards"`
	CardPrice   flexInt `json:"card_price"`
}

func (b issueCardsBody) toRequest() application.IssueCardsRequest {
	return application.IssueCardsRequest{Count: int(b.NumberCards), FaceValue: int(b.CardPrice)}
}
