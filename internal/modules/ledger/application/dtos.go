package application

type FundSubscriptionRequest struct {
	Period string   `json:"period"`
	Cards  []string `json:"cards"`
}

type IssueCardsRequest struct {
	Count     int `json:"number_cards"`
	FaceValue int `json:"card_price"`
}
