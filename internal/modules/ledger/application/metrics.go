package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cardsIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prepaid_cards_issued_total",
		Help: "Total number of prepaid cards issued.",
	}, []string{"face_value"})

	subscriptionsFundedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subscriptions_funded_total",
		Help: "Total number of subscriptions funded with prepaid cards.",
	}, []string{"period"})

	fundingRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subscription_funding_rejected_total",
		Help: "Funding attempts rejected for insufficient card balance.",
	})
)
