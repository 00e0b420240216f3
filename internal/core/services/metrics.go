package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transfer outcome labels.
const (
	outcomeSuccess  = "success"
	outcomeFailed   = "failed"
	outcomeReplayed = "replayed"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

var (
	transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transfers_total",
		Help: "Transfer calls by outcome.",
	}, []string{"outcome"})

	transferDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transfer_duration_seconds",
		Help:    "Time spent inside the transfer transaction, by outcome.",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"outcome"})

	accountsOpenedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "accounts_opened_total",
		Help: "Accounts opened through the API.",
	})
)
