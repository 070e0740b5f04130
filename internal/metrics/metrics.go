// Package metrics exposes Prometheus collectors for the stemming service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by path and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "azstemmer_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "status"},
	)

	// HTTPRequestDuration tracks request latency by path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "azstemmer_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// TokensStemmed counts tokens passed through the stemmer.
	TokensStemmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "azstemmer_tokens_stemmed_total",
			Help: "Total number of tokens stemmed.",
		},
	)

	// TokensUnmatched counts tokens for which no root was found.
	TokensUnmatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "azstemmer_tokens_unmatched_total",
			Help: "Total number of analyzed tokens that fell back to themselves.",
		},
	)

	// LexiconEntries reports the loaded lexicon size by kind.
	LexiconEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "azstemmer_lexicon_entries",
			Help: "Number of roots and suffixes in the loaded lexicon.",
		},
		[]string{"kind"},
	)
)
