package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ProxyForwards counts proxied requests by upstream status class.
	ProxyForwards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmic_proxy_forwards_total",
			Help: "Proxied requests by upstream status class.",
		},
		[]string{"status_class"},
	)

	// ProxyFailures counts forwards that never produced an upstream response.
	ProxyFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cosmic_proxy_failures_total",
			Help: "Proxy forwards that failed before an upstream response.",
		},
	)

	// SwitchAttempts counts network switch attempts by outcome.
	SwitchAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmic_network_switch_attempts_total",
			Help: "Wallet network switch attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// DataAPIFetches counts indexer fetches by endpoint and outcome.
	DataAPIFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmic_data_api_fetches_total",
			Help: "Data API fetches by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	// OddsRecomputes counts raffle odds recomputations.
	OddsRecomputes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cosmic_raffle_odds_recomputes_total",
			Help: "Raffle odds sample recomputations.",
		},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		ProxyForwards,
		ProxyFailures,
		SwitchAttempts,
		DataAPIFetches,
		OddsRecomputes,
	)
}
