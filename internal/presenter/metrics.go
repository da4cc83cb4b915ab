package presenter

import "github.com/prometheus/client_golang/prometheus"

// Metrics
var (
	broadcastsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "presenter_broadcasts_total", Help: "Payloads sent, by primary content kind"},
		[]string{"content"},
	)
	overlayStartsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "presenter_overlay_starts_total", Help: "Overlay tool starts"},
		[]string{"tool"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(broadcastsTotal, overlayStartsTotal)
}
