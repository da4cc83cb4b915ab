package hub

import (
	"github.com/prometheus/client_golang/prometheus"
)

var viewersGauge = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "presenter_room_viewers",
		Help: "Websocket viewers currently attached, per room.",
	},
	[]string{"room"},
)

// RegisterMetrics attaches the hub gauges to the default registry.
func RegisterMetrics() {
	prometheus.MustRegister(viewersGauge)
}
