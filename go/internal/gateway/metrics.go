package gateway

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the gateway's Prometheus collectors
type Metrics struct {
	activeConnections prometheus.Gauge
	messagesReceived  *prometheus.CounterVec
	statesRelayed     *prometheus.CounterVec
	slowConsumers     prometheus.Counter
}

// NewMetrics creates the gateway collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		activeConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "minigolf",
			Subsystem: "gateway",
			Name:      "active_connections",
			Help:      "Number of open WebSocket connections.",
		}),
		messagesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minigolf",
			Subsystem: "gateway",
			Name:      "messages_received_total",
			Help:      "Socket frames received from clients, by event.",
		}, []string{"event"}),
		statesRelayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minigolf",
			Subsystem: "gateway",
			Name:      "states_relayed_total",
			Help:      "update-state frames relayed, by origin (local or remote).",
		}, []string{"origin"}),
		slowConsumers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minigolf",
			Subsystem: "gateway",
			Name:      "slow_consumers_total",
			Help:      "Connections closed because their send buffer was full.",
		}),
	}

	reg.MustRegister(m.activeConnections, m.messagesReceived, m.statesRelayed, m.slowConsumers)
	return m
}
