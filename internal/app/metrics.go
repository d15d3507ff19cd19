package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the hub's prometheus collectors. A zero-value-free
// constructor keeps registration in one place.
type Metrics struct {
	ActiveConnections prometheus.Gauge
	ActiveRooms       prometheus.Gauge
	SignalsRelayed    *prometheus.CounterVec
	CallsInitiated    *prometheus.CounterVec
	JoinsRejected     *prometheus.CounterVec
	SendsDropped      prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "beacon",
			Name:      "active_connections",
			Help:      "Live signaling connections.",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "beacon",
			Name:      "active_rooms",
			Help:      "Rooms with at least one occupant.",
		}),
		SignalsRelayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beacon",
			Name:      "signals_relayed_total",
			Help:      "Forwarded negotiation messages by kind.",
		}, []string{"kind"}),
		CallsInitiated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beacon",
			Name:      "calls_initiated_total",
			Help:      "Call invitations by outcome.",
		}, []string{"outcome"}),
		JoinsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beacon",
			Name:      "joins_rejected_total",
			Help:      "Rejected room joins by reason.",
		}, []string{"reason"}),
		SendsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beacon",
			Name:      "sends_dropped_total",
			Help:      "Outbound messages dropped on backpressure.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.ActiveConnections,
			m.ActiveRooms,
			m.SignalsRelayed,
			m.CallsInitiated,
			m.JoinsRejected,
			m.SendsDropped,
		)
	}
	return m
}
