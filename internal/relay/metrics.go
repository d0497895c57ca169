package relay

import "github.com/prometheus/client_golang/prometheus"

var (
	relayConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "collab_relay_connections",
			Help: "Current number of active websocket connections.",
		},
	)
	relayRooms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "collab_relay_rooms",
			Help: "Current number of active document rooms.",
		},
	)
	relayEditsRelayed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "collab_relay_edits_relayed_total",
			Help: "Total edit broadcasts fanned out to rooms.",
		},
	)
	relayCursorsRelayed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "collab_relay_cursor_moves_relayed_total",
			Help: "Total cursor broadcasts fanned out to rooms.",
		},
	)
	relayDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "collab_relay_messages_delivered_total",
			Help: "Total messages delivered to individual recipients.",
		},
	)
	relayDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "collab_relay_messages_dropped_total",
			Help: "Messages dropped for full buffers or membership violations.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		relayConnections,
		relayRooms,
		relayEditsRelayed,
		relayCursorsRelayed,
		relayDelivered,
		relayDropped,
	)
}

func incConnections() {
	relayConnections.Inc()
}

func decConnections() {
	relayConnections.Dec()
}

func setRooms(count int) {
	relayRooms.Set(float64(count))
}

func incEditsRelayed() {
	relayEditsRelayed.Inc()
}

func incCursorsRelayed() {
	relayCursorsRelayed.Inc()
}

func addDelivered(count int) {
	relayDelivered.Add(float64(count))
}

func addDropped(count int) {
	relayDropped.Add(float64(count))
}
