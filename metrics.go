package mqttengine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics are the counters exported for a single engine instance. newMetrics
// registers them only when a Registerer is supplied, so an engine in a
// process with no Prometheus registry exports nothing.
type metrics struct {
	PacketsSent     prometheus.Counter
	PacketsReceived prometheus.Counter
	BytesSent       prometheus.Counter
	BytesReceived   prometheus.Counter
	PacketsDropped  prometheus.Counter
	Reconnects      prometheus.Counter
}

// newMetrics builds a metrics set labeled with clientID and registers it
// against reg. A nil reg disables registration; the counters still work,
// they just aren't exported anywhere.
func newMetrics(reg prometheus.Registerer, clientID string) *metrics {
	labels := prometheus.Labels{"client_id": clientID}
	m := &metrics{
		PacketsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttengine_packets_sent_total", Help: "Control packets written to the send sink.", ConstLabels: labels,
		}),
		PacketsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttengine_packets_received_total", Help: "Control packets decoded from input.", ConstLabels: labels,
		}),
		BytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttengine_bytes_sent_total", Help: "Bytes written to the send sink.", ConstLabels: labels,
		}),
		BytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttengine_bytes_received_total", Help: "Bytes handed to Input.", ConstLabels: labels,
		}),
		PacketsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttengine_packets_dropped_total", Help: "Packets dropped: oversize or malformed.", ConstLabels: labels,
		}),
		Reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttengine_reconnects_total", Help: "Transitions into Connected.", ConstLabels: labels,
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.PacketsSent, m.PacketsReceived, m.BytesSent, m.BytesReceived, m.PacketsDropped, m.Reconnects} {
			// A second engine with the same client ID registering the
			// same metric names is a caller error, not something to hide;
			// but tests legitimately build many engines with the same ID,
			// so duplicate registration is tolerated rather than panicking.
			if err := reg.Register(c); err != nil {
				var are prometheus.AlreadyRegisteredError
				if !errorsAs(err, &are) {
					panic(err)
				}
			}
		}
	}
	return m
}

func errorsAs(err error, target *prometheus.AlreadyRegisteredError) bool {
	are, ok := err.(prometheus.AlreadyRegisteredError)
	if ok {
		*target = are
	}
	return ok
}
