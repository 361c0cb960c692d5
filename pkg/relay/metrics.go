package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_records_total",
		Help: "Records copied from the topic to the bucket.",
	})
	bytesRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_bytes_total",
		Help: "Payload bytes written to the bucket.",
	})
	writeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_write_failures_total",
		Help: "Object writes that failed and terminated the loop.",
	})
)
