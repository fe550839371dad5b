package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewDeliveriesUploadedTotal returns a Prometheus counter for accepted proof uploads
func NewDeliveriesUploadedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deliveries_uploaded_total",
		Help: "Total number of accepted proof-of-delivery uploads",
	})
}

// NewDeliveryTransitionsTotal returns a Prometheus counter vector for status transitions, labeled by target status
func NewDeliveryTransitionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_transitions_total",
		Help: "Total number of delivery status transitions",
	}, []string{"status"})
}
