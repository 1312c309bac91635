package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the person registry.
type Metrics struct {
	PersonsCreated prometheus.Counter
}

// New creates and registers all person registry metrics.
func New() *Metrics {
	return &Metrics{
		PersonsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meetsched_persons_created_total",
			Help: "Total number of persons registered",
		}),
	}
}

// IncrementPersonsCreated records a successful registration.
func (m *Metrics) IncrementPersonsCreated() {
	m.PersonsCreated.Inc()
}
