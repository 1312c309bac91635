package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the scheduling module. Tracks meeting
// creation outcomes and the slot search critical path.
type Metrics struct {
	MeetingsCreated      prometheus.Counter
	SchedulingConflicts  prometheus.Counter
	SuggestSlotsDuration prometheus.Histogram
}

// New creates and registers all scheduling metrics.
func New() *Metrics {
	return &Metrics{
		MeetingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meetsched_meetings_created_total",
			Help: "Total number of meetings created",
		}),
		SchedulingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meetsched_scheduling_conflicts_total",
			Help: "Total number of meeting creations rejected for slot conflicts",
		}),
		SuggestSlotsDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "meetsched_suggest_slots_duration_seconds",
			Help:    "Duration of slot suggestion scans",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementMeetingsCreated records a successful meeting creation.
func (m *Metrics) IncrementMeetingsCreated() {
	m.MeetingsCreated.Inc()
}

// IncrementSchedulingConflicts records a creation rejected by the conflict
// rule.
func (m *Metrics) IncrementSchedulingConflicts() {
	m.SchedulingConflicts.Inc()
}

// ObserveSuggestSlots records the duration of a slot search. Call with
// time.Now() from the start of the scan.
func (m *Metrics) ObserveSuggestSlots(start time.Time) {
	m.SuggestSlotsDuration.Observe(time.Since(start).Seconds())
}
