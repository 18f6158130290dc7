package view

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts and times view assembly.
type Metrics struct {
	loads    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	items    *prometheus.GaugeVec
}

// NewMetrics creates the view collectors and registers them with reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cave",
			Name:      "view_loads_total",
			Help:      "View assemblies by view and resulting status.",
		}, []string{"view", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cave",
			Name:      "view_load_duration_seconds",
			Help:      "Time spent loading and filtering one view.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 5},
		}, []string{"view"}),
		items: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cave",
			Name:      "view_items",
			Help:      "Entities shown by the most recent load of each view.",
		}, []string{"view"}),
	}
}

func (m *Metrics) observe(view string, status Status, items int, d time.Duration) {
	m.loads.WithLabelValues(view, string(status)).Inc()
	m.duration.WithLabelValues(view).Observe(d.Seconds())
	m.items.WithLabelValues(view).Set(float64(items))
}
