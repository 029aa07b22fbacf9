// Package metrics expone contadores Prometheus de la caja.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Motivos de rechazo de una venta.
const (
	ReasonValidation        = "validation"
	ReasonNotFound          = "not_found"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonInternal          = "internal"
)

// Sales agrupa los contadores del registro de ventas. Un *Sales nil es válido y no registra nada.
type Sales struct {
	recorded prometheus.Counter
	rejected *prometheus.CounterVec
	units    prometheus.Counter
	revenue  prometheus.Counter
	affinity prometheus.Counter
}

// NewSales crea y registra los contadores en reg.
func NewSales(reg prometheus.Registerer) *Sales {
	m := &Sales{
		recorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "devicepos",
			Subsystem: "sales",
			Name:      "recorded_total",
			Help:      "Ventas registradas correctamente.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devicepos",
			Subsystem: "sales",
			Name:      "rejected_total",
			Help:      "Ventas rechazadas por motivo.",
		}, []string{"reason"}),
		units: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "devicepos",
			Subsystem: "sales",
			Name:      "units_total",
			Help:      "Unidades vendidas.",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "devicepos",
			Subsystem: "sales",
			Name:      "revenue_total",
			Help:      "Ingresos acumulados de ventas registradas.",
		}),
		affinity: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "devicepos",
			Subsystem: "sales",
			Name:      "affinity_failures_total",
			Help:      "Fallos al actualizar also_bought_together tras una venta.",
		}),
	}
	reg.MustRegister(m.recorded, m.rejected, m.units, m.revenue, m.affinity)
	return m
}

// ObserveRecorded suma una venta confirmada.
func (m *Sales) ObserveRecorded(units int, revenue float64) {
	if m == nil {
		return
	}
	m.recorded.Inc()
	m.units.Add(float64(units))
	m.revenue.Add(revenue)
}

// ObserveRejected suma una venta rechazada.
func (m *Sales) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

// ObserveAffinityFailure suma un fallo de la actualización de afinidad.
func (m *Sales) ObserveAffinityFailure() {
	if m == nil {
		return
	}
	m.affinity.Inc()
}
