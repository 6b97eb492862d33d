package resource

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/temporal-capi/errors"
)

// MetricsObserver exports handle lifecycle counters to Prometheus.
type MetricsObserver struct {
	names    map[TypeID]string
	created  *prometheus.CounterVec
	released *prometheus.CounterVec
	borrowed *prometheus.CounterVec
	live     *prometheus.GaugeVec
}

// NewMetricsObserver registers handle metrics on reg. names labels each
// TypeID; unnamed types are labelled by number.
func NewMetricsObserver(reg prometheus.Registerer, namespace string, names map[TypeID]string) (*MetricsObserver, error) {
	m := &MetricsObserver{
		names: names,
		created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "handles",
				Name:      "created_total",
				Help:      "Total number of handles issued",
			},
			[]string{"type", "kind"},
		),
		released: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "handles",
				Name:      "released_total",
				Help:      "Total number of handles released",
			},
			[]string{"type", "kind"},
		),
		borrowed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "handles",
				Name:      "borrows_total",
				Help:      "Total number of call-scoped borrows",
			},
			[]string{"type"},
		),
		live: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "handles",
				Name:      "live",
				Help:      "Current number of live handles",
			},
			[]string{"type", "kind"},
		),
	}

	collectors := map[string]prometheus.Collector{
		"created_total":  m.created,
		"released_total": m.released,
		"borrows_total":  m.borrowed,
		"live":           m.live,
	}
	for name, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, errors.Registration(namespace, name, err)
		}
	}
	return m, nil
}

func (m *MetricsObserver) label(id TypeID) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	return strconv.FormatUint(uint64(id), 10)
}

// OnResourceEvent implements Observer.
func (m *MetricsObserver) OnResourceEvent(e Event) {
	typ := m.label(e.TypeID)
	kind := "owned"
	if e.Parent != 0 {
		kind = "view"
	}

	switch e.Type {
	case EventCreated:
		m.created.WithLabelValues(typ, kind).Inc()
		m.live.WithLabelValues(typ, kind).Inc()
	case EventDropped:
		m.released.WithLabelValues(typ, kind).Inc()
		m.live.WithLabelValues(typ, kind).Dec()
	case EventBorrowed:
		m.borrowed.WithLabelValues(typ).Inc()
	}
}
