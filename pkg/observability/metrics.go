package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/levelance/pkg/domain"
)

// Metrics holds the decode collectors.
type Metrics struct {
	decodes   *prometheus.CounterVec
	groups    prometheus.Histogram
	duration  prometheus.Histogram
	cacheHits prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		decodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "levelance_decodes_total",
				Help: "Total number of decode attempts",
			},
			[]string{"mode", "outcome"},
		),
		groups: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "levelance_groups_per_decode",
			Help:    "Number of symbol groups in successfully decoded inputs",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "levelance_decode_duration_seconds",
			Help:    "Duration of decode calls",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "levelance_cache_hits_total",
			Help: "Total number of decodes served from the result cache",
		}),
	}

	for _, c := range []prometheus.Collector{m.decodes, m.groups, m.duration, m.cacheHits} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecode: func(ctx context.Context, e *domain.DecodeEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = domain.Kind(e.Err)
				if outcome == "" {
					outcome = "error"
				}
			} else {
				m.groups.Observe(float64(e.Groups))
			}
			m.decodes.WithLabelValues(string(e.Mode), outcome).Inc()
			m.duration.Observe(e.Duration.Seconds())
		},
		OnCacheHit: func(ctx context.Context, e *domain.DecodeEvent) {
			m.cacheHits.Inc()
		},
	}
}
