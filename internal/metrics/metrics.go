// Package metrics defines the Prometheus collectors for the data pipeline
// and page rendering. Collectors register against an injected registerer so
// tests can use isolated registries.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	fetchDuration prometheus.Histogram
	fetchFailures prometheus.Counter
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	snapshotLoads prometheus.Counter
	snapshotRows  prometheus.Gauge
	pageRenders   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "insights",
			Subsystem: "fetch",
			Name:      "duration_seconds",
			Help:      "Time spent fetching the latest batch from object storage.",
			Buckets:   prometheus.DefBuckets,
		}),
		fetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "insights",
			Subsystem: "fetch",
			Name:      "failures_total",
			Help:      "Failed batch fetches.",
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "insights",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Batch loads served from the Redis cache.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "insights",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Batch loads that had to go to object storage.",
		}),
		snapshotLoads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "insights",
			Subsystem: "snapshot",
			Name:      "loads_total",
			Help:      "Successful snapshot builds.",
		}),
		snapshotRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "insights",
			Subsystem: "snapshot",
			Name:      "rows",
			Help:      "Merged question rows in the current snapshot.",
		}),
		pageRenders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "insights",
			Subsystem: "pages",
			Name:      "renders_total",
			Help:      "Page render requests by page and HTTP status.",
		}, []string{"page", "status"}),
	}
}

// All observe methods are nil-safe so components can run without metrics in
// tests.

func (m *Metrics) ObserveFetch(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(d.Seconds())
	if err != nil {
		m.fetchFailures.Inc()
	}
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

func (m *Metrics) ObserveSnapshot(rows int) {
	if m == nil {
		return
	}
	m.snapshotLoads.Inc()
	m.snapshotRows.Set(float64(rows))
}

func (m *Metrics) ObservePageRender(page string, status int) {
	if m == nil {
		return
	}
	m.pageRenders.WithLabelValues(page, strconv.Itoa(status)).Inc()
}
